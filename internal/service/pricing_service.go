package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"unitpos/internal/dto"
	"unitpos/internal/model"
	"unitpos/internal/money"
	"unitpos/internal/repository"
	"unitpos/internal/units"
)

type PricingService interface {
	Quote(ctx context.Context, productID uuid.UUID, unitID *uuid.UUID, channel model.Channel) (*dto.PriceQuoteResponse, error)
	ValidateStock(ctx context.Context, req dto.ValidateStockRequest) (*dto.ValidateStockResponse, error)
	GetStock(ctx context.Context, productID, branchID uuid.UUID) (*dto.BranchStockResponse, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.BranchStockResponse, error)
}

type pricingService struct {
	productRepo repository.ProductRepository
	unitRepo    repository.UnitRepository
	stockRepo   repository.StockRepository
	prefix      string // currency display prefix, e.g. "C$"
}

func NewPricingService(
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	stockRepo repository.StockRepository,
	currencyPrefix string,
) PricingService {
	return &pricingService{
		productRepo: productRepo,
		unitRepo:    unitRepo,
		stockRepo:   stockRepo,
		prefix:      currencyPrefix,
	}
}

// Quote resolves the price in cents for (product, unit?, channel).
// Explicit unit overrides win; otherwise the product's base-unit price for
// the channel applies, unscaled (see units.ResolveUnitPrice).
func (s *pricingService) Quote(ctx context.Context, productID uuid.UUID, unitID *uuid.UUID, channel model.Channel) (*dto.PriceQuoteResponse, error) {
	if !channel.Valid() {
		return nil, errors.New("channel must be RETAIL or WHOLESALE")
	}

	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}

	var unit *model.UnitConversion
	if unitID != nil {
		list, err := s.unitRepo.ListByProduct(ctx, productID, false)
		if err != nil {
			return nil, err
		}
		if unit = units.FindByID(list, *unitID); unit == nil {
			return nil, ErrUnitNotInProduct
		}
	}

	cents := units.ResolveUnitPrice(p, unit, channel)

	resp := &dto.PriceQuoteResponse{
		ProductID:      productID.String(),
		Channel:        string(channel),
		UnitPriceCents: cents,
		Display:        money.Format(s.prefix, cents),
	}
	if unitID != nil {
		id := unitID.String()
		resp.UnitID = &id
	}
	return resp, nil
}

// ValidateStock compares the requested quantity, converted to base units,
// against the branch's on-hand stock. The server owns the catalog, so there
// is no degraded path here; a missing unit is a request error and a corrupt
// factor a data-integrity one.
func (s *pricingService) ValidateStock(ctx context.Context, req dto.ValidateStockRequest) (*dto.ValidateStockResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch_id: %w", err)
	}

	var unit *model.UnitConversion
	if req.UnitID != nil {
		unitID, err := uuid.Parse(*req.UnitID)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_id: %w", err)
		}
		list, err := s.unitRepo.ListByProduct(ctx, productID, false)
		if err != nil {
			return nil, err
		}
		if unit = units.FindByID(list, unitID); unit == nil {
			return nil, ErrUnitNotInProduct
		}
	}

	stock, err := s.stockRepo.Get(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}

	check, err := units.ValidateStock(req.Quantity, unit, stock.Quantity)
	if err != nil {
		return nil, err
	}
	return stockCheckToResponse(check), nil
}

func (s *pricingService) GetStock(ctx context.Context, productID, branchID uuid.UUID) (*dto.BranchStockResponse, error) {
	stock, err := s.stockRepo.Get(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	return branchStockToResponse(stock), nil
}

func (s *pricingService) AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.BranchStockResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch_id: %w", err)
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, errors.New("product not found")
	}
	stock, err := s.stockRepo.Adjust(ctx, productID, branchID, req.Delta)
	if err != nil {
		return nil, err
	}
	return branchStockToResponse(stock), nil
}

func stockCheckToResponse(c units.StockCheck) *dto.ValidateStockResponse {
	return &dto.ValidateStockResponse{
		RequiredBase:     c.RequiredBase,
		Available:        c.Available,
		Valid:            c.Valid,
		Degraded:         c.Degraded,
		RequiredDisplay:  fmt.Sprintf("%.2f", c.RequiredBase),
		AvailableDisplay: fmt.Sprintf("%.2f", c.Available),
	}
}

func branchStockToResponse(s *model.BranchStock) *dto.BranchStockResponse {
	return &dto.BranchStockResponse{
		ProductID: s.ProductID.String(),
		BranchID:  s.BranchID.String(),
		Quantity:  s.Quantity,
		Display:   fmt.Sprintf("%.2f", s.Quantity),
	}
}

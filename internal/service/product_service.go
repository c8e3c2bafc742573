package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"unitpos/internal/dto"
	"unitpos/internal/model"
	"unitpos/internal/repository"
	"unitpos/internal/worker"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo       repository.ProductRepository
	unitRepo   repository.UnitRepository
	dispatcher *worker.Dispatcher
}

func NewProductService(repo repository.ProductRepository, unitRepo repository.UnitRepository, dispatcher *worker.Dispatcher) ProductService {
	return &productService{repo: repo, unitRepo: unitRepo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Create inserts the product together with its BASE unit record in one
// transaction. The BASE record carries factor 1 and is immutable afterwards;
// every product has exactly one.
func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, fmt.Errorf("a product with sku %q already exists", req.SKU)
	}

	symbol := req.BaseUnitSymbol
	if symbol == "" {
		symbol = "UNIDAD"
	}

	p := &model.Product{
		SKU:                 req.SKU,
		Name:                req.Name,
		Category:            req.Category,
		BaseUnitSymbol:      symbol,
		CostPriceCents:      req.CostPriceCents,
		RetailPriceCents:    req.RetailPriceCents,
		WholesalePriceCents: req.WholesalePriceCents,
		Active:              true,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx == nil {
			if err := s.repo.Create(ctx, p); err != nil {
				return err
			}
			return s.unitRepo.Create(ctx, baseUnitFor(p))
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return s.unitRepo.CreateTx(tx, baseUnitFor(p))
	})
	if txErr != nil {
		return nil, txErr
	}
	return productToResponse(p), nil
}

func baseUnitFor(p *model.Product) *model.UnitConversion {
	return &model.UnitConversion{
		ProductID:        p.ID,
		UnitName:         p.BaseUnitSymbol,
		UnitSymbol:       p.BaseUnitSymbol,
		ConversionFactor: 1,
		UnitType:         model.UnitTypeBase,
		SalesType:        model.SalesTypeBoth,
		Active:           true,
	}
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	priceChanged := false
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.CostPriceCents != nil {
		p.CostPriceCents = *req.CostPriceCents
	}
	if req.RetailPriceCents != nil && *req.RetailPriceCents != p.RetailPriceCents {
		p.RetailPriceCents = *req.RetailPriceCents
		priceChanged = true
	}
	if req.WholesalePriceCents != nil && *req.WholesalePriceCents != p.WholesalePriceCents {
		p.WholesalePriceCents = *req.WholesalePriceCents
		priceChanged = true
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Base-unit prices feed every derived unit price, so a change must drop
	// the product's cached quotes.
	if priceChanged && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueCatalogEvent(ctx, worker.CatalogEvent{
			Kind:      "product_updated",
			ProductID: p.ID.String(),
		})
	}
	return productToResponse(p), nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}
	return s.repo.Reactivate(ctx, id)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                  p.ID.String(),
		SKU:                 p.SKU,
		Name:                p.Name,
		Category:            p.Category,
		BaseUnitSymbol:      p.BaseUnitSymbol,
		CostPriceCents:      p.CostPriceCents,
		RetailPriceCents:    p.RetailPriceCents,
		WholesalePriceCents: p.WholesalePriceCents,
		Active:              p.Active,
	}
}

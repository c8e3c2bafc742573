package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"unitpos/internal/dto"
	"unitpos/internal/model"
	"unitpos/internal/repository"
	"unitpos/internal/units"
	"unitpos/internal/worker"
)

// Guard errors for the BASE record. The management UI disables these fields,
// but nothing on the wire prevents a direct request, so the service enforces
// them too.
var (
	ErrBaseUnitImmutable   = errors.New("the BASE unit's type and conversion factor cannot change")
	ErrDuplicateBaseUnit   = errors.New("product already has a BASE unit")
	ErrBaseUnitUndeletable = errors.New("the BASE unit cannot be deleted")
	ErrUnitNotInProduct    = errors.New("unit does not belong to the product or is inactive")
)

type CatalogService interface {
	ListUnits(ctx context.Context, productID uuid.UUID, filter dto.UnitFilter) (*dto.UnitListResponse, error)
	CreateUnit(ctx context.Context, productID uuid.UUID, req dto.CreateUnitRequest) (*dto.UnitResponse, error)
	UpdateUnit(ctx context.Context, unitID uuid.UUID, req dto.UpdateUnitRequest) (*dto.UnitResponse, error)
	DeleteUnit(ctx context.Context, unitID uuid.UUID) error
	Convert(ctx context.Context, req dto.ConvertRequest) (*dto.ConvertResponse, error)
	PriceHistory(ctx context.Context, unitID uuid.UUID) (*dto.PriceHistoryResponse, error)
}

type catalogService struct {
	unitRepo    repository.UnitRepository
	productRepo repository.ProductRepository
	historyRepo repository.HistoryRepository
	dispatcher  *worker.Dispatcher
}

func NewCatalogService(
	unitRepo repository.UnitRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
	dispatcher *worker.Dispatcher,
) CatalogService {
	return &catalogService{
		unitRepo:    unitRepo,
		productRepo: productRepo,
		historyRepo: historyRepo,
		dispatcher:  dispatcher,
	}
}

// ── ListUnits ────────────────────────────────────────────────────────────────

func (s *catalogService) ListUnits(ctx context.Context, productID uuid.UUID, filter dto.UnitFilter) (*dto.UnitListResponse, error) {
	list, err := s.unitRepo.ListByProduct(ctx, productID, filter.Scope == "raw")
	if err != nil {
		return nil, err
	}

	switch filter.Scope {
	case "sales":
		channel := model.Channel(filter.Channel)
		if !channel.Valid() {
			return nil, errors.New("scope=sales requires channel RETAIL or WHOLESALE")
		}
		list = units.ActiveForChannel(list, channel)
	case "raw":
		// everything, inactive included (historical display)
	default:
		list = units.ActiveUnits(list)
	}

	units.SortForDisplay(list)

	resp := &dto.UnitListResponse{Data: make([]dto.UnitResponse, 0, len(list))}
	for i := range list {
		resp.Data = append(resp.Data, *unitToResponse(&list[i]))
	}
	return resp, nil
}

// ── CreateUnit ───────────────────────────────────────────────────────────────

func (s *catalogService) CreateUnit(ctx context.Context, productID uuid.UUID, req dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("product %s not found", productID)
	}

	unitType := model.UnitType(req.UnitType)
	if unitType == model.UnitTypeBase {
		count, err := s.unitRepo.CountBase(ctx, productID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateBaseUnit
		}
		if req.ConversionFactor != 1 {
			return nil, errors.New("the BASE unit must have conversion factor 1")
		}
	}

	salesType := model.SalesType(req.SalesType)
	if salesType == "" {
		salesType = model.SalesTypeBoth
	}

	u := &model.UnitConversion{
		ProductID:           productID,
		UnitName:            req.UnitName,
		UnitSymbol:          req.UnitSymbol,
		ConversionFactor:    req.ConversionFactor,
		UnitType:            unitType,
		SalesType:           salesType,
		RetailPriceCents:    req.RetailPriceCents,
		WholesalePriceCents: req.WholesalePriceCents,
		Active:              true,
	}
	if err := s.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.notify(ctx, worker.CatalogEvent{
		Kind:      "unit_created",
		ProductID: productID.String(),
		UnitID:    u.ID.String(),
	})
	return unitToResponse(u), nil
}

// ── UpdateUnit ───────────────────────────────────────────────────────────────

func (s *catalogService) UpdateUnit(ctx context.Context, unitID uuid.UUID, req dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	u, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("unit %s not found", unitID)
	}

	if u.IsBase() {
		if req.UnitType != nil && model.UnitType(*req.UnitType) != model.UnitTypeBase {
			return nil, ErrBaseUnitImmutable
		}
		if req.ConversionFactor != nil && *req.ConversionFactor != u.ConversionFactor {
			return nil, ErrBaseUnitImmutable
		}
	} else if req.UnitType != nil && model.UnitType(*req.UnitType) == model.UnitTypeBase {
		return nil, ErrDuplicateBaseUnit
	}

	retailBefore := u.RetailPriceCents
	wholesaleBefore := u.WholesalePriceCents

	if req.UnitName != nil {
		u.UnitName = *req.UnitName
	}
	if req.UnitSymbol != nil {
		u.UnitSymbol = *req.UnitSymbol
	}
	if req.ConversionFactor != nil && !u.IsBase() {
		u.ConversionFactor = *req.ConversionFactor
	}
	if req.UnitType != nil && !u.IsBase() {
		u.UnitType = model.UnitType(*req.UnitType)
	}
	if req.SalesType != nil {
		u.SalesType = model.SalesType(*req.SalesType)
	}
	if req.RetailPriceCents != nil {
		u.RetailPriceCents = req.RetailPriceCents
	}
	if req.WholesalePriceCents != nil {
		u.WholesalePriceCents = req.WholesalePriceCents
	}
	if req.Active != nil {
		u.Active = *req.Active
	}

	if err := s.unitRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.notify(ctx, worker.CatalogEvent{
		Kind:            "unit_updated",
		ProductID:       u.ProductID.String(),
		UnitID:          u.ID.String(),
		RetailBefore:    retailBefore,
		RetailAfter:     u.RetailPriceCents,
		WholesaleBefore: wholesaleBefore,
		WholesaleAfter:  u.WholesalePriceCents,
	})
	return unitToResponse(u), nil
}

// ── DeleteUnit ───────────────────────────────────────────────────────────────

func (s *catalogService) DeleteUnit(ctx context.Context, unitID uuid.UUID) error {
	u, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		return fmt.Errorf("unit %s not found", unitID)
	}
	if u.IsBase() {
		return ErrBaseUnitUndeletable
	}
	if err := s.unitRepo.Delete(ctx, unitID); err != nil {
		return err
	}
	s.notify(ctx, worker.CatalogEvent{
		Kind:      "unit_deleted",
		ProductID: u.ProductID.String(),
		UnitID:    u.ID.String(),
	})
	return nil
}

// ── Convert ──────────────────────────────────────────────────────────────────

// Convert is the authoritative server-side conversion. It operates on the
// product's active units only; a unit outside that set is a request error,
// while a non-positive factor inside it is a data-integrity failure.
func (s *catalogService) Convert(ctx context.Context, req dto.ConvertRequest) (*dto.ConvertResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	fromID, err := uuid.Parse(req.FromUnitID)
	if err != nil {
		return nil, fmt.Errorf("invalid from_unit_id: %w", err)
	}

	list, err := s.unitRepo.ListByProduct(ctx, productID, false)
	if err != nil {
		return nil, err
	}

	from := units.FindByID(list, fromID)
	if from == nil {
		return nil, ErrUnitNotInProduct
	}

	var to *model.UnitConversion
	if req.ToUnitID != nil {
		toID, err := uuid.Parse(*req.ToUnitID)
		if err != nil {
			return nil, fmt.Errorf("invalid to_unit_id: %w", err)
		}
		if to = units.FindByID(list, toID); to == nil {
			return nil, ErrUnitNotInProduct
		}
	}

	res, err := units.Convert(req.Quantity, from, to)
	if err != nil {
		// Non-positive factor in stored data — surfaced, never guessed around.
		log.Error().Err(err).
			Str("product_id", req.ProductID).
			Str("from_unit_id", req.FromUnitID).
			Msg("conversion aborted on data integrity error")
		return nil, err
	}

	resp := &dto.ConvertResponse{
		OriginalQuantity:  res.OriginalQuantity,
		FromUnitID:        res.FromUnitID.String(),
		BaseQuantity:      res.BaseQuantity,
		ConvertedQuantity: res.ConvertedQuantity,
	}
	if res.ToUnitID != nil {
		id := res.ToUnitID.String()
		resp.ToUnitID = &id
	}
	return resp, nil
}

// ── PriceHistory ─────────────────────────────────────────────────────────────

func (s *catalogService) PriceHistory(ctx context.Context, unitID uuid.UUID) (*dto.PriceHistoryResponse, error) {
	rows, err := s.historyRepo.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	resp := &dto.PriceHistoryResponse{Data: make([]dto.PriceHistoryEntry, 0, len(rows))}
	for _, h := range rows {
		resp.Data = append(resp.Data, dto.PriceHistoryEntry{
			ID:              h.ID.String(),
			UnitID:          h.UnitID.String(),
			ProductID:       h.ProductID.String(),
			RetailBefore:    h.RetailBefore,
			RetailAfter:     h.RetailAfter,
			WholesaleBefore: h.WholesaleBefore,
			WholesaleAfter:  h.WholesaleAfter,
			Reason:          h.Reason,
			CreatedAt:       h.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// notify dispatches a catalog event, best effort. A lost event only delays
// cache expiry until TTL; the write itself already succeeded.
func (s *catalogService) notify(ctx context.Context, ev worker.CatalogEvent) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueCatalogEvent(ctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Msg("failed to enqueue catalog event")
	}
}

func unitToResponse(u *model.UnitConversion) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:                  u.ID.String(),
		ProductID:           u.ProductID.String(),
		UnitName:            u.UnitName,
		UnitSymbol:          u.UnitSymbol,
		ConversionFactor:    u.ConversionFactor,
		UnitType:            string(u.UnitType),
		SalesType:           string(u.SalesType),
		RetailPriceCents:    u.RetailPriceCents,
		WholesalePriceCents: u.WholesalePriceCents,
		Active:              u.Active,
		CreatedAt:           u.CreatedAt.Format(time.RFC3339),
	}
}

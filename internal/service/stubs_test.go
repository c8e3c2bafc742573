package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"unitpos/internal/dto"
	"unitpos/internal/model"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.Active {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Active = true
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

type stubUnitRepo struct {
	units map[uuid.UUID]*model.UnitConversion
}

func newStubUnitRepo() *stubUnitRepo {
	return &stubUnitRepo{units: make(map[uuid.UUID]*model.UnitConversion)}
}

func (r *stubUnitRepo) Create(_ context.Context, u *model.UnitConversion) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.units[u.ID] = u
	return nil
}

func (r *stubUnitRepo) CreateTx(_ *gorm.DB, u *model.UnitConversion) error {
	return r.Create(context.Background(), u)
}

func (r *stubUnitRepo) FindByID(_ context.Context, id uuid.UUID) (*model.UnitConversion, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *stubUnitRepo) ListByProduct(_ context.Context, productID uuid.UUID, includeInactive bool) ([]model.UnitConversion, error) {
	var result []model.UnitConversion
	for _, u := range r.units {
		if u.ProductID != productID {
			continue
		}
		if !includeInactive && !u.Active {
			continue
		}
		result = append(result, *u)
	}
	return result, nil
}

func (r *stubUnitRepo) Update(_ context.Context, u *model.UnitConversion) error {
	r.units[u.ID] = u
	return nil
}

func (r *stubUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.units[id]; !ok {
		return errors.New("record not found")
	}
	delete(r.units, id)
	return nil
}

func (r *stubUnitRepo) CountBase(_ context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	for _, u := range r.units {
		if u.ProductID == productID && u.UnitType == model.UnitTypeBase {
			count++
		}
	}
	return count, nil
}

func (r *stubUnitRepo) DB() *gorm.DB { return nil }

type stubStockRepo struct {
	// keyed by product|branch
	rows map[string]*model.BranchStock
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{rows: make(map[string]*model.BranchStock)}
}

func stockKey(productID, branchID uuid.UUID) string {
	return productID.String() + "|" + branchID.String()
}

func (r *stubStockRepo) Get(_ context.Context, productID, branchID uuid.UUID) (*model.BranchStock, error) {
	if row, ok := r.rows[stockKey(productID, branchID)]; ok {
		return row, nil
	}
	return &model.BranchStock{ProductID: productID, BranchID: branchID}, nil
}

func (r *stubStockRepo) Adjust(_ context.Context, productID, branchID uuid.UUID, delta float64) (*model.BranchStock, error) {
	key := stockKey(productID, branchID)
	row, ok := r.rows[key]
	if !ok {
		row = &model.BranchStock{ID: uuid.New(), ProductID: productID, BranchID: branchID}
		r.rows[key] = row
	}
	row.Quantity += delta
	return row, nil
}

type stubHistoryRepo struct {
	rows []*model.UnitPriceHistory
}

func (r *stubHistoryRepo) Create(_ context.Context, h *model.UnitPriceHistory) error {
	r.rows = append(r.rows, h)
	return nil
}

func (r *stubHistoryRepo) ListByUnit(_ context.Context, unitID uuid.UUID) ([]model.UnitPriceHistory, error) {
	var result []model.UnitPriceHistory
	for _, h := range r.rows {
		if h.UnitID == unitID {
			result = append(result, *h)
		}
	}
	return result, nil
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitpos/internal/dto"
	"unitpos/internal/model"
	"unitpos/internal/units"
)

func ptr[T any](v T) *T { return &v }

func seedProduct(t *testing.T, products *stubProductRepo, unitRepo *stubUnitRepo) *model.Product {
	t.Helper()
	p := &model.Product{
		SKU:                 "SUG-001",
		Name:                "Sugar",
		Category:            "groceries",
		BaseUnitSymbol:      "LIBRA",
		RetailPriceCents:    10000,
		WholesalePriceCents: 9000,
		Active:              true,
	}
	require.NoError(t, products.Create(context.Background(), p))
	require.NoError(t, unitRepo.Create(context.Background(), &model.UnitConversion{
		ProductID:        p.ID,
		UnitName:         "Libra",
		UnitSymbol:       "LIBRA",
		ConversionFactor: 1,
		UnitType:         model.UnitTypeBase,
		SalesType:        model.SalesTypeBoth,
		Active:           true,
	}))
	return p
}

func newCatalogFixture(t *testing.T) (CatalogService, *stubProductRepo, *stubUnitRepo, *model.Product) {
	products := newStubProductRepo()
	unitRepo := newStubUnitRepo()
	p := seedProduct(t, products, unitRepo)
	svc := NewCatalogService(unitRepo, products, &stubHistoryRepo{}, nil)
	return svc, products, unitRepo, p
}

func TestCreateUnit(t *testing.T) {
	svc, _, _, p := newCatalogFixture(t)

	resp, err := svc.CreateUnit(context.Background(), p.ID, dto.CreateUnitRequest{
		UnitName:         "Saco",
		UnitSymbol:       "SACO",
		ConversionFactor: 50,
		UnitType:         "PURCHASE",
	})
	require.NoError(t, err)
	assert.Equal(t, "SACO", resp.UnitSymbol)
	assert.Equal(t, 50.0, resp.ConversionFactor)
	// SalesType defaults to BOTH when omitted.
	assert.Equal(t, "BOTH", resp.SalesType)
	assert.True(t, resp.Active)
}

func TestCreateUnitRejectsSecondBase(t *testing.T) {
	svc, _, _, p := newCatalogFixture(t)

	_, err := svc.CreateUnit(context.Background(), p.ID, dto.CreateUnitRequest{
		UnitName:         "Otra base",
		UnitSymbol:       "X",
		ConversionFactor: 1,
		UnitType:         "BASE",
	})
	assert.ErrorIs(t, err, ErrDuplicateBaseUnit)
}

func TestCreateUnitRejectsBaseWithNonUnitFactor(t *testing.T) {
	products := newStubProductRepo()
	unitRepo := newStubUnitRepo()
	p := &model.Product{SKU: "A", Name: "A", Category: "c", Active: true}
	require.NoError(t, products.Create(context.Background(), p))
	svc := NewCatalogService(unitRepo, products, &stubHistoryRepo{}, nil)

	_, err := svc.CreateUnit(context.Background(), p.ID, dto.CreateUnitRequest{
		UnitName:         "Base",
		UnitSymbol:       "B",
		ConversionFactor: 2,
		UnitType:         "BASE",
	})
	assert.Error(t, err)
}

func TestUpdateUnitGuardsBaseRecord(t *testing.T) {
	svc, _, unitRepo, p := newCatalogFixture(t)

	var base *model.UnitConversion
	for _, u := range unitRepo.units {
		if u.IsBase() {
			base = u
		}
	}
	require.NotNil(t, base)

	_, err := svc.UpdateUnit(context.Background(), base.ID, dto.UpdateUnitRequest{
		ConversionFactor: ptr(5.0),
	})
	assert.ErrorIs(t, err, ErrBaseUnitImmutable)

	_, err = svc.UpdateUnit(context.Background(), base.ID, dto.UpdateUnitRequest{
		UnitType: ptr("SALE"),
	})
	assert.ErrorIs(t, err, ErrBaseUnitImmutable)

	// Renaming the BASE unit is fine — only type and factor are frozen.
	resp, err := svc.UpdateUnit(context.Background(), base.ID, dto.UpdateUnitRequest{
		UnitName: ptr("Pound"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pound", resp.UnitName)
	_ = p
}

func TestUpdateUnitRejectsPromotionToBase(t *testing.T) {
	svc, _, _, p := newCatalogFixture(t)

	created, err := svc.CreateUnit(context.Background(), p.ID, dto.CreateUnitRequest{
		UnitName: "Caja", UnitSymbol: "CAJA", ConversionFactor: 12, UnitType: "SALE",
	})
	require.NoError(t, err)

	unitID := uuid.MustParse(created.ID)
	_, err = svc.UpdateUnit(context.Background(), unitID, dto.UpdateUnitRequest{
		UnitType: ptr("BASE"),
	})
	assert.ErrorIs(t, err, ErrDuplicateBaseUnit)
}

func TestDeleteUnit(t *testing.T) {
	svc, _, unitRepo, p := newCatalogFixture(t)

	created, err := svc.CreateUnit(context.Background(), p.ID, dto.CreateUnitRequest{
		UnitName: "Caja", UnitSymbol: "CAJA", ConversionFactor: 12, UnitType: "SALE",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUnit(context.Background(), uuid.MustParse(created.ID)))

	var base *model.UnitConversion
	for _, u := range unitRepo.units {
		if u.IsBase() {
			base = u
		}
	}
	require.NotNil(t, base)
	assert.ErrorIs(t, svc.DeleteUnit(context.Background(), base.ID), ErrBaseUnitUndeletable)
}

func TestListUnitsFiltersByScopeAndChannel(t *testing.T) {
	svc, _, _, p := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUnit(ctx, p.ID, dto.CreateUnitRequest{
		UnitName: "Caja", UnitSymbol: "CAJA", ConversionFactor: 12,
		UnitType: "SALE", SalesType: "RETAIL",
	})
	require.NoError(t, err)
	created, err := svc.CreateUnit(ctx, p.ID, dto.CreateUnitRequest{
		UnitName: "Pallet", UnitSymbol: "PAL", ConversionFactor: 600,
		UnitType: "SALE", SalesType: "WHOLESALE",
	})
	require.NoError(t, err)

	// Deactivate the pallet: it must vanish from every non-raw scope.
	_, err = svc.UpdateUnit(ctx, uuid.MustParse(created.ID), dto.UpdateUnitRequest{Active: ptr(false)})
	require.NoError(t, err)

	retail, err := svc.ListUnits(ctx, p.ID, dto.UnitFilter{Scope: "sales", Channel: "RETAIL"})
	require.NoError(t, err)
	assert.Len(t, retail.Data, 2) // base + caja
	assert.Equal(t, "LIBRA", retail.Data[0].UnitSymbol)

	wholesale, err := svc.ListUnits(ctx, p.ID, dto.UnitFilter{Scope: "sales", Channel: "WHOLESALE"})
	require.NoError(t, err)
	assert.Len(t, wholesale.Data, 1) // base only, pallet is inactive

	raw, err := svc.ListUnits(ctx, p.ID, dto.UnitFilter{Scope: "raw"})
	require.NoError(t, err)
	assert.Len(t, raw.Data, 3)

	_, err = svc.ListUnits(ctx, p.ID, dto.UnitFilter{Scope: "sales"})
	assert.Error(t, err, "scope=sales without channel must be rejected")
}

func TestConvertThroughService(t *testing.T) {
	svc, _, _, p := newCatalogFixture(t)
	ctx := context.Background()

	sack, err := svc.CreateUnit(ctx, p.ID, dto.CreateUnitRequest{
		UnitName: "Saco", UnitSymbol: "SACO", ConversionFactor: 50, UnitType: "PURCHASE",
	})
	require.NoError(t, err)
	box, err := svc.CreateUnit(ctx, p.ID, dto.CreateUnitRequest{
		UnitName: "Caja", UnitSymbol: "CAJA", ConversionFactor: 12, UnitType: "SALE",
	})
	require.NoError(t, err)

	resp, err := svc.Convert(ctx, dto.ConvertRequest{
		ProductID:  p.ID.String(),
		Quantity:   3,
		FromUnitID: sack.ID,
		ToUnitID:   &box.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, resp.BaseQuantity)
	assert.InDelta(t, 12.5, resp.ConvertedQuantity, 1e-9)

	// Unknown unit id is a request error, not a crash.
	_, err = svc.Convert(ctx, dto.ConvertRequest{
		ProductID:  p.ID.String(),
		Quantity:   1,
		FromUnitID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, ErrUnitNotInProduct)
}

func TestConvertSurfacesIntegrityError(t *testing.T) {
	svc, _, unitRepo, p := newCatalogFixture(t)
	ctx := context.Background()

	// Corrupt record planted directly in the repo — bypasses validation the
	// way a bad migration would.
	bad := &model.UnitConversion{
		ProductID:        p.ID,
		UnitName:         "Broken",
		UnitSymbol:       "BRK",
		ConversionFactor: 0,
		UnitType:         model.UnitTypeSale,
		SalesType:        model.SalesTypeBoth,
		Active:           true,
	}
	require.NoError(t, unitRepo.Create(ctx, bad))

	_, err := svc.Convert(ctx, dto.ConvertRequest{
		ProductID:  p.ID.String(),
		Quantity:   1,
		FromUnitID: bad.ID.String(),
	})
	assert.ErrorIs(t, err, units.ErrInvalidConversionFactor)
}

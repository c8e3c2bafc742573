package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitpos/internal/dto"
	"unitpos/internal/model"
)

func TestCreateProductAutoCreatesBaseUnit(t *testing.T) {
	products := newStubProductRepo()
	unitRepo := newStubUnitRepo()
	svc := NewProductService(products, unitRepo, nil)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU:              "SUG-001",
		Name:             "Sugar",
		Category:         "groceries",
		BaseUnitSymbol:   "LIBRA",
		RetailPriceCents: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, "LIBRA", resp.BaseUnitSymbol)

	productID := uuid.MustParse(resp.ID)
	list, err := unitRepo.ListByProduct(context.Background(), productID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.UnitTypeBase, list[0].UnitType)
	assert.Equal(t, 1.0, list[0].ConversionFactor)
	assert.Equal(t, "LIBRA", list[0].UnitSymbol)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	products := newStubProductRepo()
	unitRepo := newStubUnitRepo()
	svc := NewProductService(products, unitRepo, nil)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "DUP-01", Name: "First", Category: "c",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "DUP-01", Name: "Second", Category: "c",
	})
	assert.Error(t, err)
}

func TestDeactivateIsSoftFlag(t *testing.T) {
	products := newStubProductRepo()
	unitRepo := newStubUnitRepo()
	svc := NewProductService(products, unitRepo, nil)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "SOFT-01", Name: "Soft", Category: "c",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, svc.Deactivate(context.Background(), id))
	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, svc.Reactivate(context.Background(), id))
	got, err = svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestUpdateProductPatchesFields(t *testing.T) {
	products := newStubProductRepo()
	unitRepo := newStubUnitRepo()
	svc := NewProductService(products, unitRepo, nil)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "UPD-01", Name: "Before", Category: "c", RetailPriceCents: 100,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	newName := "After"
	newRetail := int64(250)
	updated, err := svc.Update(context.Background(), id, dto.UpdateProductRequest{
		Name:             &newName,
		RetailPriceCents: &newRetail,
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, int64(250), updated.RetailPriceCents)
	// Untouched fields keep their values.
	assert.Equal(t, "UPD-01", updated.SKU)
}

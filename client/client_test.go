package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitpos/internal/dto"
	"unitpos/internal/model"
)

func TestUnitsFetchAndDecode(t *testing.T) {
	productID := uuid.New()
	unitID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/products/"+productID.String()+"/units", r.URL.Path)
		assert.Equal(t, "sales", r.URL.Query().Get("scope"))
		assert.Equal(t, "RETAIL", r.URL.Query().Get("channel"))
		_ = json.NewEncoder(w).Encode(dto.UnitListResponse{Data: []dto.UnitResponse{{
			ID:               unitID.String(),
			ProductID:        productID.String(),
			UnitName:         "Box",
			UnitSymbol:       "BOX",
			ConversionFactor: 12,
			UnitType:         "SALE",
			SalesType:        "BOTH",
			Active:           true,
		}}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	list, degraded, err := c.Units(context.Background(), productID, model.ChannelRetail)
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, list, 1)
	assert.Equal(t, unitID, list[0].ID)
	assert.Equal(t, 12.0, list[0].ConversionFactor)
	assert.Equal(t, model.SalesTypeBoth, list[0].SalesType)
}

func TestUnitsDegradesToEmptyListOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close() // connection refused from here on

	c := New(srv.URL)
	list, degraded, err := c.Units(context.Background(), uuid.New(), model.ChannelRetail)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Empty(t, list)
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	c := New(srv.URL)
	for i := 0; i < DefaultBreakerConfig().FailureThreshold; i++ {
		_, degraded, err := c.Units(context.Background(), uuid.New(), model.ChannelRetail)
		require.NoError(t, err)
		assert.True(t, degraded)
	}
	assert.Equal(t, BreakerOpen, c.Breaker().State())

	// An open breaker still degrades cleanly instead of erroring.
	list, degraded, err := c.Units(context.Background(), uuid.New(), model.ChannelRetail)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Empty(t, list)
}

func TestValidateStockFallsBackToOneToOne(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	c := New(srv.URL)
	resp, err := c.ValidateStock(context.Background(), dto.ValidateStockRequest{
		ProductID: uuid.New().String(),
		BranchID:  uuid.New().String(),
		Quantity:  3,
	}, 5)
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.True(t, resp.Valid)
	assert.Equal(t, 3.0, resp.RequiredBase)
	assert.Equal(t, 5.0, resp.Available)

	resp, err = c.ValidateStock(context.Background(), dto.ValidateStockRequest{
		ProductID: uuid.New().String(),
		BranchID:  uuid.New().String(),
		Quantity:  6,
	}, 5)
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.False(t, resp.Valid)
}

func TestValidateStockPrefersServerAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/stock/validate", r.URL.Path)
		_ = json.NewEncoder(w).Encode(dto.ValidateStockResponse{
			RequiredBase: 100,
			Available:    120,
			Valid:        true,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ValidateStock(context.Background(), dto.ValidateStockRequest{
		ProductID: uuid.New().String(),
		BranchID:  uuid.New().String(),
		Quantity:  2,
	}, 0)
	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	assert.Equal(t, 100.0, resp.RequiredBase)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"unitpos/internal/apierror"
	"unitpos/internal/dto"
	"unitpos/internal/model"
	"unitpos/internal/service"
	"unitpos/internal/units"
)

type PricingHandler struct {
	catalog  service.CatalogService
	pricing  service.PricingService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewPricingHandler(catalog service.CatalogService, pricing service.PricingService, rdb *redis.Client, cacheTTL time.Duration) *PricingHandler {
	return &PricingHandler{catalog: catalog, pricing: pricing, rdb: rdb, cacheTTL: cacheTTL}
}

func priceCacheKey(productID uuid.UUID, unitID *uuid.UUID, channel model.Channel) string {
	unit := "base"
	if unitID != nil {
		unit = unitID.String()
	}
	return "price:" + productID.String() + ":" + unit + ":" + string(channel)
}

// Quote answers GET /v1/products/:id/price?unit_id=&channel=. Quotes are
// cached per (product, unit, channel); the catalog worker invalidates the
// product's price keys on any unit or product price change.
func (h *PricingHandler) Quote(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product id"))
		return
	}

	channel := model.Channel(c.Query("channel"))
	if !channel.Valid() {
		c.JSON(http.StatusBadRequest, apierror.New("channel must be RETAIL or WHOLESALE"))
		return
	}

	var unitID *uuid.UUID
	if raw := c.Query("unit_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid unit_id"))
			return
		}
		unitID = &id
	}

	ctx := c.Request.Context()
	cacheKey := priceCacheKey(productID, unitID, channel)

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.PriceQuoteResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	resp, err := h.pricing.Quote(ctx, productID, unitID, channel)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrUnitNotInProduct) {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}

	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, h.cacheTTL).Err()
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) Convert(c *gin.Context) {
	var req dto.ConvertRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.catalog.Convert(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, units.ErrInvalidConversionFactor):
			// Stored factor is corrupt; this is a server fault, not a bad request.
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		case errors.Is(err, service.ErrUnitNotInProduct):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricingHandler) ValidateStock(c *gin.Context) {
	var req dto.ValidateStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.pricing.ValidateStock(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, units.ErrInvalidConversionFactor):
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		case errors.Is(err, service.ErrUnitNotInProduct):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

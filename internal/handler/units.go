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
	"unitpos/internal/service"
)

// UnitsHandler serves the per-product unit catalog. Reads go through a Redis
// snapshot cache; the catalog worker drops the keys on every mutation, so a
// cached response is at worst TTL-stale after a missed event.
type UnitsHandler struct {
	svc      service.CatalogService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewUnitsHandler(svc service.CatalogService, rdb *redis.Client, cacheTTL time.Duration) *UnitsHandler {
	return &UnitsHandler{svc: svc, rdb: rdb, cacheTTL: cacheTTL}
}

func unitsCacheKey(productID uuid.UUID, f dto.UnitFilter) string {
	return "units:" + productID.String() + ":" + f.Scope + ":" + f.Channel
}

func (h *UnitsHandler) List(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product id"))
		return
	}
	var filter dto.UnitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if filter.Scope == "" {
		filter.Scope = "all"
	}
	ctx := c.Request.Context()
	cacheKey := unitsCacheKey(productID, filter)

	// Cache errors are never surfaced: the DB is the source of truth and
	// callers degrade to an uncached read.
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.UnitListResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	resp, err := h.svc.ListUnits(ctx, productID, filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, h.cacheTTL).Err()
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UnitsHandler) Create(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product id"))
		return
	}
	var req dto.CreateUnitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUnit(c.Request.Context(), productID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UnitsHandler) Update(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid unit id"))
		return
	}
	var req dto.UpdateUnitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateUnit(c.Request.Context(), unitID, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrBaseUnitImmutable) || errors.Is(err, service.ErrDuplicateBaseUnit) {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UnitsHandler) Delete(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid unit id"))
		return
	}
	if err := h.svc.DeleteUnit(c.Request.Context(), unitID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrBaseUnitUndeletable) {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UnitsHandler) PriceHistory(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid unit id"))
		return
	}
	resp, err := h.svc.PriceHistory(c.Request.Context(), unitID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to read price history"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Package client is the consumer side of the catalog API, as used by a POS
// terminal. It degrades instead of blocking a sale: an unreachable catalog
// yields an empty unit list (base-unit flow), and stock validation falls back
// to a 1:1 check against the last known quantity.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"unitpos/internal/dto"
	"unitpos/internal/model"
	"unitpos/internal/units"
)

type Client struct {
	baseURL string
	http    *http.Client
	breaker *Breaker
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		breaker: NewBreaker(DefaultBreakerConfig()),
	}
}

// Breaker exposes the breaker for status displays.
func (c *Client) Breaker() *Breaker { return c.breaker }

// Units fetches the sellable units of a product for the given channel.
// On any failure it returns an empty list with degraded=true and no error:
// the terminal falls back to the product's base unit and keeps selling.
func (c *Client) Units(ctx context.Context, productID uuid.UUID, channel model.Channel) (list []model.UnitConversion, degraded bool, err error) {
	url := fmt.Sprintf("%s/v1/products/%s/units?scope=sales&channel=%s", c.baseURL, productID, channel)

	var resp dto.UnitListResponse
	fetchErr := c.breaker.Execute(func() error {
		return c.getJSON(ctx, url, &resp)
	})
	if fetchErr != nil {
		log.Warn().Err(fetchErr).
			Str("product_id", productID.String()).
			Msg("unit catalog unavailable, degrading to base unit")
		return []model.UnitConversion{}, true, nil
	}

	list = make([]model.UnitConversion, 0, len(resp.Data))
	for _, u := range resp.Data {
		m, convErr := unitFromResponse(u)
		if convErr != nil {
			return nil, false, convErr
		}
		list = append(list, m)
	}
	return list, false, nil
}

// Convert asks the server for an authoritative conversion.
func (c *Client) Convert(ctx context.Context, req dto.ConvertRequest) (*dto.ConvertResponse, error) {
	var resp dto.ConvertResponse
	err := c.breaker.Execute(func() error {
		return c.postJSON(ctx, c.baseURL+"/v1/convert", req, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Quote fetches the resolved price for (product, unit?, channel).
func (c *Client) Quote(ctx context.Context, productID uuid.UUID, unitID *uuid.UUID, channel model.Channel) (*dto.PriceQuoteResponse, error) {
	url := fmt.Sprintf("%s/v1/products/%s/price?channel=%s", c.baseURL, productID, channel)
	if unitID != nil {
		url += "&unit_id=" + unitID.String()
	}
	var resp dto.PriceQuoteResponse
	err := c.breaker.Execute(func() error {
		return c.getJSON(ctx, url, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateStock asks the server to validate stock for the request. When the
// catalog is unreachable it falls back to a local 1:1 check against
// lastKnownBase, the terminal's most recent stock reading; the result is
// flagged degraded so the UI can warn the cashier.
func (c *Client) ValidateStock(ctx context.Context, req dto.ValidateStockRequest, lastKnownBase float64) (*dto.ValidateStockResponse, error) {
	var resp dto.ValidateStockResponse
	err := c.breaker.Execute(func() error {
		return c.postJSON(ctx, c.baseURL+"/v1/stock/validate", req, &resp)
	})
	if err == nil {
		return &resp, nil
	}

	log.Warn().Err(err).
		Str("product_id", req.ProductID).
		Msg("stock validation unavailable, falling back to 1:1 check")

	check := units.FallbackStockCheck(req.Quantity, lastKnownBase)
	return &dto.ValidateStockResponse{
		RequiredBase:     check.RequiredBase,
		Available:        check.Available,
		Valid:            check.Valid,
		Degraded:         true,
		RequiredDisplay:  fmt.Sprintf("%.2f", check.RequiredBase),
		AvailableDisplay: fmt.Sprintf("%.2f", check.Available),
	}, nil
}

// ── HTTP plumbing ─────────────────────────────────────────────────────────────

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, url string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("catalog API %s: %s", res.Status, string(b))
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func unitFromResponse(u dto.UnitResponse) (model.UnitConversion, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return model.UnitConversion{}, fmt.Errorf("bad unit id %q: %w", u.ID, err)
	}
	productID, err := uuid.Parse(u.ProductID)
	if err != nil {
		return model.UnitConversion{}, fmt.Errorf("bad product id %q: %w", u.ProductID, err)
	}
	return model.UnitConversion{
		ID:                  id,
		ProductID:           productID,
		UnitName:            u.UnitName,
		UnitSymbol:          u.UnitSymbol,
		ConversionFactor:    u.ConversionFactor,
		UnitType:            model.UnitType(u.UnitType),
		SalesType:           model.SalesType(u.SalesType),
		RetailPriceCents:    u.RetailPriceCents,
		WholesalePriceCents: u.WholesalePriceCents,
		Active:              u.Active,
	}, nil
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hoangnd-dev/storefront/pkg/config"
	"github.com/hoangnd-dev/storefront/pkg/db/models"
	"github.com/hoangnd-dev/storefront/pkg/logger"
	"github.com/hoangnd-dev/storefront/pkg/types"
)

// Client talks to the remote storefront service. Failures never escape
// this boundary: reads degrade to an empty list and order submission to
// a boolean.
type Client interface {
	FetchProducts(ctx context.Context) []models.Product
	SubmitOrder(ctx context.Context, order types.OrderRequest) bool
}

type client struct {
	baseURL  string
	http     *http.Client
	simulate bool
	logg     *logger.Logger
}

// NewClient constructs the gateway from its config block.
func NewClient(cfg config.GatewayConfig, logg *logger.Logger) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway base url required")
	}
	return &client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout},
		simulate: cfg.SimulateOrderSuccess,
		logg:     logg,
	}, nil
}

// FetchProducts returns the remote catalog, or an empty slice on any
// failure. Callers must treat empty as "unavailable" and fall back.
func (c *client) FetchProducts(ctx context.Context) []models.Product {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn(ctx, "product fetch failed", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.warn(ctx, fmt.Sprintf("product fetch returned %d", resp.StatusCode), nil)
		return nil
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		c.warn(ctx, "product payload malformed", err)
		return nil
	}
	return products
}

// SubmitOrder posts the order and reports acceptance. A rejection from a
// reachable server is false. When the server cannot be reached at all and
// simulated success is enabled, the order is reported as accepted so the
// local flow can complete.
func (c *client) SubmitOrder(ctx context.Context, order types.OrderRequest) bool {
	body, err := json.Marshal(order)
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn(ctx, "order submission failed to reach server", err)
		if c.simulate {
			c.warn(ctx, "reporting simulated order success", nil)
			return true
		}
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return true
	}
	c.warn(ctx, fmt.Sprintf("order rejected with status %d", resp.StatusCode), nil)
	return false
}

func (c *client) warn(ctx context.Context, msg string, err error) {
	if c.logg == nil {
		return
	}
	if err != nil {
		ctx = c.logg.WithField(ctx, "cause", err.Error())
	}
	c.logg.Warn(ctx, "gateway: "+msg)
}

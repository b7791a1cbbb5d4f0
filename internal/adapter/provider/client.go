package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

const (
	defaultTimeout = 25 * time.Second
	maxErrorBody   = 512

	submitEndpoint = "/submit"
	statusEndpoint = "/status"
)

var (
	// ErrTimeout indicates the provider did not answer within the client timeout.
	ErrTimeout = errors.New("provider timeout")
	// ErrMalformedResponse indicates a 2xx response without the expected fields.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrMissingBeneficiary indicates the order cannot be submitted without a phone number.
	ErrMissingBeneficiary = errors.New("order has no beneficiary number")
)

// Error is returned by every provider call. Op is "submit" or "status".
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config holds provider client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPClient talks to the data bundle aggregator over JSON/HTTP.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	catalog    *Catalog
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type submitRequest struct {
	RecipientPhone string `json:"recipient_phone"`
	NetworkID      int    `json:"network_id"`
	BundleUnits    int64  `json:"bundle_units"`
}

type submitResponse struct {
	TransactionCode string `json:"transaction_code"`
}

type statusRequest struct {
	TransactionID string `json:"transaction_id"`
}

type statusResponse struct {
	OrderItems []struct {
		Status string `json:"status"`
	} `json:"order_items"`
}

// NewHTTPClient validates the base URL and builds a client bounded by cfg.Timeout.
func NewHTTPClient(cfg Config, catalog *Catalog, logger *slog.Logger, m *metrics.Metrics) (*HTTPClient, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("provider url must be absolute")
	}
	if catalog == nil {
		return nil, fmt.Errorf("provider catalog is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL:    parsed,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		catalog:    catalog,
		logger:     logger.With("component", "provider"),
		metrics:    m,
	}, nil
}

// Submit pushes the order to the provider and returns its transaction code.
func (c *HTTPClient) Submit(ctx context.Context, order model.Order) (string, error) {
	const op = "submit"

	if strings.TrimSpace(order.BeneficiaryNumber) == "" {
		return "", &Error{Op: op, Err: ErrMissingBeneficiary}
	}
	phone, err := c.catalog.NormalizePhone(order.BeneficiaryNumber)
	if err != nil {
		return "", &Error{Op: op, Err: err}
	}
	units, err := c.catalog.BundleUnits(order.BundleSize)
	if err != nil {
		return "", &Error{Op: op, Err: err}
	}
	networkID, known := c.catalog.NetworkID(order.Network)
	if !known {
		c.logger.Warn("unknown network, using fallback id",
			slog.Int64("order_id", order.ID),
			slog.String("network", order.Network),
			slog.Int("network_id", networkID))
	}

	var resp submitResponse
	req := submitRequest{RecipientPhone: phone, NetworkID: networkID, BundleUnits: units}
	if err := c.post(ctx, op, submitEndpoint, req, &resp); err != nil {
		return "", err
	}
	code := strings.TrimSpace(resp.TransactionCode)
	if code == "" {
		return "", &Error{Op: op, Err: ErrMalformedResponse}
	}
	return code, nil
}

// FetchStatus returns the raw provider status for a previously submitted order.
func (c *HTTPClient) FetchStatus(ctx context.Context, reference string) (string, error) {
	const op = "status"

	var resp statusResponse
	if err := c.post(ctx, op, statusEndpoint, statusRequest{TransactionID: reference}, &resp); err != nil {
		return "", err
	}
	if len(resp.OrderItems) == 0 {
		return "", &Error{Op: op, Err: ErrMalformedResponse}
	}
	return resp.OrderItems[0].Status, nil
}

func (c *HTTPClient) post(ctx context.Context, op, endpoint string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Error{Op: op, Err: err}
	}

	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.observe(endpoint, "timeout", start)
			return &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrTimeout, err)}
		}
		c.observe(endpoint, "error", start)
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.observe(endpoint, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("provider request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)))
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(snippet)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if isTimeout(err) {
			return &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrTimeout, err)}
		}
		return &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}
	return nil
}

func (c *HTTPClient) observe(endpoint, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ProviderRequests.WithLabelValues(endpoint, status).Inc()
	c.metrics.ProviderLatency.WithLabelValues(endpoint, status).Observe(time.Since(start).Seconds())
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

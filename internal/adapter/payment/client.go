package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	successStatus  = "success"
)

// minorUnits is the number of minor units (pesewas) per wallet unit.
var minorUnits = decimal.NewFromInt(100)

// HTTPVerifier checks top-up references against the payment gateway.
type HTTPVerifier struct {
	baseURL    *url.URL
	secret     string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

// NewHTTPVerifier creates a verifier for the gateway at baseURL.
func NewHTTPVerifier(baseURL, secret string, logger *slog.Logger, m *metrics.Metrics) (*HTTPVerifier, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	return &HTTPVerifier{
		baseURL:    parsed,
		secret:     secret,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.With("component", "payment"),
		metrics:    m,
	}, nil
}

// Verify asks the gateway whether reference is a settled payment and for how much.
func (v *HTTPVerifier) Verify(ctx context.Context, reference string) (*model.PaymentVerification, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domainErrors.ErrPaymentNotVerified
	}

	endpoint := *v.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/transaction/verify/", url.PathEscape(reference))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if v.secret != "" {
		req.Header.Set("Authorization", "Bearer "+v.secret)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.observe("error")
		return nil, fmt.Errorf("payment request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		v.observe("error")
		return nil, fmt.Errorf("read payment response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		v.observe("not_found")
		return &model.PaymentVerification{Reference: reference}, nil
	case resp.StatusCode != http.StatusOK:
		v.observe("error")
		v.logger.Error("payment verification failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payment gateway error: %s", resp.Status)
	}

	var data verifyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		v.observe("error")
		return nil, fmt.Errorf("decode payment response: %w", err)
	}

	result := &model.PaymentVerification{
		Reference: reference,
		Success:   data.Status && strings.EqualFold(data.Data.Status, successStatus) && data.Data.Amount > 0,
		Amount:    decimal.NewFromInt(data.Data.Amount).Div(minorUnits),
	}
	if result.Success {
		v.observe("success")
	} else {
		v.observe("declined")
	}
	return result, nil
}

func (v *HTTPVerifier) observe(status string) {
	if v.metrics == nil {
		return
	}
	v.metrics.PaymentRequests.WithLabelValues(status).Inc()
}

// DisabledVerifier rejects every reference; used when no gateway is configured.
type DisabledVerifier struct{}

func (DisabledVerifier) Verify(context.Context, string) (*model.PaymentVerification, error) {
	return nil, domainErrors.ErrPaymentNotVerified
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/server/http/dto"
	"github.com/polkiloo/bundlemart/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/bundlemart/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRouteRequest(t, method, path, path, handler, setup, body, headers)
}

func performRouteRequest(t *testing.T, method, pattern, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", resp.Body.String(), err)
	}
	return out
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	phone := testhelpers.RandomPhone()
	body, _ := json.Marshal(dto.RegisterRequest{AuthRequest: dto.AuthRequest{Login: login, Password: password}, Phone: phone})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, gotLogin, gotPassword, gotPhone string) (string, error) {
		if gotLogin != login || gotPassword != password || gotPhone != phone {
			t.Fatalf("unexpected registration passed to facade: %q %q %q", gotLogin, gotPassword, gotPhone)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "bundlemart_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named bundlemart_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{"login":"","password":"","phone":""}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusBadRequest},
		{name: "already exists", body: []byte(`{"login":"a","password":"b","phone":"c"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", domainErrors.ErrAlreadyExists
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"login":"a","password":"b","phone":"c"}`), facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		}}, status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"login":"a","password":"b"}`), facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade).Login, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCartHandlerAdd(t *testing.T) {
	var captured model.CartLine
	facade := testhelpers.CartFacadeStub{AddFn: func(_ context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
		captured = line
		line.ID = 11
		line.UserID = userID
		return &line, nil
	}}
	body := []byte(`{"beneficiary_number":"0241234567","network":"MTN","bundle_size":"1GB","unit_price":"9.00"}`)
	resp := performRequest(t, http.MethodPost, "/cart", NewCartHandler(facade).Add, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if !captured.UnitPrice.Equal(decimal.RequireFromString("9")) || captured.Network != "MTN" {
		t.Fatalf("unexpected line passed to facade: %+v", captured)
	}
	line := decode[dto.CartLineResponse](t, resp)
	if line.ID != 11 || line.UnitPrice != "9.00" {
		t.Fatalf("unexpected response: %+v", line)
	}
}

func TestCartHandlerAddAcceptsNumericPrice(t *testing.T) {
	body := []byte(`{"beneficiary_number":"0241234567","network":"MTN","bundle_size":"1GB","unit_price":4.5}`)
	resp := performRequest(t, http.MethodPost, "/cart", NewCartHandler(testhelpers.CartFacadeStub{}).Add, asUser(1), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got := decode[dto.CartLineResponse](t, resp).UnitPrice; got != "4.50" {
		t.Fatalf("expected 4.50, got %s", got)
	}
}

func TestCartHandlerAddFailures(t *testing.T) {
	valid := []byte(`{"beneficiary_number":"0241234567","network":"MTN","bundle_size":"1GB","unit_price":"9"}`)
	tests := []struct {
		name   string
		facade testhelpers.CartFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("{"), status: http.StatusBadRequest},
		{name: "bad price", body: []byte(`{"unit_price":"abc"}`), status: http.StatusBadRequest},
		{name: "invalid line", body: valid, facade: testhelpers.CartFacadeStub{AddFn: func(context.Context, int64, model.CartLine) (*model.CartLine, error) {
			return nil, domainErrors.ErrInvalidCartLine
		}}, status: http.StatusBadRequest},
		{name: "internal", body: valid, facade: testhelpers.CartFacadeStub{AddFn: func(context.Context, int64, model.CartLine) (*model.CartLine, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/cart", NewCartHandler(tt.facade).Add, asUser(1), tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCartHandlerList(t *testing.T) {
	facade := testhelpers.CartFacadeStub{LinesFn: func(_ context.Context, userID int64) ([]model.CartLine, error) {
		return []model.CartLine{
			{ID: 1, UserID: userID, UnitPrice: decimal.RequireFromString("0.10")},
			{ID: 2, UserID: userID, UnitPrice: decimal.RequireFromString("0.20")},
		}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/cart", NewCartHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	cart := decode[dto.CartResponse](t, resp)
	if len(cart.Lines) != 2 || cart.Total != "0.30" {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	failing := testhelpers.CartFacadeStub{LinesFn: func(context.Context, int64) ([]model.CartLine, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/cart", NewCartHandler(failing).List, asUser(1), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestCartHandlerRemove(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "removed", path: "/cart/5", status: http.StatusNoContent},
		{name: "bad id", path: "/cart/abc", status: http.StatusBadRequest},
		{name: "zero id", path: "/cart/0", status: http.StatusBadRequest},
		{name: "missing", path: "/cart/5", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "internal", path: "/cart/5", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var removed int64
			facade := testhelpers.CartFacadeStub{RemoveFn: func(_ context.Context, _ int64, lineID int64) error {
				removed = lineID
				return tt.err
			}}
			resp := performRouteRequest(t, http.MethodDelete, "/cart/:id", tt.path, NewCartHandler(facade).Remove, asUser(1), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.status == http.StatusNoContent && removed != 5 {
				t.Fatalf("expected line 5 to be removed, got %d", removed)
			}
		})
	}
}

func TestOrderHandlerCheckout(t *testing.T) {
	ref := "TX-1"
	facade := testhelpers.OrderFacadeStub{CheckoutFn: func(_ context.Context, userID int64) ([]model.Order, error) {
		return []model.Order{{
			ID:                1,
			UserID:            userID,
			Network:           "MTN",
			Total:             decimal.RequireFromString("9"),
			Status:            model.OrderStatusPending,
			APIStatus:         model.APIStatusSuccess,
			ProviderReference: &ref,
		}}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/checkout", NewOrderHandler(facade).Checkout, asUser(1), nil, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	orders := decode[[]dto.OrderResponse](t, resp)
	if len(orders) != 1 || orders[0].Total != "9.00" || orders[0].ProviderReference != "TX-1" || orders[0].Status != "pending" {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestOrderHandlerCheckoutFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "empty cart", err: domainErrors.ErrEmptyCart, status: http.StatusBadRequest},
		{name: "insufficient", err: domainErrors.ErrInsufficientFunds, status: http.StatusPaymentRequired},
		{name: "unknown user", err: domainErrors.ErrNotFound, status: http.StatusUnauthorized},
		{name: "checkout failed", err: fmt.Errorf("%w: deadlock", domainErrors.ErrCheckoutFailed), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64) ([]model.Order, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/checkout", NewOrderHandler(facade).Checkout, asUser(1), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	orders := []model.Order{{ID: 1, CreatedAt: time.Unix(0, 0)}, {ID: 2}}
	facade := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return orders, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", NewOrderHandler(facade).List, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if decoded := decode[[]dto.OrderResponse](t, resp); len(decoded) != len(orders) {
		t.Fatalf("expected %d orders, got %d", len(orders), len(decoded))
	}

	empty := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/orders", NewOrderHandler(empty).List, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	failing := testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/orders", NewOrderHandler(failing).List, asUser(1), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "found", path: "/orders/7", status: http.StatusOK},
		{name: "bad id", path: "/orders/x", status: http.StatusBadRequest},
		{name: "missing", path: "/orders/7", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "internal", path: "/orders/7", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.OrderFacadeStub{OrderFn: func(_ context.Context, userID, orderID int64) (*model.Order, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusCompleted}, nil
			}}
			resp := performRouteRequest(t, http.MethodGet, "/orders/:id", tt.path, NewOrderHandler(facade).Get, asUser(1), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.status == http.StatusOK {
				if order := decode[dto.OrderResponse](t, resp); order.ID != 7 || order.Status != "completed" {
					t.Fatalf("unexpected order: %+v", order)
				}
			}
		})
	}
}

func TestWalletHandlerBalance(t *testing.T) {
	facade := testhelpers.WalletFacadeStub{BalanceFn: func(context.Context, int64) (decimal.Decimal, error) {
		return decimal.RequireFromString("11"), nil
	}}
	resp := performRequest(t, http.MethodGet, "/wallet", NewWalletHandler(facade).Balance, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := decode[dto.BalanceResponse](t, resp).Balance; got != "11.00" {
		t.Fatalf("expected 11.00, got %s", got)
	}

	failing := testhelpers.WalletFacadeStub{BalanceFn: func(context.Context, int64) (decimal.Decimal, error) {
		return decimal.Zero, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/wallet", NewWalletHandler(failing).Balance, asUser(1), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestWalletHandlerTransactions(t *testing.T) {
	orderID := int64(3)
	facade := testhelpers.WalletFacadeStub{TransactionsFn: func(context.Context, int64) ([]model.Transaction, error) {
		return []model.Transaction{{ID: 2, OrderID: &orderID, Amount: decimal.RequireFromString("9"), Type: model.TransactionTypeRefund, Status: model.TransactionStatusCompleted}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/wallet/transactions", NewWalletHandler(facade).Transactions, asUser(1), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	entries := decode[[]dto.TransactionResponse](t, resp)
	if len(entries) != 1 || entries[0].Amount != "9.00" || entries[0].Type != "refund" || *entries[0].OrderID != 3 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	empty := testhelpers.WalletFacadeStub{TransactionsFn: func(context.Context, int64) ([]model.Transaction, error) {
		return nil, nil
	}}
	resp = performRequest(t, http.MethodGet, "/wallet/transactions", NewWalletHandler(empty).Transactions, asUser(1), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestWalletHandlerTopUp(t *testing.T) {
	var gotRef string
	facade := testhelpers.WalletFacadeStub{TopUpFn: func(_ context.Context, userID int64, reference string) (*model.Transaction, error) {
		gotRef = reference
		return &model.Transaction{ID: 1, UserID: userID, Reference: reference, Amount: decimal.RequireFromString("20"), Type: model.TransactionTypeTopUp, Status: model.TransactionStatusCompleted}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/wallet/topup", NewWalletHandler(facade).TopUp, asUser(1), []byte(`{"reference":" PAY-1 "}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotRef != "PAY-1" {
		t.Fatalf("expected trimmed reference, got %q", gotRef)
	}
	if entry := decode[dto.TransactionResponse](t, resp); entry.Amount != "20.00" || entry.Reference != "PAY-1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestWalletHandlerTopUpFailures(t *testing.T) {
	valid := []byte(`{"reference":"PAY-1"}`)
	tests := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "blank reference", body: []byte(`{"reference":"  "}`), status: http.StatusBadRequest},
		{name: "not verified", body: valid, err: domainErrors.ErrPaymentNotVerified, status: http.StatusPaymentRequired},
		{name: "duplicate", body: valid, err: domainErrors.ErrAlreadyProcessed, status: http.StatusConflict},
		{name: "invalid amount", body: valid, err: domainErrors.ErrInvalidAmount, status: http.StatusUnprocessableEntity},
		{name: "internal", body: valid, err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.WalletFacadeStub{TopUpFn: func(context.Context, int64, string) (*model.Transaction, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/wallet/topup", NewWalletHandler(facade).TopUp, asUser(1), tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAdminHandlerPushSetting(t *testing.T) {
	var stored *bool
	facade := testhelpers.AdminFacadeStub{
		PushEnabledFn: func(context.Context) (bool, error) { return false, nil },
		SetPushEnabledFn: func(_ context.Context, enabled bool) error {
			stored = &enabled
			return nil
		},
	}
	handler := NewAdminHandler(facade)

	resp := performRequest(t, http.MethodGet, "/push", handler.PushSetting, nil, nil, nil)
	if resp.Code != http.StatusOK || decode[dto.PushSettingResponse](t, resp).Enabled {
		t.Fatalf("expected disabled push, got %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodPut, "/push", handler.SetPushSetting, nil, []byte(`{"enabled":true}`), jsonHeaders)
	if resp.Code != http.StatusOK || stored == nil || !*stored {
		t.Fatalf("expected push to be enabled, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPut, "/push", handler.SetPushSetting, nil, []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing flag, got %d", resp.Code)
	}

	failing := NewAdminHandler(testhelpers.AdminFacadeStub{
		PushEnabledFn:    func(context.Context) (bool, error) { return false, errors.New("boom") },
		SetPushEnabledFn: func(context.Context, bool) error { return errors.New("boom") },
	})
	if resp := performRequest(t, http.MethodGet, "/push", failing.PushSetting, nil, nil, nil); resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if resp := performRequest(t, http.MethodPut, "/push", failing.SetPushSetting, nil, []byte(`{"enabled":false}`), jsonHeaders); resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestAdminHandlerOverrideStatus(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   []byte
		err    error
		status int
	}{
		{name: "applied", path: "/orders/4/status", body: []byte(`{"status":" Completed "}`), status: http.StatusOK},
		{name: "bad id", path: "/orders/x/status", body: []byte(`{"status":"completed"}`), status: http.StatusBadRequest},
		{name: "bad json", path: "/orders/4/status", body: []byte("{"), status: http.StatusBadRequest},
		{name: "invalid status", path: "/orders/4/status", body: []byte(`{"status":"shipped"}`), err: domainErrors.ErrInvalidStatus, status: http.StatusUnprocessableEntity},
		{name: "missing", path: "/orders/4/status", body: []byte(`{"status":"completed"}`), err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "internal", path: "/orders/4/status", body: []byte(`{"status":"completed"}`), err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotStatus model.OrderStatus
			facade := testhelpers.AdminFacadeStub{OverrideFn: func(_ context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
				gotStatus = status
				if tt.err != nil {
					return nil, tt.err
				}
				return &model.Order{ID: orderID, Status: status}, nil
			}}
			resp := performRouteRequest(t, http.MethodPut, "/orders/:id/status", tt.path, NewAdminHandler(facade).OverrideStatus, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.status == http.StatusOK && gotStatus != model.OrderStatusCompleted {
				t.Fatalf("expected normalized status, got %q", gotStatus)
			}
		})
	}
}

func TestAdminHandlerResubmit(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "submitted", status: http.StatusOK},
		{name: "terminal", err: domainErrors.ErrInvalidStatus, status: http.StatusUnprocessableEntity},
		{name: "missing", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.AdminFacadeStub{ResubmitFn: func(_ context.Context, orderID int64) (*model.Order, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &model.Order{ID: orderID, APIStatus: model.APIStatusSuccess}, nil
			}}
			resp := performRouteRequest(t, http.MethodPost, "/orders/:id/submit", "/orders/9/submit", NewAdminHandler(facade).Resubmit, nil, nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.status == http.StatusOK {
				if order := decode[dto.OrderResponse](t, resp); order.APIStatus != "success" {
					t.Fatalf("unexpected order: %+v", order)
				}
			}
		})
	}
}

func TestAdminHandlerReconcile(t *testing.T) {
	facade := testhelpers.AdminFacadeStub{ReconcileFn: func(context.Context) (model.ReconcileReport, error) {
		return model.ReconcileReport{Scanned: 3, Completed: 1, Cancelled: 1, Unchanged: 1}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/reconcile", NewAdminHandler(facade).Reconcile, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if report := decode[model.ReconcileReport](t, resp); report.Scanned != 3 || report.Completed != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	failing := testhelpers.AdminFacadeStub{ReconcileFn: func(context.Context) (model.ReconcileReport, error) {
		return model.ReconcileReport{}, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodPost, "/reconcile", NewAdminHandler(failing).Reconcile, nil, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/healthz", NewHealthHandler(testhelpers.AdminFacadeStub{}).Check, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	down := testhelpers.AdminFacadeStub{PingFn: func(context.Context) error { return errors.New("db down") }}
	resp = performRequest(t, http.MethodGet, "/healthz", NewHealthHandler(down).Check, nil, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

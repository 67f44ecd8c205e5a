package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/admin"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/apikey"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/cache"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/settings"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/stats"
	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/order"
)

// stubStore implements both the order and settings repositories in memory.
type stubStore struct {
	orders   map[int64]*order.Order
	settings map[string]string
}

func (s *stubStore) ListOrderIDsCreatedBetween(_ context.Context, start, end time.Time) ([]int64, error) {
	var ids []int64
	for id, o := range s.orders {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *stubStore) FindOrderByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

func (s *stubStore) GetSetting(_ context.Context, key string) (string, error) {
	v, ok := s.settings[key]
	if !ok {
		return "", sql.ErrNoRows
	}
	return v, nil
}

func (s *stubStore) SetSetting(_ context.Context, key, value string) error {
	s.settings[key] = value
	return nil
}

type statsResponse struct {
	TotalOrders          int                `json:"total_orders"`
	OrdersPerStatus      map[string]int     `json:"orders_per_status"`
	NetValue             float64            `json:"net_value"`
	NetShipping          float64            `json:"net_shipping"`
	NetValuePerStatus    map[string]float64 `json:"net_value_per_status"`
	NetShippingPerStatus map[string]float64 `json:"net_shipping_per_status"`
	Type                 string             `json:"type"`
	DateStart            string             `json:"date_start"`
	DateEnd              string             `json:"date_end"`
}

type forbiddenResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newTestServer(t *testing.T, store *stubStore) *httptest.Server {
	t.Helper()
	decimal.MarshalJSONWithoutQuotes = true

	settingsSvc := settings.NewService(store)
	if err := settingsSvc.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	statsSvc := stats.NewService(store, cache.NewMemoryCache(), settingsSvc, time.UTC)
	gate := apikey.NewService(settingsSvc)

	adminSvc, err := admin.NewService("admin-pw", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	r := NewRouter(
		stats.NewHandler(statsSvc),
		admin.NewHandler(adminSvc),
		settings.NewHandler(settingsSvc),
		apikey.NewHandler(gate),
		gate,
		adminSvc,
	)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func yesterdayStore() *stubStore {
	created := time.Now().UTC().AddDate(0, 0, -1)
	created = time.Date(created.Year(), created.Month(), created.Day(), 12, 0, 0, 0, time.UTC)
	dec := decimal.RequireFromString
	return &stubStore{
		orders: map[int64]*order.Order{
			1: {ID: 1, Status: order.StatusCompleted, Total: dec("100"), ShippingTotal: dec("10"), CreatedAt: created},
			2: {ID: 2, Status: order.StatusCompleted, Total: dec("50"), ShippingTotal: dec("5"), CreatedAt: created},
			3: {ID: 3, Status: order.StatusRefunded, Total: dec("30"), ShippingTotal: dec("0"), CreatedAt: created},
		},
		settings: map[string]string{
			settings.KeyAPIEnabled: "true",
			settings.KeyAPIKey:     "testkey",
		},
	}
}

func doGet(t *testing.T, url, key string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestGetOrderStatsEndToEnd(t *testing.T) {
	srv := newTestServer(t, yesterdayStore())

	resp := doGet(t, srv.URL+"/wc-order-stats/v1/yesterday", "testkey")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body statsResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 3, body.TotalOrders)
	assert.Equal(t, map[string]int{"completed": 2, "refunded": 1}, body.OrdersPerStatus)
	assert.InDelta(t, 165, body.NetValue, 0.001)
	assert.InDelta(t, 15, body.NetShipping, 0.001)
	assert.Equal(t, "yesterday", body.Type)
	assert.Regexp(t, `^\d{2}-\d{2}-\d{4}$`, body.DateStart)
	assert.Equal(t, body.DateStart, body.DateEnd)
}

func TestGetOrderStatsRejectsBadKey(t *testing.T) {
	srv := newTestServer(t, yesterdayStore())

	resp := doGet(t, srv.URL+"/wc-order-stats/v1/yesterday", "wrong")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body forbiddenResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "rest_forbidden", body.Code)
	assert.Equal(t, "Invalid API Key.", body.Message)
}

func TestGetOrderStatsRejectsWhenDisabled(t *testing.T) {
	store := yesterdayStore()
	store.settings[settings.KeyAPIEnabled] = "false"
	srv := newTestServer(t, store)

	resp := doGet(t, srv.URL+"/wc-order-stats/v1/yesterday", "testkey")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body forbiddenResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "rest_forbidden", body.Code)
	assert.Equal(t, "API is currently disabled.", body.Message)
}

func TestGetOrderStatsUnknownPeriodIs404(t *testing.T) {
	srv := newTestServer(t, yesterdayStore())

	// The period alternation must match the whole segment, not a prefix or
	// suffix of it.
	for _, period := range []string{"last-year", "yesterday-extra", "not-yesterday", "yesterdaylast-week"} {
		resp := doGet(t, srv.URL+"/wc-order-stats/v1/"+period, "testkey")
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "period %q", period)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, yesterdayStore())

	resp, err := http.Post(srv.URL+"/admin/api-key", "application/json", nil)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminKeyRotationEndToEnd(t *testing.T) {
	srv := newTestServer(t, yesterdayStore())

	// Login.
	resp, err := http.Post(srv.URL+"/admin/login", "application/json", strings.NewReader(`{"password":"admin-pw"}`))
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token := resp.Header.Get("Authorization")
	assert.True(t, strings.HasPrefix(token, "Bearer "))

	// Rotate the API key.
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/admin/api-key", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", token)
	resp, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	newKey := string(raw)
	assert.Len(t, newKey, 32)

	// The old key is dead, the new one works.
	old := doGet(t, srv.URL+"/wc-order-stats/v1/yesterday", "testkey")
	old.Body.Close()
	assert.Equal(t, http.StatusForbidden, old.StatusCode)

	fresh := doGet(t, srv.URL+"/wc-order-stats/v1/yesterday", newKey)
	fresh.Body.Close()
	assert.Equal(t, http.StatusOK, fresh.StatusCode)
}

package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/shared/utils"
	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/config"
	"github.com/tradelink-ops/logistics-backend/v1/events"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
	"github.com/tradelink-ops/logistics-backend/v1/services"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	router, _ := setupRouterWithCache(t)
	return router
}

func setupRouterWithCache(t *testing.T) (http.Handler, *cache.Cache) {
	t.Helper()
	db := repository.SetupSQLiteTestDB(t)

	c := cache.New(cache.Options{})
	t.Cleanup(c.Close)

	bus := events.NewBus(16)
	events.NewCoordinator(c).Register(bus)
	ctx, cancel := context.WithCancel(context.Background())
	go bus.Start(ctx)
	t.Cleanup(func() {
		cancel()
		<-bus.Done()
	})

	svc := services.New(repository.NewRepositories(db), c, bus, config.Default())
	router := chi.NewRouter()
	router.Mount("/api/v1", NewHandler(svc).Routes())
	return router, c
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const shipmentBody = `{
	"shipment_number": 1,
	"tracking_number": "TRK-1",
	"origin_port": "Shanghai",
	"destination_port": "Rotterdam",
	"shipment_date": "2024-03-01",
	"arrival_date": "2024-03-21",
	"status": "Pending",
	"total_weight": 1200.5
}`

const warehouseBody = `{
	"code": "WH1",
	"name": "North",
	"capacity": 1000,
	"address": "1 Dock Road",
	"city": "Hamburg",
	"country": "DE",
	"email": "ops@wh1.example",
	"phone": "+49 40 000"
}`

func TestShipmentRoutes_CreateGetAndList(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/shipments", shipmentBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/shipments/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "TRK-1", got["tracking_number"])
	assert.Equal(t, "2024-03-01", got["shipment_date"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/shipments?search=trk&status=Pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []map[string]interface{} `json:"items"`
		Count int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
}

func TestRoutes_RequestErrors(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/warehouses", warehouseBody).Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown field", http.MethodPost, "/api/v1/shipments", `{"shipment_number": 2, "colour": "red"}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/v1/shipments", `{`, http.StatusBadRequest},
		{"non-numeric key", http.MethodGet, "/api/v1/shipments/abc", "", http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/api/v1/shipments?limit=-1", "", http.StatusBadRequest},
		{"missing row", http.MethodGet, "/api/v1/shipments/404", "", http.StatusNotFound},
		{"zero key", http.MethodGet, "/api/v1/shipments/0", "", http.StatusNotFound},
		{"update missing row", http.MethodPatch, "/api/v1/shipments/404", `{"total_weight": 5}`, http.StatusNotFound},
		{"duplicate key", http.MethodPost, "/api/v1/warehouses", warehouseBody, http.StatusConflict},
		{"invalid shape", http.MethodPost, "/api/v1/warehouses", `{"code":"WH2","name":"South","capacity":10,"address":"a","city":"b","country":"c","email":"not-an-email","phone":"1"}`, http.StatusUnprocessableEntity},
		{"unknown view", http.MethodGet, "/api/v1/watch/nothing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestShipmentRoutes_StatusChangeRecordsHistory(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/shipments", shipmentBody).Code)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/shipments/1", `{"status": "In Transit"}`, ChangerHeader, "nobody")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/shipments/1", `{"status": "In Transit"}`, ChangerHeader, "42")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/shipments/1/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.EqualValues(t, 42, list.Items[0]["changer_ssn"])
}

func TestDashboardRoutes(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/shipments", shipmentBody).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/warehouses", warehouseBody).Code)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/stats", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["total_shipments"])
	assert.EqualValues(t, 1, stats["total_warehouses"])

	for _, path := range []string{"occupancy", "inventory", "recent-shipments", "payments"} {
		w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/"+path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRespondError_Mapping(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name    string
		err     error
		status  int
		details string
	}{
		{"not found", apperrors.NotFound("shipments", 9), http.StatusNotFound, ""},
		{"read", apperrors.ReadError("shipments", "list", cause), http.StatusBadGateway, ""},
		{"partial aggregation", &apperrors.PartialAggregationError{
			Aggregate: "dashboard_stats",
			Failures:  []apperrors.SubQueryFailure{{Name: "payments", Err: cause}},
		}, http.StatusBadGateway, "payments"},
		{"bad request", errBadRequest{errors.New("invalid header")}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondError(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.status, w.Code)

			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.details, resp.Details)
		})
	}
}

func TestWatch_StreamsSnapshotAfterMutation(t *testing.T) {
	router := setupRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/watch/shipments", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan watchEvent, 16)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var ev watchEvent
			if json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev) == nil {
				events <- ev
			}
		}
	}()

	first := <-events
	assert.Equal(t, "shipments", first.Key)

	w := doJSON(t, router, http.MethodPost, "/api/v1/shipments", shipmentBody)
	require.Equal(t, http.StatusCreated, w.Code)

	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "stream ended before the new row arrived")
			rows, _ := ev.Value.([]interface{})
			if ev.Status == "fresh" && len(rows) == 1 {
				return
			}
		case <-ctx.Done():
			t.Fatal("no snapshot with the created shipment")
		}
	}
}

func TestWatch_StreamEndsOnServerShutdown(t *testing.T) {
	router, c := setupRouterWithCache(t)
	server := httptest.NewUnstartedServer(router)
	server.Config.RegisterOnShutdown(c.CloseSubscriptions)
	server.Start()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/watch/warehouses")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ended := make(chan struct{})
	go func() {
		defer close(ended)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, server.Config.Shutdown(ctx))

	select {
	case <-ended:
	case <-time.After(2 * time.Second):
		t.Fatal("watch stream still open after shutdown")
	}
}

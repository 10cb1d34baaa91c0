package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerniceZTT/gwsample_end/controllers"
	"github.com/BerniceZTT/gwsample_end/middleware"
	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/routes"
	"github.com/BerniceZTT/gwsample_end/service"
)

var testSecret = []byte("test-secret")

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func newSource() *memorySource {
	return &memorySource{
		orders: []models.SalesOrder{
			{SalesOrderID: "0500000001", CustomerID: "C1", CustomerName: "SAP", GrossAmount: "100.00", DeliveryStatus: "D", DeliveryStatusDescription: "Delivered",
				LineItems: []models.LineItem{{ProductID: "HT-1000"}}},
			{SalesOrderID: "0500000002", CustomerID: "C2", CustomerName: "Becker Berlin", GrossAmount: "50.00", DeliveryStatus: "I", DeliveryStatusDescription: "Initial",
				LineItems: []models.LineItem{{ProductID: "HT-1030"}}},
		},
		partners: []models.BusinessPartner{{BusinessPartnerID: "0100000000", CompanyName: "SAP"}},
		products: []models.Product{{ProductID: "HT-1000", Name: "Notebook Basic 15", Category: "Notebooks"}},
	}
}

func setupRouter(source *memorySource, initial models.GroupField) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registry := service.NewSessionRegistry(source, time.Hour, initial)
	controllers.Setup(registry, testSecret, time.Hour, 25)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	routes.RegisterRoutes(router, registry, testSecret)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func createSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w, env := doRequest(t, router, http.MethodPost, "/api/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		SessionID string `json:"sessionId"`
		Token     string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealthNeedsNoSession(t *testing.T) {
	router := setupRouter(newSource(), models.GroupFieldNone)

	w, _ := doRequest(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, router, http.MethodGet, "/api/db-status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessions":0`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupRouter(newSource(), models.GroupFieldNone)

	w, env := doRequest(t, router, http.MethodGet, "/api/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MISSING_TOKEN", env.Code)

	w, env = doRequest(t, router, http.MethodGet, "/api/status", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", env.Code)
}

func TestSessionStartsWithInitialGrouping(t *testing.T) {
	router := setupRouter(newSource(), models.GroupFieldDeliveryStatus)
	token := createSession(t, router)

	w, env := doRequest(t, router, http.MethodGet, "/api/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status struct {
		Busy        bool   `json:"busy"`
		GroupField  string `json:"groupField"`
		RecordCount int    `json:"recordCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "DeliveryStatus", status.GroupField)
	assert.Equal(t, 2, status.RecordCount)
	assert.False(t, status.Busy)
}

func TestSearchFlow(t *testing.T) {
	router := setupRouter(newSource(), models.GroupFieldNone)
	token := createSession(t, router)

	w, env := doRequest(t, router, http.MethodPost, "/api/search", token, models.SearchCriteria{SalesOrderID: "0500000001"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result service.SearchResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, service.SearchModeServer, result.Mode)
	assert.Equal(t, 1, result.Matches)

	// 请求体为空时使用保存的条件
	w, _ = doRequest(t, router, http.MethodPut, "/api/search/criteria", token, models.SearchCriteria{ProductID: "HT-1030"})
	require.Equal(t, http.StatusOK, w.Code)
	w, env = doRequest(t, router, http.MethodPost, "/api/search", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, service.SearchModeClient, result.Mode)
	assert.Equal(t, 1, result.Matches)

	w, env = doRequest(t, router, http.MethodGet, "/api/sales-orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	w, env = doRequest(t, router, http.MethodDelete, "/api/search", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recordCount":2}`, string(env.Data))

	w, env = doRequest(t, router, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notes []service.Notification
	require.NoError(t, json.Unmarshal(env.Data, &notes))
	require.Len(t, notes, 3)
	assert.Equal(t, "Filters applied: 1", notes[0].Message)
	assert.Equal(t, "Product filter completed. Found 1 orders with 1 criteria.", notes[1].Message)
	assert.Equal(t, "All filters cleared", notes[2].Message)
}

func TestSearchWithoutBinding(t *testing.T) {
	source := newSource()
	source.noBinding = true
	router := setupRouter(source, models.GroupFieldNone)
	token := createSession(t, router)

	w, env := doRequest(t, router, http.MethodPost, "/api/search", token, models.SearchCriteria{SalesOrderID: "1"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "BINDING_UNAVAILABLE", env.Code)
}

func TestGroupingEndpoints(t *testing.T) {
	router := setupRouter(newSource(), models.GroupFieldNone)
	token := createSession(t, router)

	w, _ := doRequest(t, router, http.MethodPut, "/api/grouping", token, gin.H{"field": "Bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, router, http.MethodPost, "/api/grouping/toggle", token, gin.H{"field": "DeliveryStatus", "pressed": true})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doRequest(t, router, http.MethodGet, "/api/grouping/header?key=D", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var header models.GroupHeader
	require.NoError(t, json.Unmarshal(env.Data, &header))
	assert.Equal(t, "Delivered (1 orders)", header.Title)

	w, env = doRequest(t, router, http.MethodGet, "/api/grouping/statistics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Statistics models.GroupStatistics `json:"statistics"`
		Text       string                 `json:"text"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.Statistics.TotalItems)
	assert.Contains(t, stats.Text, "Delivered: 1 orders (Total Value: 100.00)")

	w, _ = doRequest(t, router, http.MethodDelete, "/api/grouping", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doRequest(t, router, http.MethodGet, "/api/grouping/header?key=D", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &header))
	assert.Equal(t, "Ungrouped Items", header.Title)
}

func TestDetailReads(t *testing.T) {
	router := setupRouter(newSource(), models.GroupFieldNone)
	token := createSession(t, router)

	w, env := doRequest(t, router, http.MethodGet, "/api/sales-orders/0500000002", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var order models.SalesOrder
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "Becker Berlin", order.CustomerName)

	w, env = doRequest(t, router, http.MethodGet, "/api/sales-orders/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Code)

	w, _ = doRequest(t, router, http.MethodGet, "/api/products/HT-1000", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValueHelpEndpoints(t *testing.T) {
	router := setupRouter(newSource(), models.GroupFieldNone)
	token := createSession(t, router)

	w, env := doRequest(t, router, http.MethodGet, "/api/value-help/products?q=HT", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.ValueHelpItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "HT-1000 - Notebooks", items[0].Description)

	w, env = doRequest(t, router, http.MethodPost, "/api/value-help/products/select", token, items[0])
	require.Equal(t, http.StatusOK, w.Code)
	var criteria models.SearchCriteria
	require.NoError(t, json.Unmarshal(env.Data, &criteria))
	assert.Equal(t, "HT-1000", criteria.ProductID)
	assert.Equal(t, "Notebook Basic 15", criteria.ProductName)

	w, _ = doRequest(t, router, http.MethodGet, "/api/value-help/suppliers", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegenerateData(t *testing.T) {
	source := newSource()
	router := setupRouter(source, models.GroupFieldNone)
	token := createSession(t, router)

	w, env := doRequest(t, router, http.MethodPost, "/api/data/regenerate", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "25 sales orders have been generated", env.Message)

	source.callErr = &service.RemoteError{StatusCode: 403, Body: `{"error":{"message":{"value":"No authorization"}}}`}
	w, env = doRequest(t, router, http.MethodPost, "/api/data/regenerate", token, gin.H{"noOfSalesOrders": 10})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "No authorization", env.Error)
	assert.Equal(t, "BACKEND_ERROR", env.Code)
}

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/plantdesk/internal/clock"
	"github.com/smallbiznis/plantdesk/internal/config"
	customerrepo "github.com/smallbiznis/plantdesk/internal/customer/repository"
	customersvc "github.com/smallbiznis/plantdesk/internal/customer/service"
	"github.com/smallbiznis/plantdesk/internal/export"
	ledgerrepo "github.com/smallbiznis/plantdesk/internal/ledger/repository"
	ledgersvc "github.com/smallbiznis/plantdesk/internal/ledger/service"
	"github.com/smallbiznis/plantdesk/internal/migration"
	"github.com/smallbiznis/plantdesk/internal/observability"
	orderrepo "github.com/smallbiznis/plantdesk/internal/order/repository"
	ordersvc "github.com/smallbiznis/plantdesk/internal/order/service"
	productionrepo "github.com/smallbiznis/plantdesk/internal/production/repository"
	productionsvc "github.com/smallbiznis/plantdesk/internal/production/service"
	"github.com/smallbiznis/plantdesk/internal/providers/pdf"
	"github.com/smallbiznis/plantdesk/internal/providers/spreadsheet"
	"github.com/smallbiznis/plantdesk/internal/reference"
	reportrepo "github.com/smallbiznis/plantdesk/internal/report/repository"
	reportsvc "github.com/smallbiznis/plantdesk/internal/report/service"
	"github.com/smallbiznis/plantdesk/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(db))
	require.NoError(t, seed.EnsureReferenceData(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	fakeClock := clock.NewFakeClock(testNow)
	opsConf := config.NewStaticOperationsConfigHolder(config.DefaultOperationsConfig())
	refRepo := reference.NewRepository(db)

	customerSvc := customersvc.New(customersvc.Params{
		DB: db, Log: log, GenID: node, Repo: customerrepo.Provide(), Clock: fakeClock, OpsConf: opsConf,
	})
	ledgerSvc := ledgersvc.NewService(ledgersvc.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock, Repo: ledgerrepo.Provide(),
		CustomerRepo: customerrepo.Provide(), OpsConf: opsConf,
	})
	productionSvc := productionsvc.New(productionsvc.Params{DB: db, Log: log, Repo: productionrepo.Provide()})
	orderSvc := ordersvc.New(ordersvc.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock, Repo: orderrepo.Provide(),
		PlanRepo: productionrepo.Provide(), CustomerRepo: customerrepo.Provide(),
		ReferenceRepo: refRepo, OpsConf: opsConf,
	})
	reportSvc := reportsvc.New(reportsvc.Params{
		DB: db, Log: log, Clock: fakeClock, Repo: reportrepo.Provide(),
		CustomerSvc: customerSvc, LedgerSvc: ledgerSvc, OrderSvc: orderSvc, ProductionSvc: productionSvc,
		OpsConf: opsConf,
	})
	exporter := export.New(export.Params{
		Log: log, Spreadsheet: spreadsheet.New(), PDF: pdf.New(), OpsConf: opsConf,
	})

	engine := NewEngine(config.Config{Environment: "test"}, observability.Config{}, nil)
	return NewServer(ServerParams{
		Gin:           engine,
		CustomerSvc:   customerSvc,
		LedgerSvc:     ledgerSvc,
		OrderSvc:      orderSvc,
		ProductionSvc: productionSvc,
		ReportSvc:     reportSvc,
		Refrepo:       refRepo,
		Exporter:      exporter,
	})
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
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
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func createCustomer(t *testing.T, s *Server, name string) string {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/api/customers", map[string]any{"name": name, "phone": "0212 555 00 00"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var customer struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &customer)
	require.NotEmpty(t, customer.ID)
	return customer.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnknownRouteReturnsNotFoundPayload(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Type)
}

func TestCustomerBalanceFlow(t *testing.T) {
	s := newTestServer(t)
	id := createCustomer(t, s, "Acme")

	var balance struct {
		Debit   decimal.Decimal `json:"debit"`
		Credit  decimal.Decimal `json:"credit"`
		Balance decimal.Decimal `json:"balance"`
	}
	rec := doRequest(t, s, http.MethodGet, "/api/customers/"+id+"/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &balance)
	assert.True(t, balance.Balance.IsZero())

	rec = doRequest(t, s, http.MethodPost, "/api/customers/"+id+"/ledger", map[string]any{"kind": "DEBIT", "amount": "500.00", "note": "irsaliye"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = doRequest(t, s, http.MethodPost, "/api/customers/"+id+"/ledger", map[string]any{"kind": "CREDIT", "amount": "200.00"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodGet, "/api/customers/"+id+"/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &balance)
	assert.True(t, balance.Debit.Equal(decimal.NewFromInt(500)))
	assert.True(t, balance.Credit.Equal(decimal.NewFromInt(200)))
	assert.True(t, balance.Balance.Equal(decimal.NewFromInt(300)))

	var entries []map[string]any
	rec = doRequest(t, s, http.MethodGet, "/api/customers/"+id+"/ledger", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &entries)
	assert.Len(t, entries, 2)
}

func TestCustomerValidationErrors(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/customers", map[string]any{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeError(t, rec)
	assert.Equal(t, "validation_error", payload.Type)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "invalid_name", payload.Errors[0].Code)
	assert.Equal(t, "name", payload.Errors[0].Field)

	rec = doRequest(t, s, http.MethodPost, "/api/customers", map[string]any{"name": strings.Repeat("a", 201)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	payload = decodeError(t, rec)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "max", payload.Errors[0].Code)

	rec = doRequest(t, s, http.MethodGet, "/api/customers?activity=sometimes", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/customers/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/customers/12345", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCustomerOverwritesGivenFields(t *testing.T) {
	s := newTestServer(t)
	id := createCustomer(t, s, "Acme")

	rec := doRequest(t, s, http.MethodPatch, "/api/customers/"+id, map[string]any{"city": "Izmir"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var customer struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		City  string `json:"city"`
	}
	decodeData(t, rec, &customer)
	assert.Equal(t, "Acme", customer.Name)
	assert.Equal(t, "0212 555 00 00", customer.Phone)
	assert.Equal(t, "Izmir", customer.City)
}

func TestLedgerErrors(t *testing.T) {
	s := newTestServer(t)
	id := createCustomer(t, s, "Acme")

	rec := doRequest(t, s, http.MethodPost, "/api/customers/"+id+"/ledger", map[string]any{"kind": "REFUND", "amount": "10"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_kind", decodeError(t, rec).Errors[0].Code)

	rec = doRequest(t, s, http.MethodPost, "/api/customers/"+id+"/ledger", map[string]any{"kind": "DEBIT", "amount": "-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_amount", decodeError(t, rec).Errors[0].Code)

	rec = doRequest(t, s, http.MethodPost, "/api/customers/"+id+"/ledger", map[string]any{"kind": "DEBIT", "amount": "1.005"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_amount_precision", decodeError(t, rec).Errors[0].Code)

	rec = doRequest(t, s, http.MethodPost, "/api/customers/"+id+"/ledger", map[string]any{"kind": "DEBIT", "amount": "100000000000000000"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_amount", decodeError(t, rec).Errors[0].Code)

	rec = doRequest(t, s, http.MethodPost, "/api/customers/12345/ledger", map[string]any{"kind": "DEBIT", "amount": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t)
	customerID := createCustomer(t, s, "Acme")

	var recipes []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	rec := doRequest(t, s, http.MethodGet, "/api/recipes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &recipes)
	require.NotEmpty(t, recipes)

	rec = doRequest(t, s, http.MethodPost, "/api/orders", map[string]any{
		"name":        "Temel dokumu",
		"customer_id": customerID,
		"recipe_id":   recipes[0].ID,
		"quantity":    "10",
		"status":      "pending",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		Completed bool   `json:"completed"`
	}
	decodeData(t, rec, &order)
	assert.Equal(t, "pending", order.Status)
	assert.False(t, order.Completed)

	rec = doRequest(t, s, http.MethodPost, "/api/orders/"+order.ID+"/status", map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &order)
	assert.Equal(t, "completed", order.Status)
	assert.True(t, order.Completed)

	var plans []struct {
		Planned  decimal.Decimal `json:"planned_quantity"`
		Produced decimal.Decimal `json:"produced_quantity"`
		Status   string          `json:"status"`
	}
	rec = doRequest(t, s, http.MethodGet, "/api/production/plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &plans)
	require.Len(t, plans, 1)
	assert.True(t, plans[0].Planned.Equal(decimal.NewFromInt(10)))
	assert.True(t, plans[0].Produced.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "completed", plans[0].Status)

	rec = doRequest(t, s, http.MethodPost, "/api/orders/"+order.ID+"/status", map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_status", decodeError(t, rec).Errors[0].Code)

	rec = doRequest(t, s, http.MethodGet, "/api/orders?customer_id="+customerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Orders []map[string]any `json:"orders"`
	}
	decodeData(t, rec, &list)
	assert.Len(t, list.Orders, 1)
}

func TestReportDownloads(t *testing.T) {
	s := newTestServer(t)
	id := createCustomer(t, s, "Acme")
	rec := doRequest(t, s, http.MethodPost, "/api/customers/"+id+"/ledger", map[string]any{"kind": "DEBIT", "amount": "1234.50"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodGet, "/api/reports/balances", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rows"`)

	rec = doRequest(t, s, http.MethodGet, "/api/reports/balances?format=xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, spreadsheet.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	rec = doRequest(t, s, http.MethodGet, "/api/customers/"+id+"/statement?format=txt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1,234.50 TL")

	rec = doRequest(t, s, http.MethodGet, "/api/reports/production?format=pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = doRequest(t, s, http.MethodGet, "/api/reports/orders?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_format", decodeError(t, rec).Errors[0].Code)
}

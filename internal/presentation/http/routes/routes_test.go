package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/config"
	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/infrastructure/export"
	"github.com/fazli/printshop-api/internal/infrastructure/metrics"
	"github.com/fazli/printshop-api/internal/infrastructure/repository"
	"github.com/fazli/printshop-api/internal/presentation/http/handler"
	"github.com/fazli/printshop-api/internal/presentation/http/middleware"
	"github.com/fazli/printshop-api/internal/testutil"
	"github.com/fazli/printshop-api/pkg/apperror"
	"github.com/fazli/printshop-api/pkg/printer"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
	Meta    struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	router  *gin.Engine
	spool   *bytes.Buffer
	printer *printer.WriterPrinter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log := zap.NewNop()
	m := metrics.New()

	productRepo := repository.NewProductRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	sync := service.NewSyncService(txRepo, productRepo, log, m)
	products := service.NewProductService(productRepo, sync, accounting.DefaultOwnerRule())
	ledger := service.NewLedgerService(ledgerRepo)
	dashboard := service.NewDashboardService(txRepo, productRepo)

	spool := &bytes.Buffer{}
	wp := printer.NewWriterPrinter(spool)
	printers := service.NewPrinterService(wp, productRepo, entity.ReceiptHeader{ShopName: "Test Print Shop"}, "file", 32, log)

	h := &Handlers{
		Product:     handler.NewProductHandler(products, printers),
		Transaction: handler.NewTransactionHandler(service.NewTransactionService(txRepo, sync)),
		Ledger:      handler.NewLedgerHandler(ledger),
		Remaining:   handler.NewRemainingHandler(service.NewRemainingService(repository.NewRemainingRepository(db))),
		Dashboard:   handler.NewDashboardHandler(dashboard),
		Report:      handler.NewReportHandler(service.NewReportService(dashboard, ledger)),
		Printer:     handler.NewPrinterHandler(printers),
	}

	limiter := middleware.NewClientRateLimiter(middleware.DefaultRateLimiterConfig())
	t.Cleanup(limiter.Stop)

	router := Setup(h, &Deps{
		Cfg:             &config.Config{App: config.AppConfig{Name: "printshop-api"}},
		Log:             log,
		Metrics:         m,
		RateLimiter:     limiter,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	})
	return &testServer{router: router, spool: spool, printer: wp}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func items(t *testing.T, raw json.RawMessage) []map[string]any {
	t.Helper()
	var page struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &page))
	return page.Items
}

func fieldNames(errs []apperror.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"printshop-api"}`, w.Body.String())
}

func TestCreateOrder_MirrorsIntoTransactions(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/products",
		`{"name":"Ali","phone":"0300-1234567","amount":800,"advanceAmount":200}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, env.Meta.RequestID)

	product := decode(t, env.Data)
	assert.EqualValues(t, 800, product["amount"])
	assert.EqualValues(t, 600, product["remainingAmount"])
	assert.Equal(t, "partial", product["paymentStatus"])
	assert.Equal(t, "pending", product["workStatus"])

	w, env = s.do(t, http.MethodGet, "/api/v1/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	txs := items(t, env.Data)
	require.Len(t, txs, 1)
	assert.Equal(t, product["id"], txs[0]["relatedProductId"])
	assert.Equal(t, "in", txs[0]["type"])
	assert.EqualValues(t, 600, txs[0]["remainingAmount"])
	assert.Equal(t, "pending", txs[0]["status"])
}

func TestCreateOrder_Validation(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/products", `{"name":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Success)
	assert.ElementsMatch(t, []string{"name", "phone", "amount"}, fieldNames(env.Errors))

	w, env = s.do(t, http.MethodPost, "/api/v1/products", `{"name":"Ali","phone":"1","amount":5,"workStatus":"archived"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"workStatus"}, fieldNames(env.Errors))

	w, _ = s.do(t, http.MethodPost, "/api/v1/products", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_LineItemsAndOwner(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/products",
		`{"name":"Hamid","phone":"1","buy":[{"category":"Banner Printing","qty":2,"unitPrice":"750"}],"amount":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	product := decode(t, env.Data)
	assert.EqualValues(t, 1500, product["amount"])
	assert.Equal(t, "Nazir", product["ownerName"])
	assert.Equal(t, "unpaid", product["paymentStatus"])

	// legacy label shape
	w, env = s.do(t, http.MethodPost, "/api/v1/products",
		`{"name":"Zubair","phone":"1","buy":"Card Printing","amount":300}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product = decode(t, env.Data)
	assert.EqualValues(t, 300, product["amount"])
	assert.Equal(t, "Shabir", product["ownerName"])
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/v1/products",
		`{"name":"Ali","phone":"1","amount":1000,"advanceAmount":100}`)
	id := decode(t, env.Data)["id"].(string)
	base := "/api/v1/products/" + id

	w, env := s.do(t, http.MethodPost, base+"/payments", `{"amount":"300","date":"2025-03-04"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	product := decode(t, env.Data)
	assert.EqualValues(t, 600, product["remainingAmount"])
	assert.Len(t, product["partialPayments"], 1)

	w, env = s.do(t, http.MethodPost, base+"/payments", `{"amount":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"amount"}, fieldNames(env.Errors))

	w, env = s.do(t, http.MethodPost, base+"/mark-paid", "")
	require.Equal(t, http.StatusOK, w.Code)
	product = decode(t, env.Data)
	assert.EqualValues(t, 0, product["remainingAmount"])
	assert.Equal(t, "paid", product["paymentStatus"])

	_, env = s.do(t, http.MethodGet, "/api/v1/transactions", "")
	txs := items(t, env.Data)
	require.Len(t, txs, 1)
	assert.Equal(t, "done", txs[0]["status"])

	w, env = s.do(t, http.MethodPost, base+"/undo-payment", "")
	require.Equal(t, http.StatusOK, w.Code)
	product = decode(t, env.Data)
	assert.EqualValues(t, 900, product["remainingAmount"])
	assert.Equal(t, "partial", product["paymentStatus"])

	w, env = s.do(t, http.MethodPost, base+"/work-status", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "done", decode(t, env.Data)["workStatus"])

	w, env = s.do(t, http.MethodPost, base+"/work-status", `{"status":"in-progress"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in-progress", decode(t, env.Data)["workStatus"])

	w, _ = s.do(t, http.MethodPost, base+"/work-status", `{"status":"lost"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env = s.do(t, http.MethodPut, base, `{"name":"Ali Khan","amount":1200}`)
	require.Equal(t, http.StatusOK, w.Code)
	product = decode(t, env.Data)
	assert.Equal(t, "Ali Khan", product["name"])
	assert.EqualValues(t, 1100, product["remainingAmount"])

	_, env = s.do(t, http.MethodGet, "/api/v1/transactions", "")
	txs = items(t, env.Data)
	require.Len(t, txs, 1)
	assert.Equal(t, "Ali Khan", txs[0]["name"])

	w, _ = s.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = s.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env = s.do(t, http.MethodGet, "/api/v1/transactions", "")
	assert.Empty(t, items(t, env.Data))
}

func TestOrder_BadID(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/api/v1/products/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/products/6f1c2a9e-8b1d-4a57-9f5e-0c1b2a3d4e5f", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderList_Filters(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/v1/products", `{"name":"Ali","phone":"1","amount":100,"advanceAmount":100}`)
	s.do(t, http.MethodPost, "/api/v1/products", `{"name":"Bilal","phone":"2","amount":100}`)

	w, env := s.do(t, http.MethodGet, "/api/v1/products?payment_status=paid", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := items(t, env.Data)
	require.Len(t, list, 1)
	assert.Equal(t, "Ali", list[0]["name"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/products?payment_status=maybe", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMirrorTransaction_IsReadOnly(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/v1/products", `{"name":"Ali","phone":"1","amount":800}`)
	_, env := s.do(t, http.MethodGet, "/api/v1/transactions", "")
	txID := items(t, env.Data)[0]["id"].(string)

	w, _ := s.do(t, http.MethodPut, "/api/v1/transactions/"+txID, `{"amount":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/v1/transactions/"+txID, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestManualTransactionsAndDashboard(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/v1/products", `{"name":"Ali","phone":"1","amount":800,"advanceAmount":200,"buy":"Card Printing"}`)

	w, env := s.do(t, http.MethodPost, "/api/v1/transactions",
		`{"name":"Paper stock","buy":"Paper","amount":100,"type":"out","date":"2025-03-05"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tx := decode(t, env.Data)
	assert.Equal(t, "done", tx["status"])
	assert.EqualValues(t, 0, tx["remainingAmount"])

	w, env = s.do(t, http.MethodPost, "/api/v1/transactions", `{"amount":100,"type":"sideways"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, fieldNames(env.Errors), "type")

	w, env = s.do(t, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		Items   []map[string]any `json:"items"`
		Summary map[string]any   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Len(t, dash.Items, 2)
	assert.EqualValues(t, 200, dash.Summary["totalIncome"])
	assert.EqualValues(t, 100, dash.Summary["totalExpense"])
	assert.EqualValues(t, 100, dash.Summary["netProfit"])
	assert.EqualValues(t, 2, dash.Summary["totalProducts"])

	w, env = s.do(t, http.MethodGet, "/api/v1/dashboard?type=out&person=paper", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	require.Len(t, dash.Items, 1)
	assert.Equal(t, "Paper stock", dash.Items[0]["name"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/dashboard?from=yesterday", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestReconcileEndpoint(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/v1/products", `{"name":"Ali","phone":"1","amount":800}`)

	w, env := s.do(t, http.MethodPost, "/api/v1/transactions/reconcile", "")
	require.Equal(t, http.StatusOK, w.Code)
	report := decode(t, env.Data)
	assert.EqualValues(t, 1, report["products"])
	assert.EqualValues(t, 0, report["created"])
	assert.EqualValues(t, 0, report["updated"])
}

func TestLedgerEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/ledger",
		`{"type":"income","amount":1000,"person":"Ali","category":"Sales","date":"2025-03-01"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, env.Data)["id"].(string)

	w, _ = s.do(t, http.MethodPost, "/api/v1/ledger",
		`{"type":"expense","amount":"400","person":"Bilal","date":"2025-03-02T10:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodPost, "/api/v1/ledger", `{"type":"income","amount":5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, fieldNames(env.Errors), "date")

	w, env = s.do(t, http.MethodGet, "/api/v1/ledger", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items   []map[string]any `json:"items"`
		Summary map[string]any   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "2025-03-02", page.Items[0]["date"])
	assert.EqualValues(t, 600, page.Summary["balance"])

	_, env = s.do(t, http.MethodGet, "/api/v1/ledger?type=expense&per_page=1", "")
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 400, page.Summary["expense"])
	assert.EqualValues(t, 0, page.Summary["income"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/ledger?from=03/01/2025", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env = s.do(t, http.MethodPut, "/api/v1/ledger/"+id, `{"amount":1500}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1500, decode(t, env.Data)["amount"])

	w, _ = s.do(t, http.MethodDelete, "/api/v1/ledger/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/v1/ledger/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemainingEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/remaining", `{"name":"Ali","phone":"1","amount":500,"advanceAmount":150}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	record := decode(t, env.Data)
	assert.EqualValues(t, 350, record["remainingAmount"])
	id := record["id"].(string)

	w, _ = s.do(t, http.MethodPost, "/api/v1/remaining", `{"name":"Ali"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env = s.do(t, http.MethodPut, "/api/v1/remaining/"+id, `{"advanceAmount":500}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, env.Data)["remainingAmount"])

	_, env = s.do(t, http.MethodGet, "/api/v1/remaining?search=ali", "")
	assert.Len(t, items(t, env.Data), 1)

	w, _ = s.do(t, http.MethodDelete, "/api/v1/remaining/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestReports(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/api/v1/products", `{"name":"Ali","phone":"1","amount":800}`)
	s.do(t, http.MethodPost, "/api/v1/ledger", `{"type":"income","amount":10,"date":"2025-03-01"}`)

	for _, path := range []string{"/api/v1/reports/dashboard.xlsx", "/api/v1/reports/ledger.xlsx?type=income"} {
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")
	}
}

func TestPrinterEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/printer/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	status := decode(t, env.Data)
	assert.Equal(t, true, status["configured"])
	assert.EqualValues(t, 32, status["width"])

	_, env = s.do(t, http.MethodPost, "/api/v1/products", `{"name":"Receipt Customer","phone":"1","amount":800}`)
	id := decode(t, env.Data)["id"].(string)

	w, _ = s.do(t, http.MethodPost, "/api/v1/products/"+id+"/receipt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.printer.Jobs())
	assert.Contains(t, s.spool.String(), "Receipt Customer")

	w, _ = s.do(t, http.MethodPost, "/api/v1/printer/test", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, s.printer.Jobs())
}

func TestIdempotentCreate(t *testing.T) {
	s := newTestServer(t)

	body := `{"name":"Ali","phone":"1","amount":800}`
	w1, env1 := s.do(t, http.MethodPost, "/api/v1/products", body, middleware.IdempotencyKeyHeader, "order-1")
	require.Equal(t, http.StatusCreated, w1.Code)
	w2, env2 := s.do(t, http.MethodPost, "/api/v1/products", body, middleware.IdempotencyKeyHeader, "order-1")
	require.Equal(t, http.StatusCreated, w2.Code)
	assert.Equal(t, "true", w2.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, decode(t, env1.Data)["id"], decode(t, env2.Data)["id"])

	_, env := s.do(t, http.MethodGet, "/api/v1/products", "")
	assert.Len(t, items(t, env.Data), 1)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodGet, "/api/v1/products", "")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/api/v1/products"`)
}

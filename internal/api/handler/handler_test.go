package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/api/handler/router"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/internal/usecases/insighting"
	"github.com/therrabiz/therrabiz-api/internal/usecases/reporting"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
)

func newTestRouter(t *testing.T) (router.Router, *storage.Store) {
	t.Helper()

	store, err := storage.New(t.TempDir(), storage.NewBus())
	require.NoError(t, err)

	rt := router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Sales(store, reporting.NewService())...),
		router.WithRoutes(Expenses(store)...),
		router.WithRoutes(Goals(store)...),
		router.WithRoutes(Tasks(store)...),
		router.WithRoutes(Analytics(insighting.NewService(store))...),
	)

	return rt, store
}

func doRequest(rt router.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	rt.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateSale(t *testing.T) {
	rt, store := newTestRouter(t)

	res := doRequest(rt, http.MethodPost, "/v1/sales",
		`{"date":"2025-01-10","revenue":500000,"transactions":12,"topProduct":"Kopi Susu"}`)

	require.Equal(t, http.StatusCreated, res.Code)

	var created domain.SaleRecord
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2025-01-10", created.Date)

	sales := store.Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, created.ID, sales[0].ID)
}

func TestCreateSale_Validation(t *testing.T) {
	rt, store := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing date", body: `{"revenue":100}`},
		{name: "malformed date", body: `{"date":"10/01/2025","revenue":100}`},
		{name: "negative revenue", body: `{"date":"2025-01-10","revenue":-1}`},
		{name: "negative transactions", body: `{"date":"2025-01-10","transactions":-1}`},
		{name: "not json", body: `date=today`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := doRequest(rt, http.MethodPost, "/v1/sales", tt.body)
			assert.Equal(t, http.StatusBadRequest, res.Code)

			var apiErr apiErrors.APIError
			require.NoError(t, json.Unmarshal(res.Body.Bytes(), &apiErr))
			assert.NotEmpty(t, apiErr.Code)
		})
	}

	assert.Empty(t, store.Sales())
}

func TestUpdateAndDeleteSale(t *testing.T) {
	rt, store := newTestRouter(t)

	store.AddSale(domain.SaleRecord{ID: "abc", Date: "2025-01-10", Revenue: 100})

	res := doRequest(rt, http.MethodPut, "/v1/sales/abc",
		`{"date":"2025-01-10","revenue":900,"transactions":5}`)
	require.Equal(t, http.StatusOK, res.Code)

	sales := store.Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, 900.0, sales[0].Revenue)

	res = doRequest(rt, http.MethodDelete, "/v1/sales/abc", "")
	require.Equal(t, http.StatusNoContent, res.Code)
	assert.Empty(t, store.Sales())
}

func TestExportSales(t *testing.T) {
	rt, store := newTestRouter(t)

	store.AddSale(domain.SaleRecord{ID: "1", Date: "2025-01-10", Revenue: 100, Transactions: 2, TopProduct: "Kopi"})

	res := doRequest(rt, http.MethodGet, "/v1/sales/export", "")

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "text/csv; charset=utf-8", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Header().Get("Content-Disposition"), "therrabiz-laporan-penjualan-")
	assert.True(t, strings.HasPrefix(res.Body.String(), "\xEF\xBB\xBF"))
	assert.Contains(t, res.Body.String(), "ID;Tanggal;Omzet (Rp)")
}

func TestCreateExpense_NormalizesCategory(t *testing.T) {
	rt, store := newTestRouter(t)

	res := doRequest(rt, http.MethodPost, "/v1/expenses",
		`{"date":"2025-01-10","description":"beli tepung","amount":50000,"category":"Makanan"}`)

	require.Equal(t, http.StatusCreated, res.Code)

	expenses := store.Expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, domain.CategoryOther, expenses[0].Category)
}

func TestSaveGoal_Upsert(t *testing.T) {
	rt, store := newTestRouter(t)

	res := doRequest(rt, http.MethodPost, "/v1/goals", `{"month":"2025-01","targetAmount":10000000}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doRequest(rt, http.MethodPost, "/v1/goals", `{"month":"2025-01","targetAmount":15000000}`)
	require.Equal(t, http.StatusOK, res.Code)

	goals := store.SalesGoals()
	require.Len(t, goals, 1)
	assert.Equal(t, 15_000_000.0, goals[0].TargetAmount)

	res = doRequest(rt, http.MethodPost, "/v1/goals", `{"month":"Januari","targetAmount":1}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = doRequest(rt, http.MethodPost, "/v1/goals", `{"month":"2025-02","targetAmount":0}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestToggleTask(t *testing.T) {
	rt, store := newTestRouter(t)

	store.SaveDailyTasks([]domain.DailyTask{{ID: "t1", Text: "restock", Date: "2025-01-10"}})

	res := doRequest(rt, http.MethodPatch, "/v1/tasks/t1/toggle", "")
	require.Equal(t, http.StatusOK, res.Code)

	var tasks []domain.DailyTask
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].IsCompleted)
}

func TestGetHeatmap_RejectsUnknownWindow(t *testing.T) {
	rt, _ := newTestRouter(t)

	res := doRequest(rt, http.MethodGet, "/v1/analytics/heatmap?window=decade", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = doRequest(rt, http.MethodGet, "/v1/analytics/heatmap", "")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestGetGoalProgress(t *testing.T) {
	rt, store := newTestRouter(t)

	store.SaveSalesGoal(domain.SalesGoal{Month: "2025-01", TargetAmount: 1_000_000})
	store.AddSale(domain.SaleRecord{ID: "1", Date: "2025-01-10", Revenue: 250_000})

	res := doRequest(rt, http.MethodGet, "/v1/analytics/goal-progress?month=2025-01", "")
	require.Equal(t, http.StatusOK, res.Code)

	var progress insighting.GoalProgress
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &progress))
	assert.Equal(t, 25.0, progress.ProgressPct)

	res = doRequest(rt, http.MethodGet, "/v1/analytics/goal-progress?month=bulan", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

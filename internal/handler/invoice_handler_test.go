package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"harborsync/internal/model"
	"harborsync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock ReportService ---

type mockReportService struct {
	invoices   []model.Invoice
	invoice    *model.Invoice
	report     *service.Report
	runs       []model.IngestRun
	getErr     error
	listErr    error
	reportErr  error
	runListErr error
}

func (m *mockReportService) BuildReport(ctx context.Context) (*service.Report, error) {
	return m.report, m.reportErr
}

func (m *mockReportService) BuildInvoiceReport(ctx context.Context, documentID string) (*service.Report, error) {
	return m.report, m.reportErr
}

func (m *mockReportService) ListInvoices(ctx context.Context, page, limit int) ([]model.Invoice, int64, error) {
	return m.invoices, int64(len(m.invoices)), m.listErr
}

func (m *mockReportService) GetInvoice(ctx context.Context, documentID string) (*model.Invoice, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.invoice, nil
}

func (m *mockReportService) ListRuns(ctx context.Context, page, limit int) ([]model.IngestRun, int64, error) {
	return m.runs, int64(len(m.runs)), m.runListErr
}

func setupRouter(svc service.ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewInvoiceHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

// --- Tests ---

func TestListInvoices(t *testing.T) {
	svc := &mockReportService{
		invoices: []model.Invoice{
			{DocumentID: "123", BillToName: "Acme", InvoiceTotal: decimal.RequireFromString("42.50")},
		},
	}
	router := setupRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Invoices []model.Invoice `json:"invoices"`
			Total    int64           `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data.Invoices, 1)
	assert.Equal(t, "123", resp.Data.Invoices[0].DocumentID)
	assert.Equal(t, int64(1), resp.Data.Total)
}

func TestGetInvoice(t *testing.T) {
	testCases := []struct {
		name               string
		svc                *mockReportService
		expectedStatusCode int
	}{
		{
			name: "found",
			svc: &mockReportService{
				invoice: &model.Invoice{DocumentID: "123"},
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "not found",
			svc:                &mockReportService{getErr: gorm.ErrRecordNotFound},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "storage failure",
			svc:                &mockReportService{getErr: errors.New("connection reset")},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(tc.svc)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/invoices/123", nil)
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}

func TestGetReport(t *testing.T) {
	svc := &mockReportService{
		report: &service.Report{
			Categories: []model.InvoiceCategory{{InvoiceID: "123", CategoryName: "Grocery"}},
		},
	}
	router := setupRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Grocery")
}

func TestListRuns(t *testing.T) {
	svc := &mockReportService{
		runs: []model.IngestRun{{DocumentID: "123", Status: model.RunStatusSucceeded}},
	}
	router := setupRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SUCCEEDED")
}

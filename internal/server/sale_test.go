package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/gstbooks/internal/config"
	"github.com/smallbiznis/gstbooks/internal/export/pdf"
	saledomain "github.com/smallbiznis/gstbooks/internal/sale/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSaleService struct {
	createErr   error
	createCalls int
	lastCreate  saledomain.CreateSaleRequest
	sale        *saledomain.Sale
}

func (f *fakeSaleService) Create(ctx context.Context, req saledomain.CreateSaleRequest) (saledomain.Sale, error) {
	f.createCalls++
	f.lastCreate = req
	if f.createErr != nil {
		return saledomain.Sale{}, f.createErr
	}
	return saledomain.Sale{InvoiceNumber: req.InvoiceNumber}, nil
}

func (f *fakeSaleService) Update(ctx context.Context, req saledomain.UpdateSaleRequest) (saledomain.Sale, error) {
	return saledomain.Sale{}, nil
}

func (f *fakeSaleService) List(ctx context.Context, req saledomain.ListSaleRequest) (saledomain.ListSaleResponse, error) {
	return saledomain.ListSaleResponse{}, nil
}

func (f *fakeSaleService) GetByID(ctx context.Context, req saledomain.GetSaleRequest) (saledomain.Sale, error) {
	if f.sale != nil {
		return *f.sale, nil
	}
	return saledomain.Sale{}, saledomain.ErrNotFound
}

func (f *fakeSaleService) Delete(ctx context.Context, req saledomain.GetSaleRequest) error {
	return saledomain.ErrNotFound
}

func (f *fakeSaleService) MarkPaid(ctx context.Context, req saledomain.GetSaleRequest) (saledomain.Sale, error) {
	return saledomain.Sale{}, saledomain.ErrAlreadyPaid
}

func newTestServer(t *testing.T, saleSvc saledomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{DefaultOrgID: 42}
	engine := NewEngine(cfg, zap.NewNop())
	srv := &Server{
		engine:  engine,
		cfg:     cfg,
		saleSvc: saleSvc,
	}
	v1 := engine.Group("/v1", OrgScopeMiddleware(cfg))
	v1.POST("/sales", srv.CreateSale)
	v1.GET("/sales/:id", srv.GetSale)
	v1.POST("/sales/:id/mark-paid", srv.MarkSalePaid)
	v1.GET("/sales/:id/pdf", srv.DownloadSalePDF)
	return srv
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateSaleEndpoint(t *testing.T) {
	fake := &fakeSaleService{}
	srv := newTestServer(t, fake)

	w := postJSON(t, srv.Engine(), "/v1/sales", map[string]any{
		"kind":           "GST",
		"invoice_number": "INV-001",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fake.createCalls)
	assert.Equal(t, "INV-001", fake.lastCreate.InvoiceNumber)
}

func TestCreateSaleTotalsMismatchMapsTo422(t *testing.T) {
	fake := &fakeSaleService{createErr: saledomain.ErrTotalsMismatch}
	srv := newTestServer(t, fake)

	w := postJSON(t, srv.Engine(), "/v1/sales", map[string]any{"kind": "GST"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "reconciliation_error", resp.Error.Type)
}

func TestCreateSaleDuplicateNumberMapsTo409(t *testing.T) {
	fake := &fakeSaleService{createErr: saledomain.ErrDuplicateInvoiceNumber}
	srv := newTestServer(t, fake)

	w := postJSON(t, srv.Engine(), "/v1/sales", map[string]any{"kind": "GST"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateSaleValidationMapsTo400(t *testing.T) {
	fake := &fakeSaleService{createErr: saledomain.ErrInvalidPaymentMode}
	srv := newTestServer(t, fake)

	w := postJSON(t, srv.Engine(), "/v1/sales", map[string]any{"kind": "GST"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "invalid_payment_mode", resp.Error.Errors[0].Code)
}

func TestDownloadSalePDF(t *testing.T) {
	fake := &fakeSaleService{sale: &saledomain.Sale{InvoiceNumber: "INV-9"}}
	srv := newTestServer(t, fake)
	provider := &pdf.NoOpProvider{}
	srv.pdfProvider = provider

	req := httptest.NewRequest(http.MethodGet, "/v1/sales/123/pdf", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice-INV-9.pdf")
	assert.Equal(t, 1, provider.Calls)
}

func TestGetSaleNotFoundMapsTo404(t *testing.T) {
	srv := newTestServer(t, &fakeSaleService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/sales/123", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkPaidConflictMapsTo409(t *testing.T) {
	srv := newTestServer(t, &fakeSaleService{})

	w := postJSON(t, srv.Engine(), "/v1/sales/123/mark-paid", map[string]any{})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBadOrgHeaderRejected(t *testing.T) {
	srv := newTestServer(t, &fakeSaleService{})

	payload, _ := json.Marshal(map[string]any{"kind": "GST"})
	req := httptest.NewRequest(http.MethodPost, "/v1/sales", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Org-Id", "not-a-snowflake")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
	"github.com/smallbiznis/gstbooks/internal/purchase/domain"
	purchaserepo "github.com/smallbiznis/gstbooks/internal/purchase/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) (domain.Service, context.Context) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Purchase{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  purchaserepo.Provide(),
	})
	ctx := orgcontext.WithOrgID(context.Background(), int64(node.Generate()))
	return svc, ctx
}

func validCreate() domain.CreatePurchaseRequest {
	return domain.CreatePurchaseRequest{
		SupplierName:  "Mehta Supplies",
		SupplierGSTIN: "27AAACM1234A1Z5",
		BillNumber:    "B-1001",
		BillDate:      time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
		Category:      "raw-material",
		TaxableAmount: dec("1000.00"),
		GSTAmount:     dec("180.00"),
		Total:         dec("1180.00"),
		PaymentMode:   gst.PaymentModeFull,
	}
}

func TestCreatePurchase(t *testing.T) {
	svc, ctx := newFixture(t)

	purchase, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	assert.Equal(t, "Mehta Supplies", purchase.SupplierName)
	assert.True(t, purchase.Total.Equal(dec("1180.00")))
	assert.NotZero(t, purchase.ID)

	got, err := svc.GetByID(ctx, domain.GetPurchaseRequest{ID: purchase.ID.String()})
	require.NoError(t, err)
	assert.True(t, got.GSTAmount.Equal(dec("180.00")))
}

func TestCreatePurchaseRejectsInconsistentTotal(t *testing.T) {
	svc, ctx := newFixture(t)

	req := validCreate()
	req.Total = dec("1200.00")
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreatePurchaseValidation(t *testing.T) {
	svc, ctx := newFixture(t)

	cases := []struct {
		name    string
		mutate  func(*domain.CreatePurchaseRequest)
		wantErr error
	}{
		{"missing supplier", func(r *domain.CreatePurchaseRequest) { r.SupplierName = "  " }, domain.ErrInvalidSupplier},
		{"missing bill number", func(r *domain.CreatePurchaseRequest) { r.BillNumber = "" }, domain.ErrInvalidBillNumber},
		{"zero bill date", func(r *domain.CreatePurchaseRequest) { r.BillDate = time.Time{} }, domain.ErrInvalidBillDate},
		{"bad payment mode", func(r *domain.CreatePurchaseRequest) { r.PaymentMode = "credit" }, domain.ErrInvalidPaymentMode},
		{"negative taxable", func(r *domain.CreatePurchaseRequest) { r.TaxableAmount = dec("-1") }, domain.ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdatePurchase(t *testing.T) {
	svc, ctx := newFixture(t)

	purchase, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	taxable := dec("2000.00")
	gstAmount := dec("360.00")
	total := dec("2360.00")
	updated, err := svc.Update(ctx, domain.UpdatePurchaseRequest{
		ID:            purchase.ID.String(),
		TaxableAmount: &taxable,
		GSTAmount:     &gstAmount,
		Total:         &total,
	})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(total))

	// partial update must keep the remaining figures consistent
	badTotal := dec("9999.00")
	_, err = svc.Update(ctx, domain.UpdatePurchaseRequest{
		ID:    purchase.ID.String(),
		Total: &badTotal,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestDeletePurchase(t *testing.T) {
	svc, ctx := newFixture(t)

	purchase, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, domain.GetPurchaseRequest{ID: purchase.ID.String()}))

	_, err = svc.GetByID(ctx, domain.GetPurchaseRequest{ID: purchase.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPurchasesSortsByRequestedColumn(t *testing.T) {
	svc, ctx := newFixture(t)

	small := validCreate()
	_, err := svc.Create(ctx, small)
	require.NoError(t, err)

	big := validCreate()
	big.BillNumber = "B-2001"
	big.TaxableAmount = dec("5000.00")
	big.GSTAmount = dec("900.00")
	big.Total = dec("5900.00")
	_, err = svc.Create(ctx, big)
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListPurchaseRequest{SortBy: "total", OrderBy: "asc"})
	require.NoError(t, err)
	require.Len(t, resp.Purchases, 2)
	assert.Equal(t, "B-1001", resp.Purchases[0].BillNumber)
	assert.Equal(t, "B-2001", resp.Purchases[1].BillNumber)

	resp, err = svc.List(ctx, domain.ListPurchaseRequest{SortBy: "total", OrderBy: "desc"})
	require.NoError(t, err)
	require.Len(t, resp.Purchases, 2)
	assert.Equal(t, "B-2001", resp.Purchases[0].BillNumber)

	// unknown columns fall back to created_at desc
	_, err = svc.List(ctx, domain.ListPurchaseRequest{SortBy: "total; DROP TABLE purchases"})
	require.NoError(t, err)
}

func TestListPurchasesFiltersByCategory(t *testing.T) {
	svc, ctx := newFixture(t)

	first := validCreate()
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validCreate()
	second.BillNumber = "B-1002"
	second.Category = "services"
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	resp, err := svc.List(ctx, domain.ListPurchaseRequest{Category: "services"})
	require.NoError(t, err)
	require.Len(t, resp.Purchases, 1)
	assert.Equal(t, "B-1002", resp.Purchases[0].BillNumber)
}

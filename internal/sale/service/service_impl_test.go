package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/config"
	customerdomain "github.com/smallbiznis/gstbooks/internal/customer/domain"
	customerrepo "github.com/smallbiznis/gstbooks/internal/customer/repository"
	customerservice "github.com/smallbiznis/gstbooks/internal/customer/service"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
	"github.com/smallbiznis/gstbooks/internal/sale/domain"
	salerepo "github.com/smallbiznis/gstbooks/internal/sale/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	svc      domain.Service
	ctx      context.Context
	node     *snowflake.Node
	customer customerdomain.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&customerdomain.Customer{},
		&domain.Sale{},
		&domain.SaleItem{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	logger := zap.NewNop()
	cfg := config.Config{HomeState: "karnataka"}

	customerSvc := customerservice.New(customerservice.Params{
		DB:    gdb,
		Log:   logger,
		GenID: node,
		Repo:  customerrepo.Provide(),
	})

	svc := New(Params{
		Config:      cfg,
		DB:          gdb,
		Log:         logger,
		GenID:       node,
		Repo:        salerepo.Provide(),
		CustomerSvc: customerSvc,
	})

	ctx := orgcontext.WithOrgID(context.Background(), int64(node.Generate()))

	customer, err := customerSvc.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:          "Acme Traders",
		Email:         "accounts@acme.example",
		GSTIN:         "29ABCDE1234F1Z5",
		PlaceOfSupply: "Maharashtra",
	})
	require.NoError(t, err)

	return &fixture{svc: svc, ctx: ctx, node: node, customer: customer}
}

// saleLine builds a consistent submitted line the way the order-entry
// quantity-change path would: everything derived from the slab.
func saleLine(node *snowflake.Node, rate string, qty int64, slab int64) domain.SaleLineInput {
	r := dec(rate)
	taxable := r.Mul(decimal.NewFromInt(qty)).Round(2)
	gstAmt := taxable.Mul(decimal.NewFromInt(slab)).Div(decimal.NewFromInt(100)).Round(2)
	cgst := gstAmt.Div(decimal.NewFromInt(2)).Round(2)
	return domain.SaleLineInput{
		ItemID:        node.Generate().String(),
		Type:          gst.ItemTypeGoods,
		HSNCode:       "8471",
		Description:   "Widget",
		Rate:          r,
		Quantity:      qty,
		GSTSlab:       slab,
		TaxableAmount: taxable,
		GSTAmount:     gstAmt,
		CGST:          cgst,
		SGST:          cgst,
		IGST:          gstAmt,
		Total:         taxable.Add(gstAmt).Round(2),
	}
}

func totalsFor(lines []domain.SaleLineInput, shipping, discount string, mode gst.PaymentMode, advance string) domain.SaleTotalsInput {
	gstLines := make([]gst.LineItem, 0, len(lines))
	for _, l := range lines {
		gstLines = append(gstLines, gst.LineItem{
			TaxableAmount: l.TaxableAmount,
			GSTAmount:     l.GSTAmount,
		})
	}
	totals := gst.Recompute(gstLines, gst.Adjustments{
		ShippingCharges: dec(shipping),
		Discount:        dec(discount),
		PaymentMode:     mode,
		AdvanceAmount:   dec(advance),
	})
	return domain.SaleTotalsInput{
		TaxableAmount:    totals.TaxableAmount,
		GSTAmount:        totals.GSTAmount,
		CGST:             totals.CGST,
		SGST:             totals.SGST,
		IGST:             totals.IGST,
		ShippingCharges:  totals.ShippingCharges,
		Discount:         totals.Discount,
		OtherAdjustments: totals.OtherAdjustments,
		Total:            totals.Total,
		AdvanceAmount:    totals.AdvanceAmount,
		BalanceDue:       totals.BalanceDue,
	}
}

func TestCreateGSTSale_InterState(t *testing.T) {
	f := newFixture(t)

	lines := []domain.SaleLineInput{saleLine(f.node, "1000.00", 2, 18)}
	sale, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindGST,
		InvoiceNumber: "INV-001",
		InvoiceDate:   time.Now().UTC(),
		CustomerID:    f.customer.ID.String(),
		PaymentMode:   gst.PaymentModeFull,
		Items:         lines,
		Totals:        totalsFor(lines, "50.00", "0.00", gst.PaymentModeFull, "0"),
	})
	require.NoError(t, err)

	// Customer is in Maharashtra, home state is Karnataka: IGST applies.
	assert.Equal(t, gst.SplitModeInter, sale.SplitMode)
	assert.Equal(t, "Acme Traders", sale.CustomerName)
	assert.True(t, sale.Total.Equal(dec("2410.00")), "total: %s", sale.Total)
	assert.True(t, sale.IGST.Equal(dec("360.00")))
	// Both pairs are stored regardless of jurisdiction.
	assert.True(t, sale.CGST.Equal(dec("180.00")))
	assert.Equal(t, domain.SaleStatusOpen, sale.Status)
	require.Len(t, sale.Items, 1)
}

func TestCreateCashSale_AlwaysIntraState(t *testing.T) {
	f := newFixture(t)

	lines := []domain.SaleLineInput{saleLine(f.node, "150.00", 1, 5)}
	sale, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindCash,
		InvoiceNumber: "CSH-001",
		InvoiceDate:   time.Now().UTC(),
		CustomerName:  "Walk-in",
		PaymentMode:   gst.PaymentModeFull,
		Items:         lines,
		Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	require.NoError(t, err)
	assert.Equal(t, gst.SplitModeIntra, sale.SplitMode)
	assert.Equal(t, "karnataka", sale.PlaceOfSupply)
}

func TestCreateSale_RejectsTamperedTotals(t *testing.T) {
	f := newFixture(t)

	lines := []domain.SaleLineInput{saleLine(f.node, "1000.00", 2, 18)}
	totals := totalsFor(lines, "0.00", "0.00", gst.PaymentModeFull, "0")
	totals.Total = totals.Total.Sub(dec("100.00")) // client lies

	_, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindGST,
		InvoiceNumber: "INV-002",
		InvoiceDate:   time.Now().UTC(),
		CustomerID:    f.customer.ID.String(),
		PaymentMode:   gst.PaymentModeFull,
		Items:         lines,
		Totals:        totals,
	})
	assert.ErrorIs(t, err, domain.ErrTotalsMismatch)
}

func TestCreateSale_RejectsTamperedLine(t *testing.T) {
	f := newFixture(t)

	line := saleLine(f.node, "1000.00", 2, 18)
	line.TaxableAmount = dec("1500.00") // disagrees with rate * quantity
	lines := []domain.SaleLineInput{line}

	_, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindGST,
		InvoiceNumber: "INV-003",
		InvoiceDate:   time.Now().UTC(),
		CustomerID:    f.customer.ID.String(),
		PaymentMode:   gst.PaymentModeFull,
		Items:         lines,
		Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	assert.ErrorIs(t, err, domain.ErrLineMismatch)
}

func TestCreateSale_AcceptsCatalogSourcedLineGST(t *testing.T) {
	f := newFixture(t)

	// First-add path: line GST comes from the catalog's per-unit IGST and
	// does not scale with quantity. The backend accepts it as long as the
	// line is internally consistent and the totals reconcile.
	line := saleLine(f.node, "1000.00", 2, 18)
	line.GSTAmount = dec("180.00") // per-unit figure, not 360.00
	line.CGST = dec("90.00")
	line.SGST = dec("90.00")
	line.IGST = dec("180.00")
	line.Total = line.TaxableAmount.Add(line.GSTAmount)
	lines := []domain.SaleLineInput{line}

	sale, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindGST,
		InvoiceNumber: "INV-004",
		InvoiceDate:   time.Now().UTC(),
		CustomerID:    f.customer.ID.String(),
		PaymentMode:   gst.PaymentModeFull,
		Items:         lines,
		Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	require.NoError(t, err)
	assert.True(t, sale.GSTAmount.Equal(dec("180.00")))
}

func TestCreateSale_DuplicateInvoiceNumber(t *testing.T) {
	f := newFixture(t)

	lines := []domain.SaleLineInput{saleLine(f.node, "100.00", 1, 18)}
	req := domain.CreateSaleRequest{
		Kind:          domain.SaleKindGST,
		InvoiceNumber: "INV-005",
		InvoiceDate:   time.Now().UTC(),
		CustomerID:    f.customer.ID.String(),
		PaymentMode:   gst.PaymentModeFull,
		Items:         lines,
		Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	}
	_, err := f.svc.Create(f.ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Create(f.ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
}

func TestCreateSale_PartialPaymentKeepsNegativeBalance(t *testing.T) {
	f := newFixture(t)

	lines := []domain.SaleLineInput{saleLine(f.node, "100.00", 1, 18)}
	sale, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindCash,
		InvoiceNumber: "CSH-002",
		InvoiceDate:   time.Now().UTC(),
		CustomerName:  "Walk-in",
		PaymentMode:   gst.PaymentModePartial,
		Items:         lines,
		Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModePartial, "500.00"),
	})
	require.NoError(t, err)
	assert.True(t, sale.BalanceDue.IsNegative(), "overpayment is kept as customer credit")
}

func TestCreateSale_Validation(t *testing.T) {
	f := newFixture(t)
	lines := []domain.SaleLineInput{saleLine(f.node, "100.00", 1, 18)}

	tests := []struct {
		name    string
		mutate  func(*domain.CreateSaleRequest)
		wantErr error
	}{
		{"empty items", func(r *domain.CreateSaleRequest) { r.Items = nil }, domain.ErrEmptyItems},
		{"empty invoice number", func(r *domain.CreateSaleRequest) { r.InvoiceNumber = " " }, domain.ErrInvalidInvoiceNumber},
		{"bad kind", func(r *domain.CreateSaleRequest) { r.Kind = "WHOLESALE" }, domain.ErrInvalidKind},
		{"bad payment mode", func(r *domain.CreateSaleRequest) { r.PaymentMode = "emi" }, domain.ErrInvalidPaymentMode},
		{"zero date", func(r *domain.CreateSaleRequest) { r.InvoiceDate = time.Time{} }, domain.ErrInvalidInvoiceDate},
		{"unknown customer", func(r *domain.CreateSaleRequest) { r.CustomerID = f.node.Generate().String() }, domain.ErrInvalidCustomer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.CreateSaleRequest{
				Kind:          domain.SaleKindGST,
				InvoiceNumber: "INV-V-" + tt.name,
				InvoiceDate:   time.Now().UTC(),
				CustomerID:    f.customer.ID.String(),
				PaymentMode:   gst.PaymentModeFull,
				Items:         lines,
				Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModeFull, "0"),
			}
			tt.mutate(&req)
			_, err := f.svc.Create(f.ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateSale_ZeroQuantityRejected(t *testing.T) {
	f := newFixture(t)

	line := saleLine(f.node, "100.00", 1, 18)
	line.Quantity = 0
	_, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindCash,
		InvoiceNumber: "CSH-003",
		InvoiceDate:   time.Now().UTC(),
		CustomerName:  "Walk-in",
		PaymentMode:   gst.PaymentModeFull,
		Items:         []domain.SaleLineInput{line},
		Totals:        totalsFor([]domain.SaleLineInput{line}, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdateSale_ReplacesItemsAndTotals(t *testing.T) {
	f := newFixture(t)

	lines := []domain.SaleLineInput{saleLine(f.node, "1000.00", 2, 18)}
	created, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindGST,
		InvoiceNumber: "INV-006",
		InvoiceDate:   time.Now().UTC(),
		CustomerID:    f.customer.ID.String(),
		PaymentMode:   gst.PaymentModeFull,
		Items:         lines,
		Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	require.NoError(t, err)

	newLines := []domain.SaleLineInput{
		saleLine(f.node, "1000.00", 3, 18),
		saleLine(f.node, "50.00", 1, 5),
	}
	updated, err := f.svc.Update(f.ctx, domain.UpdateSaleRequest{
		ID:            created.ID.String(),
		InvoiceNumber: "INV-006",
		InvoiceDate:   created.InvoiceDate,
		PaymentMode:   gst.PaymentModeFull,
		Items:         newLines,
		Totals:        totalsFor(newLines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.True(t, updated.TaxableAmount.Equal(dec("3050.00")))

	fetched, err := f.svc.GetByID(f.ctx, domain.GetSaleRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Len(t, fetched.Items, 2)
}

func TestMarkPaidAndDelete(t *testing.T) {
	f := newFixture(t)

	lines := []domain.SaleLineInput{saleLine(f.node, "100.00", 1, 18)}
	created, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindCash,
		InvoiceNumber: "CSH-004",
		InvoiceDate:   time.Now().UTC(),
		CustomerName:  "Walk-in",
		PaymentMode:   gst.PaymentModePartial,
		Items:         lines,
		Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModePartial, "50.00"),
	})
	require.NoError(t, err)

	paid, err := f.svc.MarkPaid(f.ctx, domain.GetSaleRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, domain.SaleStatusPaid, paid.Status)
	assert.True(t, paid.BalanceDue.IsZero())

	_, err = f.svc.MarkPaid(f.ctx, domain.GetSaleRequest{ID: created.ID.String()})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	// Paid sales cannot be edited.
	_, err = f.svc.Update(f.ctx, domain.UpdateSaleRequest{
		ID:            created.ID.String(),
		InvoiceNumber: "CSH-004",
		InvoiceDate:   created.InvoiceDate,
		PaymentMode:   gst.PaymentModeFull,
		Items:         lines,
		Totals:        totalsFor(lines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	err = f.svc.Delete(f.ctx, domain.GetSaleRequest{ID: created.ID.String()})
	require.NoError(t, err)

	_, err = f.svc.GetByID(f.ctx, domain.GetSaleRequest{ID: created.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSales_FilterByKind(t *testing.T) {
	f := newFixture(t)

	gstLines := []domain.SaleLineInput{saleLine(f.node, "100.00", 1, 18)}
	_, err := f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindGST,
		InvoiceNumber: "INV-007",
		InvoiceDate:   time.Now().UTC(),
		CustomerID:    f.customer.ID.String(),
		PaymentMode:   gst.PaymentModeFull,
		Items:         gstLines,
		Totals:        totalsFor(gstLines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	require.NoError(t, err)

	cashLines := []domain.SaleLineInput{saleLine(f.node, "200.00", 1, 5)}
	_, err = f.svc.Create(f.ctx, domain.CreateSaleRequest{
		Kind:          domain.SaleKindCash,
		InvoiceNumber: "CSH-005",
		InvoiceDate:   time.Now().UTC(),
		CustomerName:  "Walk-in",
		PaymentMode:   gst.PaymentModeFull,
		Items:         cashLines,
		Totals:        totalsFor(cashLines, "0.00", "0.00", gst.PaymentModeFull, "0"),
	})
	require.NoError(t, err)

	resp, err := f.svc.List(f.ctx, domain.ListSaleRequest{Kind: domain.SaleKindCash})
	require.NoError(t, err)
	require.Len(t, resp.Sales, 1)
	assert.Equal(t, "CSH-005", resp.Sales[0].InvoiceNumber)
}

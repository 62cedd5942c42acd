package excel

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/gstbooks/internal/customer/domain"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
	saledomain "github.com/smallbiznis/gstbooks/internal/sale/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newExporterFixture(t *testing.T) (*Exporter, *gorm.DB, *snowflake.Node, snowflake.ID, context.Context) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&customerdomain.Customer{},
		&saledomain.Sale{},
		&saledomain.SaleItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	exporter := New(Params{DB: gdb, Log: zap.NewNop()})
	orgID := node.Generate()
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))
	return exporter, gdb, node, orgID, ctx
}

func insertSale(t *testing.T, gdb *gorm.DB, sale saledomain.Sale) {
	t.Helper()
	sale.Metadata = datatypes.JSONMap{}
	require.NoError(t, gdb.Create(&sale).Error)
}

func TestSalesRegisterCustomerNames(t *testing.T) {
	exporter, gdb, node, orgID, ctx := newExporterFixture(t)

	customer := customerdomain.Customer{
		ID:            node.Generate(),
		OrgID:         orgID,
		Name:          "Acme Traders",
		Email:         "accounts@acme.example",
		PlaceOfSupply: "Maharashtra",
		Metadata:      datatypes.JSONMap{},
	}
	require.NoError(t, gdb.Create(&customer).Error)

	// Walk-in cash sale: no customer record, only the recorded name.
	insertSale(t, gdb, saledomain.Sale{
		ID:            node.Generate(),
		OrgID:         orgID,
		Kind:          saledomain.SaleKindCash,
		InvoiceNumber: "CSH-001",
		InvoiceDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Ravi Kumar",
		SplitMode:     gst.SplitModeIntra,
		TaxableAmount: dec("1000.00"),
		GSTAmount:     dec("180.00"),
		CGST:          dec("90.00"),
		SGST:          dec("90.00"),
		Total:         dec("1180.00"),
		PaymentMode:   gst.PaymentModeFull,
		Status:        saledomain.SaleStatusOpen,
	})

	customerID := customer.ID
	insertSale(t, gdb, saledomain.Sale{
		ID:            node.Generate(),
		OrgID:         orgID,
		Kind:          saledomain.SaleKindGST,
		InvoiceNumber: "INV-001",
		InvoiceDate:   time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		CustomerID:    &customerID,
		CustomerName:  "Acme Traders",
		SplitMode:     gst.SplitModeInter,
		TaxableAmount: dec("2000.00"),
		GSTAmount:     dec("360.00"),
		IGST:          dec("360.00"),
		Total:         dec("2360.00"),
		PaymentMode:   gst.PaymentModeFull,
		Status:        saledomain.SaleStatusOpen,
	})

	buf, err := exporter.SalesRegister(ctx,
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Sales Register"

	cashName, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", cashName)

	gstName, err := f.GetCellValue(sheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", gstName)

	cashTotal, err := f.GetCellValue(sheet, "J2")
	require.NoError(t, err)
	assert.Equal(t, "1180.00", cashTotal)
}

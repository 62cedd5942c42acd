package excel

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstbooks/internal/orgcontext"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidOrganization = errors.New("invalid_organization")

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

// Exporter writes sales and purchase registers as xlsx workbooks.
type Exporter struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) *Exporter {
	return &Exporter{
		db:  p.DB,
		log: p.Log.Named("export.excel"),
	}
}

type salesRow struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	Kind          string
	CustomerName  string
	SplitMode     string
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	Total         decimal.Decimal
	Status        string
}

type purchaseRow struct {
	BillNumber    string
	BillDate      time.Time
	SupplierName  string
	SupplierGSTIN string
	Category      string
	TaxableAmount decimal.Decimal
	GSTAmount     decimal.Decimal
	Total         decimal.Decimal
}

// SalesRegister renders one row per invoice in the range, with the
// jurisdiction tax splits broken out per column.
func (e *Exporter) SalesRegister(ctx context.Context, from, to time.Time) (*bytes.Buffer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, ErrInvalidOrganization
	}

	rows, err := e.salesRows(ctx, orgID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sales Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice No", "Date", "Type", "Customer", "Supply", "Taxable", "CGST", "SGST", "IGST", "Total", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		values := []interface{}{
			row.InvoiceNumber,
			row.InvoiceDate.Format("2006-01-02"),
			row.Kind,
			row.CustomerName,
			row.SplitMode,
			row.TaxableAmount.StringFixed(2),
			row.CGST.StringFixed(2),
			row.SGST.StringFixed(2),
			row.IGST.StringFixed(2),
			row.Total.StringFixed(2),
			row.Status,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	return f.WriteToBuffer()
}

// PurchaseRegister renders one row per purchase bill in the range.
func (e *Exporter) PurchaseRegister(ctx context.Context, from, to time.Time) (*bytes.Buffer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, ErrInvalidOrganization
	}

	rows, err := e.purchaseRows(ctx, orgID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Purchase Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Bill No", "Date", "Supplier", "GSTIN", "Category", "Taxable", "GST", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		values := []interface{}{
			row.BillNumber,
			row.BillDate.Format("2006-01-02"),
			row.SupplierName,
			row.SupplierGSTIN,
			row.Category,
			row.TaxableAmount.StringFixed(2),
			row.GSTAmount.StringFixed(2),
			row.Total.StringFixed(2),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	return f.WriteToBuffer()
}

func (e *Exporter) salesRows(ctx context.Context, orgID snowflake.ID, from, to time.Time) ([]salesRow, error) {
	var rows []salesRow
	err := e.db.WithContext(ctx).Raw(
		`SELECT s.invoice_number,
		        s.invoice_date,
		        s.kind,
		        COALESCE(c.name, s.customer_name) AS customer_name,
		        s.split_mode,
		        s.taxable_amount,
		        s.cgst,
		        s.sgst,
		        s.igst,
		        s.total,
		        s.status
		 FROM sales s
		 LEFT JOIN customers c ON c.id = s.customer_id
		 WHERE s.org_id = ? AND s.invoice_date >= ? AND s.invoice_date <= ?
		 ORDER BY s.invoice_date, s.invoice_number`,
		orgID, from, to,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (e *Exporter) purchaseRows(ctx context.Context, orgID snowflake.ID, from, to time.Time) ([]purchaseRow, error) {
	var rows []purchaseRow
	err := e.db.WithContext(ctx).Raw(
		`SELECT bill_number, bill_date, supplier_name, supplier_gstin, category,
		        taxable_amount, gst_amount, total
		 FROM purchases
		 WHERE org_id = ? AND bill_date >= ? AND bill_date <= ?
		 ORDER BY bill_date, bill_number`,
		orgID, from, to,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

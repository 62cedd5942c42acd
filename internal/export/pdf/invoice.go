package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) RenderInvoice(ctx context.Context, invoice InvoiceData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Tax Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	// Invoice meta
	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.InvoiceNumber, props.Text{Top: 0}),
			text.New("Invoice date: "+invoice.InvoiceDate, props.Text{Top: 4}),
			text.New("Place of supply: "+invoice.PlaceOfSupply, props.Text{Top: 8}),
		),
		col.New(6),
	)

	// Addresses
	m.AddRow(36,
		col.New(6).Add(
			text.New(invoice.OrgName, props.Text{Style: fontstyle.Bold}),
			text.New(invoice.OrgAddress, props.Text{Top: 5}),
			text.New("GSTIN: "+invoice.OrgGSTIN, props.Text{Top: 14}),
			text.New(invoice.OrgEmail, props.Text{Top: 18}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(invoice.BillToName, props.Text{Top: 5}),
			text.New(invoice.BillToAddress, props.Text{Top: 9}),
			text.New("GSTIN: "+invoice.BillToGSTIN, props.Text{Top: 18}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(4, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "HSN/SAC", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "GST%", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range invoice.Items {
		m.AddRow(12,
			text.NewCol(4, item.Description, props.Text{Size: 9}),
			text.NewCol(2, item.HSNCode, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Rate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.GSTSlab, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Tax summary shows the pair active for the jurisdiction
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Taxable value", props.Text{Size: 9}),
		text.NewCol(2, invoice.TaxableAmount, props.Text{Size: 9, Align: align.Right}),
	)
	if invoice.InterState {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "IGST", props.Text{Size: 9}),
			text.NewCol(2, invoice.IGST, props.Text{Size: 9, Align: align.Right}),
		)
	} else {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "CGST", props.Text{Size: 9}),
			text.NewCol(2, invoice.CGST, props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "SGST", props.Text{Size: 9}),
			text.NewCol(2, invoice.SGST, props.Text{Size: 9, Align: align.Right}),
		)
	}
	if invoice.ShippingCharges != "" {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Shipping", props.Text{Size: 9}),
			text.NewCol(2, invoice.ShippingCharges, props.Text{Size: 9, Align: align.Right}),
		)
	}
	if invoice.Discount != "" {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, "-"+invoice.Discount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	if invoice.OtherAdjustments != "" {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Adjustment", props.Text{Size: 9}),
			text.NewCol(2, invoice.OtherAdjustments, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, invoice.Total, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	if invoice.AdvanceAmount != "" {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Advance", props.Text{Size: 9}),
			text.NewCol(2, invoice.AdvanceAmount, props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Balance due", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, invoice.BalanceDue, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(14,
		text.NewCol(12, "Amount in words: "+invoice.TotalInWords, props.Text{
			Size: 9,
			Top:  4,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

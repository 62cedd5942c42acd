package pdf

import (
	"bytes"
	"context"
	"io"
)

type InvoiceData struct {
	OrgName    string
	OrgAddress string
	OrgGSTIN   string
	OrgEmail   string

	InvoiceNumber string
	InvoiceDate   string
	PlaceOfSupply string

	BillToName    string
	BillToAddress string
	BillToGSTIN   string

	Items []InvoiceItem

	TaxableAmount string
	CGST          string
	SGST          string
	IGST          string
	InterState    bool

	ShippingCharges  string
	Discount         string
	OtherAdjustments string
	Total            string
	AdvanceAmount    string
	BalanceDue       string

	TotalInWords string
}

type InvoiceItem struct {
	Description string
	HSNCode     string
	Qty         int64
	Rate        string
	GSTSlab     string
	GSTAmount   string
	Amount      string
}

type Provider interface {
	RenderInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

// NoOpProvider stands in when rendering is not wanted, e.g. handler
// tests. It returns an empty document, never a nil reader.
type NoOpProvider struct {
	Calls int
}

func (p *NoOpProvider) RenderInvoice(ctx context.Context, data InvoiceData) (io.Reader, error) {
	p.Calls++
	return bytes.NewReader(nil), nil
}

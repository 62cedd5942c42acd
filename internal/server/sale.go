package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/gstbooks/internal/export/pdf"
	"github.com/smallbiznis/gstbooks/internal/gst"
	"github.com/smallbiznis/gstbooks/internal/providers/email"
	saledomain "github.com/smallbiznis/gstbooks/internal/sale/domain"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
)

func (s *Server) CreateSale(c *gin.Context) {
	var req saledomain.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSales(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Kind          string `form:"kind"`
		Status        string `form:"status"`
		CustomerID    string `form:"customer_id"`
		InvoiceNumber string `form:"invoice_number"`
		DateFrom      string `form:"date_from"`
		DateTo        string `form:"date_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dateFrom, err := parseOptionalTime(query.DateFrom, false)
	if err != nil {
		AbortWithError(c, newValidationError("date_from", "invalid_date_from", "invalid date_from"))
		return
	}
	dateTo, err := parseOptionalTime(query.DateTo, true)
	if err != nil {
		AbortWithError(c, newValidationError("date_to", "invalid_date_to", "invalid date_to"))
		return
	}

	resp, err := s.saleSvc.List(c.Request.Context(), saledomain.ListSaleRequest{
		PageToken:     query.PageToken,
		PageSize:      int32(query.PageSize),
		Kind:          saledomain.SaleKind(strings.ToUpper(strings.TrimSpace(query.Kind))),
		Status:        saledomain.SaleStatus(strings.ToUpper(strings.TrimSpace(query.Status))),
		CustomerID:    strings.TrimSpace(query.CustomerID),
		InvoiceNumber: strings.TrimSpace(query.InvoiceNumber),
		DateFrom:      dateFrom,
		DateTo:        dateTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSale(c *gin.Context) {
	resp, err := s.saleSvc.GetByID(c.Request.Context(), saledomain.GetSaleRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSale(c *gin.Context) {
	var req saledomain.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.saleSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSale(c *gin.Context) {
	err := s.saleSvc.Delete(c.Request.Context(), saledomain.GetSaleRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) MarkSalePaid(c *gin.Context) {
	resp, err := s.saleSvc.MarkPaid(c.Request.Context(), saledomain.GetSaleRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadSalePDF(c *gin.Context) {
	sale, err := s.saleSvc.GetByID(c.Request.Context(), saledomain.GetSaleRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.pdfProvider.RenderInvoice(c.Request.Context(), s.invoiceData(sale))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", sale.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

type emailSaleRequest struct {
	To      []string `json:"to"`
	Message string   `json:"message"`
}

func (s *Server) EmailSale(c *gin.Context) {
	var req emailSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.To) == 0 {
		AbortWithError(c, newValidationError("to", "invalid_to", "at least one recipient required"))
		return
	}

	sale, err := s.saleSvc.GetByID(c.Request.Context(), saledomain.GetSaleRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.pdfProvider.RenderInvoice(c.Request.Context(), s.invoiceData(sale))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	subject := fmt.Sprintf("Invoice %s from %s", sale.InvoiceNumber, s.cfg.OrgName)
	body := req.Message
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("<p>Please find attached invoice %s for %s.</p>",
			sale.InvoiceNumber, sale.Total.StringFixed(2))
	}

	attachments := []email.Attachment{
		{
			Filename:    fmt.Sprintf("invoice-%s.pdf", sale.InvoiceNumber),
			ContentType: "application/pdf",
			Data:        data,
		},
	}
	err = s.emailProvider.SendWithAttachment(c.Request.Context(), req.To, subject, body, attachments)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"sent": true}})
}

func (s *Server) invoiceData(sale saledomain.Sale) pdf.InvoiceData {
	data := pdf.InvoiceData{
		OrgName:    s.cfg.OrgName,
		OrgAddress: s.cfg.OrgAddress,
		OrgGSTIN:   s.cfg.OrgGSTIN,
		OrgEmail:   s.cfg.OrgEmail,

		InvoiceNumber: sale.InvoiceNumber,
		InvoiceDate:   sale.InvoiceDate.Format("02 Jan 2006"),
		PlaceOfSupply: sale.PlaceOfSupply,

		BillToName:  sale.CustomerName,
		BillToGSTIN: sale.CustomerGSTIN,

		TaxableAmount: sale.TaxableAmount.StringFixed(2),
		CGST:          sale.CGST.StringFixed(2),
		SGST:          sale.SGST.StringFixed(2),
		IGST:          sale.IGST.StringFixed(2),
		InterState:    sale.SplitMode == gst.SplitModeInter,

		Total:        sale.Total.StringFixed(2),
		TotalInWords: pdf.AmountInWords(sale.Total),
	}

	if !sale.ShippingCharges.IsZero() {
		data.ShippingCharges = sale.ShippingCharges.StringFixed(2)
	}
	if !sale.Discount.IsZero() {
		data.Discount = sale.Discount.StringFixed(2)
	}
	if !sale.OtherAdjustments.IsZero() {
		data.OtherAdjustments = sale.OtherAdjustments.StringFixed(2)
	}
	if sale.PaymentMode == gst.PaymentModePartial {
		data.AdvanceAmount = sale.AdvanceAmount.StringFixed(2)
		data.BalanceDue = sale.BalanceDue.StringFixed(2)
	}

	for _, item := range sale.Items {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: item.Description,
			HSNCode:     item.HSNCode,
			Qty:         item.Quantity,
			Rate:        item.Rate.StringFixed(2),
			GSTSlab:     fmt.Sprintf("%d%%", item.GSTSlab),
			GSTAmount:   item.GSTAmount.StringFixed(2),
			Amount:      item.Total.StringFixed(2),
		})
	}

	return data
}

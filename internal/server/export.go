package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) ExportSalesRegister(c *gin.Context) {
	from, to, ok := s.exportRange(c)
	if !ok {
		return
	}

	buf, err := s.excelExporter.SalesRegister(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales-register.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) ExportPurchaseRegister(c *gin.Context) {
	from, to, ok := s.exportRange(c)
	if !ok {
		return
	}

	buf, err := s.excelExporter.PurchaseRegister(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="purchase-register.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// exportRange requires an explicit bounded range so a register download
// can never sweep the whole table.
func (s *Server) exportRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil || from == nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return time.Time{}, time.Time{}, false
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil || to == nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return time.Time{}, time.Time{}, false
	}
	if to.Before(*from) {
		AbortWithError(c, newValidationError("to", "invalid_range", "to precedes from"))
		return time.Time{}, time.Time{}, false
	}
	return *from, *to, true
}

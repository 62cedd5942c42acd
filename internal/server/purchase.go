package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	purchasedomain "github.com/smallbiznis/gstbooks/internal/purchase/domain"
	"github.com/smallbiznis/gstbooks/pkg/db/pagination"
)

func (s *Server) CreatePurchase(c *gin.Context) {
	var req purchasedomain.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.purchaseSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPurchases(c *gin.Context) {
	var query struct {
		pagination.Pagination
		SupplierName string `form:"supplier_name"`
		Category     string `form:"category"`
		DateFrom     string `form:"date_from"`
		DateTo       string `form:"date_to"`
		SortBy       string `form:"sort_by"`
		OrderBy      string `form:"order_by"`
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

	resp, err := s.purchaseSvc.List(c.Request.Context(), purchasedomain.ListPurchaseRequest{
		PageToken:    query.PageToken,
		PageSize:     int32(query.PageSize),
		SupplierName: strings.TrimSpace(query.SupplierName),
		Category:     strings.TrimSpace(query.Category),
		DateFrom:     dateFrom,
		DateTo:       dateTo,
		SortBy:       query.SortBy,
		OrderBy:      query.OrderBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPurchase(c *gin.Context) {
	resp, err := s.purchaseSvc.GetByID(c.Request.Context(), purchasedomain.GetPurchaseRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePurchase(c *gin.Context) {
	var req purchasedomain.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.purchaseSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePurchase(c *gin.Context) {
	err := s.purchaseSvc.Delete(c.Request.Context(), purchasedomain.GetPurchaseRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

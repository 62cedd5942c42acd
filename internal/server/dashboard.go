package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	dashboarddomain "github.com/smallbiznis/gstbooks/internal/dashboard/domain"
)

func (s *Server) DashboardSummary(c *gin.Context) {
	from, to, ok := s.dashboardRange(c)
	if !ok {
		return
	}

	resp, err := s.dashboardSvc.Summary(c.Request.Context(), dashboarddomain.SummaryRequest{
		From: from,
		To:   to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DashboardMonthly(c *gin.Context) {
	from, to, ok := s.dashboardRange(c)
	if !ok {
		return
	}

	resp, err := s.dashboardSvc.Monthly(c.Request.Context(), dashboarddomain.MonthlyRequest{
		From: from,
		To:   to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) dashboardRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return time.Time{}, time.Time{}, false
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return time.Time{}, time.Time{}, false
	}

	var fromValue, toValue time.Time
	if from != nil {
		fromValue = *from
	}
	if to != nil {
		toValue = *to
	}
	return fromValue, toValue, true
}

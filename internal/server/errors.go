package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/gstbooks/internal/customer/domain"
	dashboarddomain "github.com/smallbiznis/gstbooks/internal/dashboard/domain"
	"github.com/smallbiznis/gstbooks/internal/export/excel"
	itemdomain "github.com/smallbiznis/gstbooks/internal/item/domain"
	purchasedomain "github.com/smallbiznis/gstbooks/internal/purchase/domain"
	saledomain "github.com/smallbiznis/gstbooks/internal/sale/domain"
	taxpaiddomain "github.com/smallbiznis/gstbooks/internal/taxpaid/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, customerdomain.ErrInvalidOrganization),
		errors.Is(err, itemdomain.ErrInvalidOrganization),
		errors.Is(err, saledomain.ErrInvalidOrganization),
		errors.Is(err, purchasedomain.ErrInvalidOrganization),
		errors.Is(err, taxpaiddomain.ErrInvalidOrganization),
		errors.Is(err, dashboarddomain.ErrInvalidOrganization),
		errors.Is(err, excel.ErrInvalidOrganization):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, saledomain.ErrDuplicateInvoiceNumber),
		errors.Is(err, saledomain.ErrAlreadyPaid):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isUnprocessableError(err):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "reconciliation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isCustomerValidationError(err),
		isItemValidationError(err),
		isSaleValidationError(err),
		isPurchaseValidationError(err),
		isTaxPaidValidationError(err),
		errors.Is(err, dashboarddomain.ErrInvalidDateRange):
		return true
	default:
		return false
	}
}

func isCustomerValidationError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidGSTIN),
		errors.Is(err, customerdomain.ErrInvalidPlaceOfSupply),
		errors.Is(err, customerdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isItemValidationError(err error) bool {
	switch {
	case errors.Is(err, itemdomain.ErrInvalidName),
		errors.Is(err, itemdomain.ErrInvalidType),
		errors.Is(err, itemdomain.ErrInvalidRate),
		errors.Is(err, itemdomain.ErrInvalidGSTSlab),
		errors.Is(err, itemdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isSaleValidationError(err error) bool {
	switch {
	case errors.Is(err, saledomain.ErrInvalidKind),
		errors.Is(err, saledomain.ErrInvalidInvoiceNumber),
		errors.Is(err, saledomain.ErrInvalidInvoiceDate),
		errors.Is(err, saledomain.ErrInvalidCustomer),
		errors.Is(err, saledomain.ErrInvalidPaymentMode),
		errors.Is(err, saledomain.ErrEmptyItems),
		errors.Is(err, saledomain.ErrInvalidQuantity),
		errors.Is(err, saledomain.ErrInvalidGSTSlab),
		errors.Is(err, saledomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isPurchaseValidationError(err error) bool {
	switch {
	case errors.Is(err, purchasedomain.ErrInvalidSupplier),
		errors.Is(err, purchasedomain.ErrInvalidBillNumber),
		errors.Is(err, purchasedomain.ErrInvalidBillDate),
		errors.Is(err, purchasedomain.ErrInvalidAmount),
		errors.Is(err, purchasedomain.ErrInvalidPaymentMode),
		errors.Is(err, purchasedomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isTaxPaidValidationError(err error) bool {
	switch {
	case errors.Is(err, taxpaiddomain.ErrInvalidPeriod),
		errors.Is(err, taxpaiddomain.ErrInvalidChallanNumber),
		errors.Is(err, taxpaiddomain.ErrInvalidPaidOn),
		errors.Is(err, taxpaiddomain.ErrInvalidAmount):
		return true
	default:
		return false
	}
}

// Reconciliation failures are not client-side validation: the request is
// well-formed but its figures do not survive the server-side recompute.
func isUnprocessableError(err error) bool {
	switch {
	case errors.Is(err, saledomain.ErrLineMismatch),
		errors.Is(err, saledomain.ErrTotalsMismatch):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, itemdomain.ErrNotFound),
		errors.Is(err, saledomain.ErrNotFound),
		errors.Is(err, purchasedomain.ErrNotFound),
		errors.Is(err, taxpaiddomain.ErrTaxPaymentNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}

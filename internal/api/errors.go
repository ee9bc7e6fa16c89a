package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// StandardError is the body of every non-2xx response.
type StandardError struct {
	Code     string            `json:"error"`
	Message  string            `json:"message"`
	Details  string            `json:"details,omitempty"`
	Problems []problemResponse `json:"problems,omitempty"`
}

type problemResponse struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Reason    string `json:"reason"`
}

func NewStandardError(code, message, details string) *StandardError {
	return &StandardError{Code: code, Message: message, Details: details}
}

func problemsFrom(rejected *domain.OrderRejectedError) []problemResponse {
	out := make([]problemResponse, 0, len(rejected.Problems))
	for _, p := range rejected.Problems {
		reason := "InsufficientStock"
		if errors.Is(p.Reason, domain.ErrProductNotFound) {
			reason = "ProductNotFound"
		}
		out = append(out, problemResponse{
			ProductID: p.Key.ProductID,
			Size:      p.Key.Size,
			Color:     p.Key.Color,
			Requested: p.Requested,
			Available: p.Available,
			Reason:    reason,
		})
	}
	return out
}

// mapError translates an application error to a status code and body.
func mapError(err error) (int, *StandardError) {
	var rejected *domain.OrderRejectedError
	if errors.As(err, &rejected) {
		status, code := http.StatusConflict, "InsufficientStock"
		if len(rejected.Shortfalls()) == 0 {
			status, code = http.StatusNotFound, "ProductNotFound"
		}
		body := NewStandardError(code, "order cannot be fulfilled", rejected.Error())
		body.Problems = problemsFrom(rejected)
		return status, body
	}

	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return http.StatusBadRequest, NewStandardError("EmptyOrder", "order has no lines", "")
	case errors.Is(err, domain.ErrInvalidSale):
		return http.StatusBadRequest, NewStandardError("InvalidSale", "invalid sale", err.Error())
	case errors.Is(err, domain.ErrInvalidVariant):
		return http.StatusBadRequest, NewStandardError("InvalidVariant", "invalid variant", err.Error())
	case errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusBadRequest, NewStandardError("InvalidProduct", "invalid product", err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, NewStandardError("ProductNotFound", "product not found", err.Error())
	case errors.Is(err, domain.ErrSaleNotFound):
		return http.StatusNotFound, NewStandardError("SaleNotFound", "sale not found", err.Error())
	case errors.Is(err, domain.ErrProductExists):
		return http.StatusConflict, NewStandardError("ProductExists", "product already exists", err.Error())
	case errors.Is(err, domain.ErrLockedProduct):
		return http.StatusLocked, NewStandardError("LockedProduct", "product has sales and cannot be changed", err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, NewStandardError("StorageUnavailable", "storage unavailable", "")
	default:
		return http.StatusInternalServerError, NewStandardError("InternalError", "internal error", "")
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func (s *Server) badRequest(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, NewStandardError("InvalidRequest", message, details))
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/application"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// POST /api/checkout
func (s *Server) handleCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid checkout body", err)
		return
	}
	sale, err := s.svc.Checkout.Checkout(c.Request.Context(), req.saleLines(), application.CheckoutMetadata{
		Customer: req.Customer,
		Total:    req.Total,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSaleResponse(sale))
}

// GET /api/sales
func (s *Server) handleListSales(c *gin.Context) {
	sales, err := s.svc.Sales.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	resp := make([]saleResponse, 0, len(sales))
	for _, sale := range sales {
		resp = append(resp, toSaleResponse(sale))
	}
	c.JSON(http.StatusOK, resp)
}

func saleIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewStandardError("InvalidRequest", "sale id is invalid", err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

// GET /api/sales/:id
func (s *Server) handleGetSale(c *gin.Context) {
	id, ok := saleIDParam(c)
	if !ok {
		return
	}
	sale, err := s.svc.Sales.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSaleResponse(sale))
}

// DELETE /api/sales/:id
func (s *Server) handleDeleteSale(c *gin.Context) {
	id, ok := saleIDParam(c)
	if !ok {
		return
	}
	removed, err := s.svc.Sales.Remove(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if !removed {
		s.writeError(c, domain.ErrSaleNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

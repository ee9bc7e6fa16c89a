package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

func (s *Server) productResponse(c *gin.Context, p *domain.Product) (productResponse, bool) {
	locked, err := s.svc.Resolver.IsLocked(c.Request.Context(), p.ID)
	if err != nil {
		s.writeError(c, err)
		return productResponse{}, false
	}
	return toProductResponse(p, locked), true
}

// GET /api/products
func (s *Server) handleListProducts(c *gin.Context) {
	products, err := s.svc.Admin.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		pr, ok := s.productResponse(c, p)
		if !ok {
			return
		}
		resp = append(resp, pr)
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/products/:id
func (s *Server) handleGetProduct(c *gin.Context) {
	p, err := s.svc.Admin.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if resp, ok := s.productResponse(c, p); ok {
		c.JSON(http.StatusOK, resp)
	}
}

// POST /api/products
func (s *Server) handleCreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid product body", err)
		return
	}
	p, err := s.svc.Admin.Create(c.Request.Context(), req.toDomain(req.ID))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(p, false))
}

// PUT /api/products/:id
func (s *Server) handleUpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid product body", err)
		return
	}
	p, err := s.svc.Admin.Update(c.Request.Context(), req.toDomain(c.Param("id")))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p, false))
}

// DELETE /api/products/:id
func (s *Server) handleDeleteProduct(c *gin.Context) {
	if err := s.svc.Admin.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/products/:id/variants
func (s *Server) handleSetVariants(c *gin.Context) {
	var req variantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid variants body", err)
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := s.svc.Admin.SetVariants(ctx, id, req.Variants); err != nil {
		s.writeError(c, err)
		return
	}
	p, err := s.svc.Admin.Get(ctx, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p, false))
}

// POST /api/products/:id/clone
func (s *Server) handleCloneProduct(c *gin.Context) {
	var req cloneRequest
	// el body es opcional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		s.badRequest(c, "invalid clone body", err)
		return
	}
	clone, err := s.svc.Admin.Clone(c.Request.Context(), c.Param("id"), req.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info("product cloned via api",
		zap.String("source_id", c.Param("id")),
		zap.String("product_id", clone.ID))
	c.JSON(http.StatusCreated, toProductResponse(clone, false))
}

// GET /api/products/:id/availability[?size=&color=]
//
// Without query parameters the full snapshot is returned. With size and/or color the
// remaining count for that variant, size or color is returned; an empty value means
// "none".
func (s *Server) handleAvailability(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	size, hasSize := c.GetQuery("size")
	color, hasColor := c.GetQuery("color")
	if !hasSize && !hasColor {
		snap, err := s.svc.Resolver.Snapshot(ctx, id)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
		return
	}

	if _, err := s.svc.Admin.Get(ctx, id); err != nil {
		s.writeError(c, err)
		return
	}

	var (
		n   int
		err error
	)
	resp := remainingResponse{ProductID: id}
	switch {
	case hasSize && hasColor:
		n, err = s.svc.Resolver.RemainingForVariant(ctx, id, size, color)
		resp.Size, resp.Color = &size, &color
	case hasColor:
		n, err = s.svc.Resolver.RemainingForColor(ctx, id, color)
		resp.Color = &color
	default:
		n, err = s.svc.Resolver.RemainingForSize(ctx, id, size)
		resp.Size = &size
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	resp.Remaining = n
	c.JSON(http.StatusOK, resp)
}

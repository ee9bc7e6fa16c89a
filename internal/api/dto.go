package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

type productRequest struct {
	ID          string           `json:"id"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Sizes       []string         `json:"sizes"`
	Colors      []domain.Color   `json:"colors"`
	Stock       int              `json:"stock"`
	Variants    []domain.Variant `json:"variants"`
}

func (r productRequest) toDomain(id string) *domain.Product {
	p := domain.NewProduct(id, r.Name, r.Price, r.Stock)
	p.Description = r.Description
	p.Category = r.Category
	p.Sizes = r.Sizes
	p.Colors = r.Colors
	p.Variants = r.Variants
	return p
}

type variantsRequest struct {
	Variants []domain.Variant `json:"variants"`
}

type cloneRequest struct {
	ID string `json:"id"`
}

type productResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Category     string           `json:"category,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	Sizes        []string         `json:"sizes"`
	Colors       []domain.Color   `json:"colors"`
	Stock        int              `json:"stock"`
	Variants     []domain.Variant `json:"variants"`
	Locked       bool             `json:"locked"`
	LockedAtUtc  *time.Time       `json:"lockedAtUtc,omitempty"`
	CreatedAtUtc time.Time        `json:"createdAtUtc"`
	UpdatedAtUtc time.Time        `json:"updatedAtUtc"`
}

func toProductResponse(p *domain.Product, locked bool) productResponse {
	resp := productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		Sizes:        p.Sizes,
		Colors:       p.Colors,
		Stock:        p.Stock,
		Variants:     p.Variants,
		Locked:       locked,
		LockedAtUtc:  p.LockedAtUtc,
		CreatedAtUtc: p.CreatedAtUtc,
		UpdatedAtUtc: p.UpdatedAtUtc,
	}
	if resp.Sizes == nil {
		resp.Sizes = []string{}
	}
	if resp.Colors == nil {
		resp.Colors = []domain.Color{}
	}
	if resp.Variants == nil {
		resp.Variants = []domain.Variant{}
	}
	return resp
}

type remainingResponse struct {
	ProductID string  `json:"productId"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
	Remaining int     `json:"remaining"`
}

type checkoutLineRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	Lines    []checkoutLineRequest `json:"lines"`
	Customer domain.Customer       `json:"customer"`
	Total    decimal.Decimal       `json:"total"`
}

func (r checkoutRequest) saleLines() []domain.SaleLine {
	lines := make([]domain.SaleLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, domain.SaleLine{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
		})
	}
	return lines
}

type saleLineResponse struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

type saleResponse struct {
	ID           uuid.UUID          `json:"id"`
	CreatedAtUtc string             `json:"createdAtUtc"`
	Lines        []saleLineResponse `json:"lines"`
	Total        decimal.Decimal    `json:"total"`
	Customer     domain.Customer    `json:"customer"`
}

func toSaleResponse(s *domain.Sale) saleResponse {
	lines := make([]saleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, saleLineResponse{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
		})
	}
	return saleResponse{
		ID:           s.ID,
		CreatedAtUtc: s.CreatedAtUtc.UTC().Format(time.RFC3339),
		Lines:        lines,
		Total:        s.Total,
		Customer:     s.Customer,
	}
}

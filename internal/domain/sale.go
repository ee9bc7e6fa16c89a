package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type SaleLine struct {
	ProductID string
	Size      string
	Color     string
	Quantity  int
}

func (l SaleLine) Key() VariantKey {
	return NewVariantKey(l.ProductID, l.Size, l.Color)
}

type Sale struct {
	ID           uuid.UUID
	CreatedAtUtc time.Time
	Lines        []SaleLine
	Total        decimal.Decimal
	Customer     Customer
}

func NewSale(lines []SaleLine, total decimal.Decimal, customer Customer) *Sale {
	return &Sale{
		ID:           uuid.New(),
		CreatedAtUtc: time.Now().UTC(),
		Lines:        normalizeLines(lines),
		Total:        total,
		Customer:     customer,
	}
}

func normalizeLines(lines []SaleLine) []SaleLine {
	out := make([]SaleLine, 0, len(lines))
	for _, l := range lines {
		k := l.Key()
		out = append(out, SaleLine{
			ProductID: k.ProductID,
			Size:      k.Size,
			Color:     k.Color,
			Quantity:  l.Quantity,
		})
	}
	return out
}

// Validate rechaza ventas sin lineas o con cantidades no positivas.
func (s *Sale) Validate() error {
	if len(s.Lines) == 0 {
		return NewInvalidSaleError("sale has no lines")
	}
	for i, l := range s.Lines {
		if l.Key().ProductID == "" {
			return NewInvalidSaleError(fmt.Sprintf("line %d has no product id", i))
		}
		if l.Quantity <= 0 {
			return NewInvalidSaleError(fmt.Sprintf("line %d has non-positive quantity %d", i, l.Quantity))
		}
	}
	if s.Total.IsNegative() {
		return NewInvalidSaleError("total cannot be negative")
	}
	return nil
}

// PrepareForAppend assigns id/timestamp when absent and normalizes the line labels.
func (s *Sale) PrepareForAppend() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAtUtc.IsZero() {
		s.CreatedAtUtc = time.Now().UTC()
	}
	s.Lines = normalizeLines(s.Lines)
}

// ProductIDs returns the distinct product ids in first-appearance order.
func (s *Sale) ProductIDs() []string {
	seen := make(map[string]struct{}, len(s.Lines))
	ids := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

// Clone returns a deep copy so stores never hand out their own slices.
func (s *Sale) Clone() *Sale {
	c := *s
	c.Lines = append([]SaleLine(nil), s.Lines...)
	return &c
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Color struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// VariantKey identifica una combinacion vendible. Size/Color vacios = "sin talla"/"sin color".
type VariantKey struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

func NewVariantKey(productID, size, color string) VariantKey {
	return VariantKey{
		ProductID: strings.TrimSpace(productID),
		Size:      NormalizeLabel(size),
		Color:     NormalizeLabel(color),
	}
}

// NormalizeLabel is the single normalization applied to size and color labels.
func NormalizeLabel(label string) string {
	return strings.TrimSpace(label)
}

type Variant struct {
	Size          string `json:"size,omitempty"`
	Color         string `json:"color,omitempty"`
	DeclaredStock int    `json:"declaredStock"`
}

func (v Variant) Key(productID string) VariantKey {
	return NewVariantKey(productID, v.Size, v.Color)
}

func (v Variant) normalized() Variant {
	v.Size = NormalizeLabel(v.Size)
	v.Color = NormalizeLabel(v.Color)
	return v
}

// ValidateVariants normalizes the labels and rejects negative stock or duplicated keys.
func ValidateVariants(productID string, variants []Variant) ([]Variant, error) {
	out := make([]Variant, 0, len(variants))
	seen := make(map[VariantKey]struct{}, len(variants))
	for _, v := range variants {
		v = v.normalized()
		if v.DeclaredStock < 0 {
			return nil, NewInvalidVariantError(v.Key(productID), "declared stock cannot be negative")
		}
		key := v.Key(productID)
		if _, dup := seen[key]; dup {
			return nil, NewInvalidVariantError(key, "duplicated size/color combination")
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

type Product struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Price        decimal.Decimal
	Sizes        []string
	Colors       []Color
	Stock        int
	Variants     []Variant
	LockedAtUtc  *time.Time
	CreatedAtUtc time.Time
	UpdatedAtUtc time.Time
}

func NewProduct(id, name string, price decimal.Decimal, stock int) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:           strings.TrimSpace(id),
		Name:         name,
		Price:        price,
		Stock:        stock,
		CreatedAtUtc: now,
		UpdatedAtUtc: now,
	}
}

// Validate checks the product fields that are not part of the variant matrix.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return NewInvalidProductError("product id is required")
	}
	if p.Price.IsNegative() {
		return NewInvalidProductError("price cannot be negative")
	}
	if p.Stock < 0 {
		return NewInvalidVariantError(NewVariantKey(p.ID, "", ""), "flat stock cannot be negative")
	}
	return nil
}

// HasDeclaredVariants reports whether the product carries an explicit size/color matrix.
func (p *Product) HasDeclaredVariants() bool {
	return len(p.Variants) > 0
}

// EffectiveVariants returns the declared variants, or the implicit (none, none) variant
// holding the flat stock when the product declares none.
func (p *Product) EffectiveVariants() []Variant {
	if !p.HasDeclaredVariants() {
		return []Variant{{DeclaredStock: p.Stock}}
	}
	out := make([]Variant, len(p.Variants))
	copy(out, p.Variants)
	return out
}

// DeclaredStock does an exact lookup over the effective variants; 0 when never declared.
func (p *Product) DeclaredStock(size, color string) int {
	size, color = NormalizeLabel(size), NormalizeLabel(color)
	for _, v := range p.EffectiveVariants() {
		if v.Size == size && v.Color == color {
			return v.DeclaredStock
		}
	}
	return 0
}

func (p *Product) IsMarkedLocked() bool {
	return p.LockedAtUtc != nil
}

func (p *Product) MarkLocked(at time.Time) {
	if p.LockedAtUtc != nil {
		return
	}
	t := at.UTC()
	p.LockedAtUtc = &t
}

// CloneAs copies the product under a new id. The clone keeps the variant matrix and
// starts unlocked.
func (p *Product) CloneAs(newID string) *Product {
	now := time.Now().UTC()
	clone := &Product{
		ID:           strings.TrimSpace(newID),
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		Stock:        p.Stock,
		LockedAtUtc:  nil,
		CreatedAtUtc: now,
		UpdatedAtUtc: now,
	}
	clone.Sizes = append([]string(nil), p.Sizes...)
	clone.Colors = append([]Color(nil), p.Colors...)
	clone.Variants = append([]Variant(nil), p.Variants...)
	return clone
}

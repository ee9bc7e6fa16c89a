package application

import (
	"context"
	"time"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// Catalog implements domain.VariantCatalog on top of the product repository.
type Catalog struct {
	products domain.ProductRepository
}

func NewCatalog(products domain.ProductRepository) *Catalog {
	return &Catalog{products: products}
}

// GetVariants returns the declared variants, the implicit flat-stock variant when none
// are declared, or an empty slice for an unknown product.
func (c *Catalog) GetVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	p, err := c.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return []domain.Variant{}, nil
	}
	return p.EffectiveVariants(), nil
}

// SetVariants replaces the whole variant matrix. Lock rules are enforced by the admin
// service, not here.
func (c *Catalog) SetVariants(ctx context.Context, productID string, variants []domain.Variant) error {
	validated, err := domain.ValidateVariants(productID, variants)
	if err != nil {
		return err
	}
	p, err := c.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewProductNotFoundError(productID)
	}
	p.Variants = validated
	p.UpdatedAtUtc = time.Now().UTC()
	return c.products.Save(ctx, p)
}

func (c *Catalog) GetDeclaredStock(ctx context.Context, productID, size, color string) (int, error) {
	p, err := c.products.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, nil
	}
	return p.DeclaredStock(size, color), nil
}

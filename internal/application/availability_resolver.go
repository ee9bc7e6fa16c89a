package application

import (
	"context"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// AvailabilityResolver computes remaining stock as max(0, declared - sold) from the
// current catalog and ledger on every call. It holds no state of its own.
type AvailabilityResolver struct {
	catalog  domain.VariantCatalog
	products domain.ProductRepository
	ledger   domain.SalesLedger
}

func NewAvailabilityResolver(
	catalog domain.VariantCatalog,
	products domain.ProductRepository,
	ledger domain.SalesLedger,
) *AvailabilityResolver {
	return &AvailabilityResolver{
		catalog:  catalog,
		products: products,
		ledger:   ledger,
	}
}

func remaining(declared, sold int) int {
	if sold >= declared {
		return 0
	}
	return declared - sold
}

// isFlat reports whether the variant set is the single (none, none) variant, which is
// how a product without an explicit matrix is exposed.
func isFlat(variants []domain.Variant) bool {
	return len(variants) == 1 && variants[0].Size == "" && variants[0].Color == ""
}

func (r *AvailabilityResolver) RemainingForVariant(ctx context.Context, productID, size, color string) (int, error) {
	declared, err := r.catalog.GetDeclaredStock(ctx, productID, size, color)
	if err != nil {
		return 0, err
	}
	sold, err := r.ledger.SoldQuantity(ctx, domain.NewVariantKey(productID, size, color))
	if err != nil {
		return 0, err
	}
	return remaining(declared, sold), nil
}

func (r *AvailabilityResolver) RemainingForColor(ctx context.Context, productID, color string) (int, error) {
	color = domain.NormalizeLabel(color)
	return r.sumWhere(ctx, productID, func(v domain.Variant) bool { return v.Color == color })
}

func (r *AvailabilityResolver) RemainingForSize(ctx context.Context, productID, size string) (int, error) {
	size = domain.NormalizeLabel(size)
	return r.sumWhere(ctx, productID, func(v domain.Variant) bool { return v.Size == size })
}

func (r *AvailabilityResolver) RemainingForProduct(ctx context.Context, productID string) (int, error) {
	return r.sumWhere(ctx, productID, func(domain.Variant) bool { return true })
}

// sumWhere adds the remaining stock of the matching variants. A flat product matches
// any filter, so color/size queries fall back to its flat remaining stock.
func (r *AvailabilityResolver) sumWhere(ctx context.Context, productID string, match func(domain.Variant) bool) (int, error) {
	variants, err := r.catalog.GetVariants(ctx, productID)
	if err != nil {
		return 0, err
	}
	if len(variants) == 0 {
		return 0, nil
	}
	sold, err := r.ledger.SoldByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}

	flat := isFlat(variants)
	total := 0
	for _, v := range variants {
		if !flat && !match(v) {
			continue
		}
		total += remaining(v.DeclaredStock, sold[v.Key(productID)])
	}
	return total, nil
}

// IsLocked is true once any sale references the product, and stays true after that
// sale is removed because the product carries a lock marker.
func (r *AvailabilityResolver) IsLocked(ctx context.Context, productID string) (bool, error) {
	p, err := r.products.Get(ctx, productID)
	if err != nil {
		return false, err
	}
	if p != nil && p.IsMarkedLocked() {
		return true, nil
	}
	return r.ledger.HasSales(ctx, productID)
}

type VariantAvailability struct {
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Declared  int    `json:"declared"`
	Sold      int    `json:"sold"`
	Remaining int    `json:"remaining"`
}

type ProductAvailability struct {
	ProductID string                `json:"productId"`
	Total     int                   `json:"total"`
	Locked    bool                  `json:"locked"`
	Variants  []VariantAvailability `json:"variants"`
	ByColor   map[string]int        `json:"byColor"`
	BySize    map[string]int        `json:"bySize"`
}

// Snapshot builds the full storefront view of one product from a single read of the
// catalog and the ledger.
func (r *AvailabilityResolver) Snapshot(ctx context.Context, productID string) (*ProductAvailability, error) {
	p, err := r.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewProductNotFoundError(productID)
	}
	sold, err := r.ledger.SoldByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	locked := p.IsMarkedLocked()
	if !locked {
		for _, q := range sold {
			if q > 0 {
				locked = true
				break
			}
		}
	}

	out := &ProductAvailability{
		ProductID: productID,
		Locked:    locked,
		ByColor:   map[string]int{},
		BySize:    map[string]int{},
	}
	for _, v := range p.EffectiveVariants() {
		s := sold[v.Key(productID)]
		rem := remaining(v.DeclaredStock, s)
		out.Variants = append(out.Variants, VariantAvailability{
			Size:      v.Size,
			Color:     v.Color,
			Declared:  v.DeclaredStock,
			Sold:      s,
			Remaining: rem,
		})
		out.Total += rem
		if v.Color != "" {
			out.ByColor[v.Color] += rem
		}
		if v.Size != "" {
			out.BySize[v.Size] += rem
		}
	}
	return out, nil
}

package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

func TestRemaining_NeverNegative(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "hoodie", 0, hoodieBlackM(2))

	// administrative override: the ledger accepts anything the validator would reject
	_, err := f.ledger.Append(ctx, domain.NewSale([]domain.SaleLine{line("hoodie", "M", "black", 5)}, decimal.Zero, domain.Customer{}))
	require.NoError(t, err)

	assert.Equal(t, 0, f.remaining(t, "hoodie", "M", "black"))
	n, err := f.resolver.RemainingForProduct(ctx, "hoodie")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRemaining_UndeclaredCombinationIsZero(t *testing.T) {
	f := newFixture()
	f.seed(t, "hoodie", 0, hoodieBlackM(2))

	assert.Equal(t, 0, f.remaining(t, "hoodie", "XL", "black"))
	assert.Equal(t, 0, f.remaining(t, "hoodie", "M", ""))
	assert.Equal(t, 0, f.remaining(t, "missing", "", ""))
}

func TestRemaining_ByColorAndSize(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "tee", 0,
		domain.Variant{Size: "S", Color: "white", DeclaredStock: 3},
		domain.Variant{Size: "M", Color: "white", DeclaredStock: 4},
		domain.Variant{Size: "M", Color: "red", DeclaredStock: 5},
	)
	_, err := f.checkout.Checkout(ctx, []domain.SaleLine{line("tee", "M", "white", 1)}, CheckoutMetadata{})
	require.NoError(t, err)

	white, err := f.resolver.RemainingForColor(ctx, "tee", "white")
	require.NoError(t, err)
	assert.Equal(t, 6, white)

	m, err := f.resolver.RemainingForSize(ctx, "tee", " M ")
	require.NoError(t, err)
	assert.Equal(t, 8, m)

	total, err := f.resolver.RemainingForProduct(ctx, "tee")
	require.NoError(t, err)
	assert.Equal(t, 11, total)

	none, err := f.resolver.RemainingForColor(ctx, "tee", "blue")
	require.NoError(t, err)
	assert.Equal(t, 0, none)
}

func TestRemaining_FlatProductMatchesExplicitNoneVariant(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "flat", 6)
	f.seed(t, "explicit", 0, domain.Variant{DeclaredStock: 6})

	for _, id := range []string{"flat", "explicit"} {
		_, err := f.checkout.Checkout(ctx, []domain.SaleLine{line(id, "", "", 2)}, CheckoutMetadata{})
		require.NoError(t, err)

		assert.Equal(t, 4, f.remaining(t, id, "", ""), id)
		byColor, err := f.resolver.RemainingForColor(ctx, id, "black")
		require.NoError(t, err)
		assert.Equal(t, 4, byColor, id)
		bySize, err := f.resolver.RemainingForSize(ctx, id, "M")
		require.NoError(t, err)
		assert.Equal(t, 4, bySize, id)
		total, err := f.resolver.RemainingForProduct(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 4, total, id)
	}
}

func TestRemaining_IdempotentReads(t *testing.T) {
	f := newFixture()
	f.seed(t, "hoodie", 0, hoodieBlackM(9))
	_, err := f.checkout.Checkout(context.Background(), []domain.SaleLine{line("hoodie", "M", "black", 4)}, CheckoutMetadata{})
	require.NoError(t, err)

	first := f.remaining(t, "hoodie", "M", "black")
	second := f.remaining(t, "hoodie", "M", "black")
	assert.Equal(t, first, second)
	assert.Equal(t, 5, first)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "tee", 0,
		domain.Variant{Size: "S", Color: "white", DeclaredStock: 3},
		domain.Variant{Size: "M", Color: "red", DeclaredStock: 5},
	)
	_, err := f.checkout.Checkout(ctx, []domain.SaleLine{line("tee", "M", "red", 2)}, CheckoutMetadata{})
	require.NoError(t, err)

	snap, err := f.resolver.Snapshot(ctx, "tee")
	require.NoError(t, err)
	assert.True(t, snap.Locked)
	assert.Equal(t, 6, snap.Total)
	assert.Equal(t, map[string]int{"white": 3, "red": 3}, snap.ByColor)
	assert.Equal(t, map[string]int{"S": 3, "M": 3}, snap.BySize)
	require.Len(t, snap.Variants, 2)
	assert.Equal(t, VariantAvailability{Size: "M", Color: "red", Declared: 5, Sold: 2, Remaining: 3}, snap.Variants[1])

	_, err = f.resolver.Snapshot(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalog_GetVariants(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, "cap", 5)

	vs, err := f.catalog.GetVariants(ctx, "cap")
	require.NoError(t, err)
	assert.Equal(t, []domain.Variant{{DeclaredStock: 5}}, vs)

	vs, err = f.catalog.GetVariants(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, vs)

	err = f.catalog.SetVariants(ctx, "cap", []domain.Variant{{Size: "S", DeclaredStock: 1}, {Size: "S", DeclaredStock: 2}})
	assert.ErrorIs(t, err, domain.ErrInvalidVariant)
	err = f.catalog.SetVariants(ctx, "cap", []domain.Variant{{Size: "S", DeclaredStock: -1}})
	assert.ErrorIs(t, err, domain.ErrInvalidVariant)
}

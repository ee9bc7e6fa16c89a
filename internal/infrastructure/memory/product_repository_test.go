package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

func TestProductRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepository()
	p := domain.NewProduct("deck", "Deck", decimal.NewFromInt(60), 4)
	p.Variants = []domain.Variant{{Size: "8.0", DeclaredStock: 4}}

	require.NoError(t, r.Save(ctx, p))

	got, err := r.Get(ctx, "deck")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Variants, got.Variants)

	got.Variants[0].DeclaredStock = 0
	again, _ := r.Get(ctx, "deck")
	assert.Equal(t, 4, again.Variants[0].DeclaredStock)

	missing, err := r.Get(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	deleted, _ := r.Delete(ctx, "deck")
	assert.True(t, deleted)
	deleted, _ = r.Delete(ctx, "deck")
	assert.False(t, deleted)
}

func TestProductRepository_MarkLocked(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepository()
	require.NoError(t, r.Save(ctx, domain.NewProduct("a", "A", decimal.Zero, 1)))

	require.NoError(t, r.MarkLocked(ctx, []string{"a", "ghost"}, time.Now()))

	got, _ := r.Get(ctx, "a")
	assert.True(t, got.IsMarkedLocked())
}

func TestProductRepository_ListSortedAndGetMany(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepository()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, r.Save(ctx, domain.NewProduct(id, id, decimal.Zero, 0)))
	}

	all, _ := r.List(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)

	many, _ := r.GetMany(ctx, []string{"a", "zz"})
	assert.Len(t, many, 1)
}

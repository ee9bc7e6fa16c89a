package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVariants_NormalizesLabels(t *testing.T) {
	vs, err := ValidateVariants("hoodie-black", []Variant{
		{Size: " M ", Color: "black ", DeclaredStock: 10},
		{Size: "L", Color: "black", DeclaredStock: 0},
	})

	require.NoError(t, err)
	assert.Equal(t, "M", vs[0].Size)
	assert.Equal(t, "black", vs[0].Color)
	assert.Len(t, vs, 2)
}

func TestValidateVariants_RejectsNegativeStock(t *testing.T) {
	_, err := ValidateVariants("hoodie-black", []Variant{{Size: "M", DeclaredStock: -1}})

	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestValidateVariants_RejectsDuplicatedKey(t *testing.T) {
	_, err := ValidateVariants("hoodie-black", []Variant{
		{Size: "M", Color: "black", DeclaredStock: 1},
		{Size: "M ", Color: " black", DeclaredStock: 2},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidVariant))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "M", ve.Key.Size)
}

func TestEffectiveVariants_ImplicitWhenNoneDeclared(t *testing.T) {
	p := NewProduct("cap-classic", "Cap", decimal.NewFromInt(20), 5)

	vs := p.EffectiveVariants()

	require.Len(t, vs, 1)
	assert.Equal(t, Variant{DeclaredStock: 5}, vs[0])
	assert.Equal(t, 5, p.DeclaredStock("", ""))
	assert.Equal(t, 0, p.DeclaredStock("M", ""))
}

func TestDeclaredStock_ExactMatch(t *testing.T) {
	p := NewProduct("hoodie-black", "Hoodie", decimal.NewFromInt(50), 99)
	p.Variants = []Variant{{Size: "M", Color: "black", DeclaredStock: 10}}

	assert.Equal(t, 10, p.DeclaredStock("M", "black"))
	assert.Equal(t, 10, p.DeclaredStock(" M", "black "))
	assert.Equal(t, 0, p.DeclaredStock("M", ""))
	assert.Equal(t, 0, p.DeclaredStock("", ""))
}

func TestProductValidate(t *testing.T) {
	p := NewProduct("", "Nameless", decimal.NewFromInt(1), 0)
	assert.ErrorIs(t, p.Validate(), ErrInvalidProduct)

	p = NewProduct("deck", "Deck", decimal.NewFromInt(-1), 0)
	assert.ErrorIs(t, p.Validate(), ErrInvalidProduct)

	p = NewProduct("deck", "Deck", decimal.NewFromInt(1), -3)
	assert.ErrorIs(t, p.Validate(), ErrInvalidVariant)

	p = NewProduct("deck", "Deck", decimal.RequireFromString("59.90"), 3)
	assert.NoError(t, p.Validate())
}

func TestCloneAs_StartsUnlockedWithSameVariants(t *testing.T) {
	p := NewProduct("hoodie-black", "Hoodie", decimal.NewFromInt(50), 0)
	p.Sizes = []string{"M"}
	p.Colors = []Color{{Name: "black", ImageURL: "img/black.png"}}
	p.Variants = []Variant{{Size: "M", Color: "black", DeclaredStock: 10}}
	p.MarkLocked(time.Now())

	clone := p.CloneAs("hoodie-black-v2")

	assert.Equal(t, "hoodie-black-v2", clone.ID)
	assert.False(t, clone.IsMarkedLocked())
	assert.True(t, p.IsMarkedLocked())
	assert.Equal(t, p.Variants, clone.Variants)
	assert.Equal(t, p.Colors, clone.Colors)

	clone.Variants[0].DeclaredStock = 1
	assert.Equal(t, 10, p.Variants[0].DeclaredStock)
}

func TestMarkLocked_KeepsFirstTimestamp(t *testing.T) {
	p := NewProduct("deck", "Deck", decimal.NewFromInt(1), 1)
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	p.MarkLocked(first)
	p.MarkLocked(first.Add(time.Hour))

	assert.Equal(t, first, *p.LockedAtUtc)
}

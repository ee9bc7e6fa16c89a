package domain

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageError_MatchesSentinelAndCause(t *testing.T) {
	err := NewStorageError("ledger.append", io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Nil(t, NewStorageError("noop", nil))
}

func TestStorageError_NotDoubleWrapped(t *testing.T) {
	inner := NewStorageError("inner", io.EOF)

	outer := NewStorageError("outer", inner)

	assert.Same(t, inner, outer)
}

func TestOrderRejectedError_EnumeratesEveryProblem(t *testing.T) {
	err := &OrderRejectedError{Problems: []LineProblem{
		{Key: NewVariantKey("hoodie", "M", "black"), Requested: 8, Available: 7, Reason: ErrInsufficientStock},
		{Key: NewVariantKey("ghost", "", ""), Requested: 1, Reason: ErrProductNotFound},
		{Key: NewVariantKey("cap", "", ""), Requested: 2, Available: 0, Reason: ErrInsufficientStock},
	}}

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.False(t, errors.Is(err, ErrEmptyOrder))
	assert.Len(t, err.Shortfalls(), 2)
	assert.Contains(t, err.Error(), "requested 8, available 7")
	assert.Contains(t, err.Error(), "product ghost not found")
}

func TestLockedProductError(t *testing.T) {
	err := error(&LockedProductError{ProductID: "hoodie"})

	assert.ErrorIs(t, err, ErrLockedProduct)
	assert.Contains(t, err.Error(), "hoodie")
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrInvalidVariant     = errors.New("invalid variant")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrInvalidSale        = errors.New("invalid sale")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductExists      = errors.New("product already exists")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyOrder         = errors.New("empty order")
	ErrLockedProduct      = errors.New("product is locked")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError describes a malformed declaration or submission. Kind is one of the
// sentinel errors above.
type ValidationError struct {
	Kind    error
	Key     *VariantKey
	Message string
}

func (e *ValidationError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("%v: %s (product=%s size=%q color=%q)",
			e.Kind, e.Message, e.Key.ProductID, e.Key.Size, e.Key.Color)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func NewInvalidVariantError(key VariantKey, message string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidVariant, Key: &key, Message: message}
}

func NewInvalidSaleError(message string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidSale, Message: message}
}

func NewInvalidProductError(message string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidProduct, Message: message}
}

type LockedProductError struct {
	ProductID string
}

func (e *LockedProductError) Error() string {
	return fmt.Sprintf("product %s has committed sales and cannot be edited or deleted; clone it instead", e.ProductID)
}

func (e *LockedProductError) Unwrap() error {
	return ErrLockedProduct
}

func NewProductNotFoundError(productID string) error {
	return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
}

// StorageError wraps a failure of a persistence collaborator. It matches both
// ErrStorageUnavailable and the underlying error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorageUnavailable, e.Err}
}

// NewStorageError returns nil for a nil err so call sites can wrap unconditionally.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// LineProblem is one unsatisfiable group of a candidate order.
type LineProblem struct {
	Key       VariantKey
	Requested int
	Available int
	Reason    error
}

func (p LineProblem) String() string {
	if errors.Is(p.Reason, ErrProductNotFound) {
		return fmt.Sprintf("product %s not found", p.Key.ProductID)
	}
	return fmt.Sprintf("product %s size=%q color=%q: requested %d, available %d",
		p.Key.ProductID, p.Key.Size, p.Key.Color, p.Requested, p.Available)
}

// OrderRejectedError lists every group that failed validation, not only the first one.
type OrderRejectedError struct {
	Problems []LineProblem
}

func (e *OrderRejectedError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return "order rejected: " + strings.Join(parts, "; ")
}

func (e *OrderRejectedError) Unwrap() []error {
	seen := make(map[error]struct{}, 2)
	out := make([]error, 0, 2)
	for _, p := range e.Problems {
		if _, ok := seen[p.Reason]; ok {
			continue
		}
		seen[p.Reason] = struct{}{}
		out = append(out, p.Reason)
	}
	return out
}

// Shortfalls returns only the stock problems.
func (e *OrderRejectedError) Shortfalls() []LineProblem {
	var out []LineProblem
	for _, p := range e.Problems {
		if errors.Is(p.Reason, ErrInsufficientStock) {
			out = append(out, p)
		}
	}
	return out
}

// Package memory holds process-local implementations of the domain ports. They back
// the service when no database is reachable and are used throughout the tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*domain.Product)}
}

func copyProduct(p *domain.Product) *domain.Product {
	c := *p
	c.Sizes = append([]string(nil), p.Sizes...)
	c.Colors = append([]domain.Color(nil), p.Colors...)
	c.Variants = append([]domain.Variant(nil), p.Variants...)
	if p.LockedAtUtc != nil {
		t := *p.LockedAtUtc
		c.LockedAtUtc = &t
	}
	return &c
}

func (r *ProductRepository) Get(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepository) GetMany(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result[id] = copyProduct(p)
		}
	}
	return result, nil
}

func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepository) Save(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.UpdatedAtUtc.IsZero() {
		p.UpdatedAtUtc = time.Now().UTC()
	}
	if p.CreatedAtUtc.IsZero() {
		p.CreatedAtUtc = p.UpdatedAtUtc
	}
	r.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *ProductRepository) MarkLocked(_ context.Context, ids []string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			p.MarkLocked(at)
		}
	}
	return nil
}

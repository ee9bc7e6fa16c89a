package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// ProductAdminService groups the structural product operations of the admin panel.
// Every mutation takes the product lock shared with checkouts, so a product cannot be
// edited between a sale's validation and its commit.
type ProductAdminService struct {
	products domain.ProductRepository
	catalog  domain.VariantCatalog
	resolver *AvailabilityResolver
	locker   domain.KeyLocker
	outbox   OutboxWriter
	logger   *zap.Logger
}

func NewProductAdminService(
	products domain.ProductRepository,
	catalog domain.VariantCatalog,
	resolver *AvailabilityResolver,
	locker domain.KeyLocker,
	outbox OutboxWriter,
	logger *zap.Logger,
) *ProductAdminService {
	return &ProductAdminService{
		products: products,
		catalog:  catalog,
		resolver: resolver,
		locker:   locker,
		outbox:   outbox,
		logger:   logger,
	}
}

func (s *ProductAdminService) withProductLock(ctx context.Context, productID string, fn func() error) error {
	unlock, err := s.locker.Lock(ctx, []string{productLockKey(productID)})
	if err != nil {
		return fmt.Errorf("acquire product lock: %w", err)
	}
	defer unlock()
	return fn()
}

func (s *ProductAdminService) Get(ctx context.Context, productID string) (*domain.Product, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewProductNotFoundError(productID)
	}
	return p, nil
}

func (s *ProductAdminService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductAdminService) IsLocked(ctx context.Context, productID string) (bool, error) {
	if _, err := s.Get(ctx, productID); err != nil {
		return false, err
	}
	return s.resolver.IsLocked(ctx, productID)
}

func prepareProduct(p *domain.Product) error {
	p.ID = strings.TrimSpace(p.ID)
	if err := p.Validate(); err != nil {
		return err
	}
	variants, err := domain.ValidateVariants(p.ID, p.Variants)
	if err != nil {
		return err
	}
	p.Variants = variants
	return nil
}

func (s *ProductAdminService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := prepareProduct(p); err != nil {
		return nil, err
	}

	err := s.withProductLock(ctx, p.ID, func() error {
		existing, err := s.products.Get(ctx, p.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %s", domain.ErrProductExists, p.ID)
		}
		now := time.Now().UTC()
		p.CreatedAtUtc, p.UpdatedAtUtc = now, now
		p.LockedAtUtc = nil
		return s.products.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.String("product_id", p.ID), zap.Int("variants", len(p.Variants)))
	return p, nil
}

// Update replaces the product's fields and variant matrix. Locked products are rejected.
func (s *ProductAdminService) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := prepareProduct(p); err != nil {
		return nil, err
	}

	err := s.withProductLock(ctx, p.ID, func() error {
		existing, err := s.lockedGuard(ctx, p.ID)
		if err != nil {
			return err
		}
		p.CreatedAtUtc = existing.CreatedAtUtc
		p.LockedAtUtc = existing.LockedAtUtc
		p.UpdatedAtUtc = time.Now().UTC()
		return s.products.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("product updated", zap.String("product_id", p.ID))
	return p, nil
}

func (s *ProductAdminService) SetVariants(ctx context.Context, productID string, variants []domain.Variant) error {
	return s.withProductLock(ctx, productID, func() error {
		if _, err := s.lockedGuard(ctx, productID); err != nil {
			return err
		}
		return s.catalog.SetVariants(ctx, productID, variants)
	})
}

func (s *ProductAdminService) Delete(ctx context.Context, productID string) error {
	err := s.withProductLock(ctx, productID, func() error {
		if _, err := s.lockedGuard(ctx, productID); err != nil {
			return err
		}
		deleted, err := s.products.Delete(ctx, productID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.NewProductNotFoundError(productID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", productID))
	return nil
}

// Clone copies a product (typically a locked one) under a new id. The clone has no
// sales, so its availability equals its declared stock. An empty newID gets a uuid.
func (s *ProductAdminService) Clone(ctx context.Context, sourceID, newID string) (*domain.Product, error) {
	src, err := s.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	newID = strings.TrimSpace(newID)
	if newID == "" {
		newID = uuid.NewString()
	}

	clone := src.CloneAs(newID)
	err = s.withProductLock(ctx, newID, func() error {
		existing, err := s.products.Get(ctx, newID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %s", domain.ErrProductExists, newID)
		}
		// a reused id could still have sales from a deleted product
		has, err := s.resolver.IsLocked(ctx, newID)
		if err != nil {
			return err
		}
		if has {
			return &domain.LockedProductError{ProductID: newID}
		}
		return s.products.Save(ctx, clone)
	})
	if err != nil {
		return nil, err
	}

	if err := s.outbox.Enqueue(ctx, domain.NewProductClonedEvent(sourceID, newID)); err != nil {
		s.logger.Error("failed to enqueue product cloned event", zap.String("product_id", newID), zap.Error(err))
	}
	s.logger.Info("product cloned", zap.String("source_id", sourceID), zap.String("product_id", newID))
	return clone, nil
}

// UpsertFromCatalog applies a catalog event: creates the product or refreshes an
// unlocked one. Locked products are left untouched and reported with ErrLockedProduct.
func (s *ProductAdminService) UpsertFromCatalog(ctx context.Context, p *domain.Product) error {
	if err := prepareProduct(p); err != nil {
		return err
	}
	return s.withProductLock(ctx, p.ID, func() error {
		existing, err := s.products.Get(ctx, p.ID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if existing == nil {
			if p.CreatedAtUtc.IsZero() {
				p.CreatedAtUtc = now
			}
			p.UpdatedAtUtc = now
			p.LockedAtUtc = nil
			return s.products.Save(ctx, p)
		}
		locked, err := s.resolver.IsLocked(ctx, p.ID)
		if err != nil {
			return err
		}
		if locked {
			return &domain.LockedProductError{ProductID: p.ID}
		}
		p.CreatedAtUtc = existing.CreatedAtUtc
		p.UpdatedAtUtc = now
		return s.products.Save(ctx, p)
	})
}

// lockedGuard loads the product and fails when it is unknown or locked.
func (s *ProductAdminService) lockedGuard(ctx context.Context, productID string) (*domain.Product, error) {
	existing, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	locked, err := s.resolver.IsLocked(ctx, productID)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, &domain.LockedProductError{ProductID: productID}
	}
	return existing, nil
}

package application

import (
	"context"
	"fmt"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

// GroupCheck is the outcome for every line of an order sharing one variant key.
type GroupCheck struct {
	Key       domain.VariantKey
	Requested int
	Available int
	// Reason is nil when the group is satisfiable.
	Reason error
}

type ValidationReport struct {
	Groups []GroupCheck
}

func (r ValidationReport) OK() bool {
	for _, g := range r.Groups {
		if g.Reason != nil {
			return false
		}
	}
	return true
}

// Err returns a *domain.OrderRejectedError listing every failing group, or nil.
func (r ValidationReport) Err() error {
	var problems []domain.LineProblem
	for _, g := range r.Groups {
		if g.Reason == nil {
			continue
		}
		problems = append(problems, domain.LineProblem{
			Key:       g.Key,
			Requested: g.Requested,
			Available: g.Available,
			Reason:    g.Reason,
		})
	}
	if len(problems) == 0 {
		return nil
	}
	return &domain.OrderRejectedError{Problems: problems}
}

type ReservationValidator struct {
	products domain.ProductRepository
	resolver *AvailabilityResolver
}

func NewReservationValidator(products domain.ProductRepository, resolver *AvailabilityResolver) *ReservationValidator {
	return &ReservationValidator{products: products, resolver: resolver}
}

type lineGroup struct {
	key       domain.VariantKey
	requested int
}

// groupLines sums quantities per variant key keeping first-appearance order.
func groupLines(lines []domain.SaleLine) []lineGroup {
	index := make(map[domain.VariantKey]int, len(lines))
	groups := make([]lineGroup, 0, len(lines))
	for _, l := range lines {
		k := l.Key()
		if i, ok := index[k]; ok {
			groups[i].requested += l.Quantity
			continue
		}
		index[k] = len(groups)
		groups = append(groups, lineGroup{key: k, requested: l.Quantity})
	}
	return groups
}

// Validate checks the whole candidate order. The returned error covers malformed
// orders (EmptyOrder, InvalidSale) and storage failures; stock shortfalls and unknown
// products are reported in the ValidationReport so every one of them is listed.
func (v *ReservationValidator) Validate(ctx context.Context, lines []domain.SaleLine) (ValidationReport, error) {
	if len(lines) == 0 {
		return ValidationReport{}, domain.ErrEmptyOrder
	}
	for i, l := range lines {
		if l.Key().ProductID == "" {
			return ValidationReport{}, domain.NewInvalidSaleError(fmt.Sprintf("line %d has no product id", i))
		}
		if l.Quantity <= 0 {
			return ValidationReport{}, domain.NewInvalidSaleError(fmt.Sprintf("line %d has non-positive quantity %d", i, l.Quantity))
		}
	}

	groups := groupLines(lines)

	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.key.ProductID)
	}
	known, err := v.products.GetMany(ctx, ids)
	if err != nil {
		return ValidationReport{}, err
	}

	report := ValidationReport{Groups: make([]GroupCheck, 0, len(groups))}
	for _, g := range groups {
		check := GroupCheck{Key: g.key, Requested: g.requested}
		if _, ok := known[g.key.ProductID]; !ok {
			check.Reason = domain.ErrProductNotFound
			report.Groups = append(report.Groups, check)
			continue
		}

		available, err := v.resolver.RemainingForVariant(ctx, g.key.ProductID, g.key.Size, g.key.Color)
		if err != nil {
			return ValidationReport{}, err
		}
		check.Available = available
		if g.requested > available {
			check.Reason = domain.ErrInsufficientStock
		}
		report.Groups = append(report.Groups, check)
	}
	return report, nil
}

package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/domain"
)

type checkoutFeature struct {
	f   *fixture
	err error
}

func (c *checkoutFeature) reset() {
	c.f = newFixture()
	c.err = nil
}

func (c *checkoutFeature) save(id string, stock int, variants ...domain.Variant) error {
	p := domain.NewProduct(id, id, decimal.RequireFromString("25"), stock)
	p.Variants = variants
	return c.f.products.Save(context.Background(), p)
}

func (c *checkoutFeature) productDeclaresVariant(id, size, color string, stock int) error {
	return c.save(id, 0, domain.Variant{Size: size, Color: color, DeclaredStock: stock})
}

func (c *checkoutFeature) productHasFlatStock(id string, stock int) error {
	return c.save(id, stock)
}

func (c *checkoutFeature) aSaleOf(qty int, id, size, color string) error {
	_, err := c.f.checkout.Checkout(context.Background(), []domain.SaleLine{line(id, size, color, qty)}, CheckoutMetadata{})
	return err
}

func (c *checkoutFeature) iCheckOutVariant(qty int, id, size, color string) error {
	c.err = c.aSaleOf(qty, id, size, color)
	return nil
}

func (c *checkoutFeature) iCheckOutFlat(qty int, id string) error {
	return c.iCheckOutVariant(qty, id, "", "")
}

func (c *checkoutFeature) iCheckOutTheLines(table *godog.Table) error {
	var lines []domain.SaleLine
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		qty, err := strconv.Atoi(row.Cells[3].Value)
		if err != nil {
			return err
		}
		lines = append(lines, line(row.Cells[0].Value, row.Cells[1].Value, row.Cells[2].Value, qty))
	}
	_, c.err = c.f.checkout.Checkout(context.Background(), lines, CheckoutMetadata{})
	return nil
}

func (c *checkoutFeature) theCheckoutSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	return nil
}

func (c *checkoutFeature) rejected() (*domain.OrderRejectedError, error) {
	var rejected *domain.OrderRejectedError
	if !errors.As(c.err, &rejected) {
		return nil, fmt.Errorf("expected a rejected order, got %v", c.err)
	}
	return rejected, nil
}

func (c *checkoutFeature) failsWithInsufficientStock(requested, available int) error {
	rejected, err := c.rejected()
	if err != nil {
		return err
	}
	for _, p := range rejected.Shortfalls() {
		if p.Requested == requested && p.Available == available {
			return nil
		}
	}
	return fmt.Errorf("no shortfall with requested %d and available %d in %v", requested, available, rejected)
}

func (c *checkoutFeature) rejectedWithProblems(n int) error {
	rejected, err := c.rejected()
	if err != nil {
		return err
	}
	if len(rejected.Problems) != n {
		return fmt.Errorf("expected %d problems, got %d: %v", n, len(rejected.Problems), rejected)
	}
	return nil
}

func (c *checkoutFeature) theLedgerHolds(n int) error {
	all, err := c.f.ledger.List(context.Background())
	if err != nil {
		return err
	}
	if len(all) != n {
		return fmt.Errorf("expected %d sales, got %d", n, len(all))
	}
	return nil
}

func (c *checkoutFeature) remainingIs(id, size, color string, want int) error {
	got, err := c.f.resolver.RemainingForVariant(context.Background(), id, size, color)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected remaining %d for %s/%s/%s, got %d", want, id, size, color, got)
	}
	return nil
}

func (c *checkoutFeature) iReplaceVariants(id, size, color string, stock int) error {
	c.err = c.f.admin.SetVariants(context.Background(), id, []domain.Variant{{Size: size, Color: color, DeclaredStock: stock}})
	return nil
}

func (c *checkoutFeature) theEditFailsLocked() error {
	if !errors.Is(c.err, domain.ErrLockedProduct) {
		return fmt.Errorf("expected LockedProduct, got %v", c.err)
	}
	return nil
}

func (c *checkoutFeature) iClone(source, target string) error {
	_, err := c.f.admin.Clone(context.Background(), source, target)
	return err
}

func (c *checkoutFeature) productIsNotLocked(id string) error {
	locked, err := c.f.admin.IsLocked(context.Background(), id)
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("product %s is locked", id)
	}
	return nil
}

func InitializeCheckoutScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^product "([^"]*)" declares size "([^"]*)" color "([^"]*)" with stock (\d+)$`, tc.productDeclaresVariant)
	ctx.Step(`^product "([^"]*)" has no variants and flat stock (\d+)$`, tc.productHasFlatStock)
	ctx.Step(`^a sale of (\d+) of "([^"]*)" size "([^"]*)" color "([^"]*)"$`, tc.aSaleOf)

	// When
	ctx.Step(`^I check out (\d+) of "([^"]*)" size "([^"]*)" color "([^"]*)"$`, tc.iCheckOutVariant)
	ctx.Step(`^I check out (\d+) of "([^"]*)"$`, tc.iCheckOutFlat)
	ctx.Step(`^I check out the lines:$`, tc.iCheckOutTheLines)
	ctx.Step(`^I replace the variants of "([^"]*)" with size "([^"]*)" color "([^"]*)" stock (\d+)$`, tc.iReplaceVariants)
	ctx.Step(`^I clone "([^"]*)" into "([^"]*)"$`, tc.iClone)

	// Then
	ctx.Step(`^the checkout succeeds$`, tc.theCheckoutSucceeds)
	ctx.Step(`^the checkout fails with insufficient stock: requested (\d+), available (\d+)$`, tc.failsWithInsufficientStock)
	ctx.Step(`^the order is rejected with (\d+) problems?$`, tc.rejectedWithProblems)
	ctx.Step(`^the ledger holds (\d+) sales?$`, tc.theLedgerHolds)
	ctx.Step(`^the remaining stock of "([^"]*)" size "([^"]*)" color "([^"]*)" is (\d+)$`, tc.remainingIs)
	ctx.Step(`^the edit fails because the product is locked$`, tc.theEditFailsLocked)
	ctx.Step(`^product "([^"]*)" is not locked$`, tc.productIsNotLocked)
}

func TestCheckoutFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeCheckoutScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

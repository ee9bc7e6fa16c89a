package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"github.com/shopspring/decimal"
)

// =========== Payloads de eventos entrantes ===========

// ProductCreated (desde catalog.events)
type ProductCreatedPayload struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Sizes         []string        `json:"sizes"`
	Colors        []Color         `json:"colors"`
	Variants      []Variant       `json:"variants"`
	CreatedAtUtc  time.Time       `json:"createdAtUtc"`
}

// OrderPlaced (desde orders.events)
type OrderPlacedLine struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

type OrderPlacedPayload struct {
	OrderID  uuid.UUID         `json:"orderId"`
	Customer Customer          `json:"customer"`
	Total    decimal.Decimal   `json:"total"`
	Lines    []OrderPlacedLine `json:"lines"`
}

func (p OrderPlacedPayload) SaleLines() []SaleLine {
	lines := make([]SaleLine, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, SaleLine{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
		})
	}
	return lines
}

// =========== Eventos salientes Inventory -> otros ===========

type SaleLineDto struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

func saleLineDtos(lines []SaleLine) []SaleLineDto {
	out := make([]SaleLineDto, 0, len(lines))
	for _, l := range lines {
		out = append(out, SaleLineDto{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
		})
	}
	return out
}

type SaleCommittedEvent struct {
	primitives.BaseEvent
	SaleID         uuid.UUID       `json:"saleId"`
	OrderID        *uuid.UUID      `json:"orderId,omitempty"`
	Total          decimal.Decimal `json:"total"`
	Lines          []SaleLineDto   `json:"lines"`
	CommittedAtUtc time.Time       `json:"committedAtUtc"`
}

func NewSaleCommittedEvent(sale *Sale, orderID *uuid.UUID) *SaleCommittedEvent {
	ev := &SaleCommittedEvent{
		BaseEvent:      primitives.NewBaseEvent(),
		SaleID:         sale.ID,
		OrderID:        orderID,
		Total:          sale.Total,
		Lines:          saleLineDtos(sale.Lines),
		CommittedAtUtc: sale.CreatedAtUtc,
	}
	ev.SetRoutingKey("SaleCommitted")
	return ev
}

type SaleRemovedEvent struct {
	primitives.BaseEvent
	SaleID       uuid.UUID     `json:"saleId"`
	Lines        []SaleLineDto `json:"lines"`
	RemovedAtUtc time.Time     `json:"removedAtUtc"`
}

func NewSaleRemovedEvent(sale *Sale) *SaleRemovedEvent {
	ev := &SaleRemovedEvent{
		BaseEvent:    primitives.NewBaseEvent(),
		SaleID:       sale.ID,
		Lines:        saleLineDtos(sale.Lines),
		RemovedAtUtc: time.Now().UTC(),
	}
	ev.SetRoutingKey("SaleRemoved")
	return ev
}

// CatalogStockAdjusted (evento para Catalog, Storefront, etc.)
type CatalogStockAdjustedEvent struct {
	primitives.BaseEvent
	ProductID         string    `json:"productId"`
	Size              string    `json:"size,omitempty"`
	Color             string    `json:"color,omitempty"`
	AvailableQuantity int       `json:"availableQuantity"`
	SoldQuantity      int       `json:"soldQuantity"`
	Reason            string    `json:"reason"`
	OccurredAtUtc     time.Time `json:"occurredAtUtc"`
}

func NewCatalogStockAdjustedEvent(
	key VariantKey,
	available, sold int,
	reason string,
) *CatalogStockAdjustedEvent {
	ev := &CatalogStockAdjustedEvent{
		BaseEvent:         primitives.NewBaseEvent(),
		ProductID:         key.ProductID,
		Size:              key.Size,
		Color:             key.Color,
		AvailableQuantity: available,
		SoldQuantity:      sold,
		Reason:            reason,
		OccurredAtUtc:     time.Now().UTC(),
	}
	ev.SetRoutingKey("CatalogStockAdjusted")
	return ev
}

type ProductClonedEvent struct {
	primitives.BaseEvent
	SourceProductID string    `json:"sourceProductId"`
	ProductID       string    `json:"productId"`
	ClonedAtUtc     time.Time `json:"clonedAtUtc"`
}

func NewProductClonedEvent(sourceID, productID string) *ProductClonedEvent {
	ev := &ProductClonedEvent{
		BaseEvent:       primitives.NewBaseEvent(),
		SourceProductID: sourceID,
		ProductID:       productID,
		ClonedAtUtc:     time.Now().UTC(),
	}
	ev.SetRoutingKey("ProductCloned")
	return ev
}

type RejectedLineDto struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Reason    string `json:"reason"`
}

type CheckoutRejectedEvent struct {
	primitives.BaseEvent
	OrderID       uuid.UUID         `json:"orderId"`
	Reason        string            `json:"reason"`
	Problems      []RejectedLineDto `json:"problems,omitempty"`
	RejectedAtUtc time.Time         `json:"rejectedAtUtc"`
}

func NewCheckoutRejectedEvent(orderID uuid.UUID, reason string, problems []LineProblem) *CheckoutRejectedEvent {
	dtos := make([]RejectedLineDto, 0, len(problems))
	for _, p := range problems {
		dtos = append(dtos, RejectedLineDto{
			ProductID: p.Key.ProductID,
			Size:      p.Key.Size,
			Color:     p.Key.Color,
			Requested: p.Requested,
			Available: p.Available,
			Reason:    p.Reason.Error(),
		})
	}
	ev := &CheckoutRejectedEvent{
		BaseEvent:     primitives.NewBaseEvent(),
		OrderID:       orderID,
		Reason:        reason,
		Problems:      dtos,
		RejectedAtUtc: time.Now().UTC(),
	}
	ev.SetRoutingKey("CheckoutRejected")
	return ev
}

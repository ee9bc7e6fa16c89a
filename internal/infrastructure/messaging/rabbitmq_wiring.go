package messaging

import (
	"context"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/abstractions"
	messaging "github.com/rodolfodevapp/eventshop-messaging-go/rabbitmq"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/application"
)

const (
	ordersExchange    = "orders.events"
	catalogExchange   = "catalog.events"
	inventoryExchange = "inventory.events"
)

func rabbitOptions(uri, exchange, queuePrefix string) messaging.RabbitMqOptions {
	return messaging.RabbitMqOptions{
		URI:          uri,
		ExchangeName: exchange,
		QueuePrefix:  queuePrefix,
		Prefetch:     32,
		RetryDelayMs: 30000,
	}
}

// Buses holds the consumers for orders/catalog events and the producer used by the
// outbox dispatcher.
type Buses struct {
	OrdersConsumer  *messaging.RabbitMqEventBus
	CatalogConsumer *messaging.RabbitMqEventBus
	Producer        abstractions.EventBus
}

func NewBuses(rabbitUri string) Buses {
	return Buses{
		OrdersConsumer:  messaging.NewRabbitMqEventBus(rabbitOptions(rabbitUri, ordersExchange, "skaterstore.inventory.orders-events.v1"), nil, nil),
		CatalogConsumer: messaging.NewRabbitMqEventBus(rabbitOptions(rabbitUri, catalogExchange, "skaterstore.inventory.catalog-events.v1"), nil, nil),
		Producer:        NewProducerBus(rabbitUri),
	}
}

// Producer para inventory.events
func NewProducerBus(rabbitUri string) abstractions.EventBus {
	return messaging.NewRabbitMqEventBus(rabbitOptions(rabbitUri, inventoryExchange, "skaterstore.inventory.dispatcher.v1"), nil, nil)
}

func RegisterOrderSubscriptions(
	ctx context.Context,
	bus *messaging.RabbitMqEventBus,
	orderPlacedHandler application.EventHandler,
	logger *zap.Logger,
) error {
	bus.Subscribe("OrderPlacedEvent", orderPlacedHandler)

	if err := bus.StartConsumers(ctx); err != nil {
		logger.Error("error starting orders consumers", zap.Error(err))
		return err
	}
	logger.Info("orders consumers started", zap.String("exchange", ordersExchange))
	return nil
}

func RegisterCatalogSubscriptions(
	ctx context.Context,
	bus *messaging.RabbitMqEventBus,
	productCreatedHandler application.EventHandler,
	logger *zap.Logger,
) error {
	bus.Subscribe("ProductCreated", productCreatedHandler)

	if err := bus.StartConsumers(ctx); err != nil {
		logger.Error("error starting catalog consumers", zap.Error(err))
		return err
	}
	logger.Info("catalog consumers started", zap.String("exchange", catalogExchange))
	return nil
}

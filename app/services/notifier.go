package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/farsishop/storefront/app/configs"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/utils/calc"
	"github.com/farsishop/storefront/app/utils/format"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderNotifier is told about every committed order.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order *models.Order) error
	Close() error
}

// OrderCreatedEvent is the JSON value published for a new order.
type OrderCreatedEvent struct {
	Event         string             `json:"event"`
	OrderID       string             `json:"orderId"`
	ProductID     string             `json:"productId"`
	ProductName   string             `json:"productName"`
	Quantity      int                `json:"quantity"`
	DesiredPrice  decimal.Decimal    `json:"desiredPrice"`
	UnitPrice     decimal.Decimal    `json:"unitPrice"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	UserID        *string            `json:"userId"`
	Status        models.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func NewOrderCreatedEvent(order *models.Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		Event:         "order.created",
		OrderID:       order.ID,
		ProductID:     order.ProductID,
		ProductName:   order.ProductName,
		Quantity:      order.Quantity,
		DesiredPrice:  order.DesiredPrice,
		UnitPrice:     calc.UnitPrice(order.DesiredPrice, order.Quantity),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		UserID:        order.UserID,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	}
}

type KafkaOrderNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
}

func NewKafkaOrderNotifier(brokers []string, topic string, logger zerolog.Logger) (*KafkaOrderNotifier, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second
	config.Net.DialTimeout = 5 * time.Second
	config.Net.ReadTimeout = 5 * time.Second
	config.Net.WriteTimeout = 5 * time.Second
	config.Metadata.Retry.Max = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start Sarama producer: %w", err)
	}

	logger.Info().Strs("brokers", brokers).Str("topic", topic).Msg("kafka producer connected")
	return NewKafkaOrderNotifierWithProducer(producer, topic, logger), nil
}

func NewKafkaOrderNotifierWithProducer(producer sarama.SyncProducer, topic string, logger zerolog.Logger) *KafkaOrderNotifier {
	return &KafkaOrderNotifier{producer: producer, topic: topic, logger: logger}
}

func (k *KafkaOrderNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(NewOrderCreatedEvent(order))
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(order.ID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish order %s to %s: %w", order.ID, k.topic, err)
	}
	k.logger.Debug().Str("order_id", order.ID).Int32("partition", partition).Int64("offset", offset).Msg("order event published")
	return nil
}

func (k *KafkaOrderNotifier) Close() error {
	return k.producer.Close()
}

type MailOrderNotifier struct {
	sender   EmailSender
	to       string
	adminURL string
}

func NewMailOrderNotifier(sender EmailSender, to, appURL string) *MailOrderNotifier {
	return &MailOrderNotifier{
		sender:   sender,
		to:       to,
		adminURL: strings.TrimRight(appURL, "/") + "/admin/orders",
	}
}

func (m *MailOrderNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	data := OrderEmailData{
		OrderID:       order.ID,
		ProductName:   order.ProductName,
		Quantity:      order.Quantity,
		DesiredPrice:  format.Toman(order.DesiredPrice),
		UnitPrice:     format.Toman(calc.UnitPrice(order.DesiredPrice, order.Quantity)),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		AdminURL:      m.adminURL,
	}
	if order.Notes != nil {
		data.Notes = *order.Notes
	}

	subject := fmt.Sprintf("سفارش جدید: %s", order.ProductName)
	return m.sender.SendHTMLEmail(ctx, m.to, subject, BuildOrderEmailBody(data))
}

func (m *MailOrderNotifier) Close() error {
	return nil
}

type multiNotifier []OrderNotifier

func (n multiNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	var errs []error
	for _, notifier := range n {
		if err := notifier.OrderCreated(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n multiNotifier) Close() error {
	var errs []error
	for _, notifier := range n {
		if err := notifier.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

const defaultNotifyTimeout = 30 * time.Second

// AsyncNotifier hands each order to the wrapped notifier on its own
// goroutine. The request's values reach the notifier but its cancellation
// does not; every delivery gets its own timeout instead.
type AsyncNotifier struct {
	next    OrderNotifier
	timeout time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

func NewAsyncNotifier(next OrderNotifier, timeout time.Duration, logger zerolog.Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	return &AsyncNotifier{next: next, timeout: timeout, logger: logger}
}

// OrderCreated returns at once. Delivery errors are only logged.
func (a *AsyncNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	snapshot := *order
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer cancel()
		if err := a.next.OrderCreated(ctx, &snapshot); err != nil {
			a.logger.Warn().Err(err).Str("order_id", snapshot.ID).Msg("order notification failed")
		}
	}()
	return nil
}

// Wait blocks until every started delivery has finished.
func (a *AsyncNotifier) Wait() {
	a.wg.Wait()
}

// Close drains pending deliveries and closes the wrapped notifier.
func (a *AsyncNotifier) Close() error {
	a.wg.Wait()
	return a.next.Close()
}

type noopNotifier struct{}

func (noopNotifier) OrderCreated(context.Context, *models.Order) error { return nil }
func (noopNotifier) Close() error { return nil }

func NewNoopNotifier() OrderNotifier {
	return noopNotifier{}
}

// NewOrderNotifier builds the notifiers enabled by env: Kafka when brokers
// are configured, mail when an SMTP host and recipient are set.
func NewOrderNotifier(env configs.ENV, logger zerolog.Logger) (OrderNotifier, error) {
	var notifiers multiNotifier

	if len(env.KafkaBrokers) > 0 {
		kafka, err := NewKafkaOrderNotifier(env.KafkaBrokers, env.KafkaOrderTopic, logger)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, kafka)
	}

	if env.EmailHost != "" && env.OrderNotifyEmail != "" {
		mailer := NewMailer(Config{
			Host:     env.EmailHost,
			Port:     env.EmailPort,
			Username: env.EmailUsername,
			Password: env.EmailPassword,
			From:     env.EmailFrom,
			Timeout:  defaultSMTPTimeout,
		})
		notifiers = append(notifiers, NewMailOrderNotifier(mailer, env.OrderNotifyEmail, env.AppURL))
	}

	switch len(notifiers) {
	case 0:
		logger.Info().Msg("order notifications disabled")
		return NewNoopNotifier(), nil
	case 1:
		return notifiers[0], nil
	default:
		return notifiers, nil
	}
}

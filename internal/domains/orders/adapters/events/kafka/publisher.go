package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	orderports "github.com/Apurer/order-management-api/internal/domains/orders/ports"
)

// DefaultTopic receives order lifecycle events unless configured otherwise.
const DefaultTopic = "orders.events"

// batchTimeout caps how long a single event waits for a batch to fill.
const batchTimeout = 5 * time.Millisecond

var _ orderports.EventPublisher = (*Publisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes lifecycle events as JSON messages keyed by order id.
// Delivery is best effort: broker failures are logged and swallowed.
type Publisher struct {
	writer  messageWriter
	logger  *slog.Logger
	timeout time.Duration
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithWriteTimeout bounds each publish call.
func WithWriteTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPublisher builds a publisher for brokers and topic.
func NewPublisher(brokers []string, topic string, opts ...Option) *Publisher {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}
	return newPublisher(writer, opts...)
}

func newPublisher(writer messageWriter, opts ...Option) *Publisher {
	p := &Publisher{
		writer:  writer,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// ParseBrokers splits a comma separated broker list.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Publish implements ports.EventPublisher.
func (p *Publisher) Publish(ctx context.Context, event orderports.Event) error {
	if p == nil || p.writer == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to encode order event", slog.String("type", string(event.Type)), slog.String("error", err.Error()))
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	msg := kafkago.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WarnContext(ctx, "failed to publish order event",
			slog.String("type", string(event.Type)),
			slog.Int64("order.id", event.OrderID),
			slog.String("error", err.Error()))
		return nil
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует события бронирований в topic exchange RabbitMQ
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher подключается к RabbitMQ и объявляет exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish отправляет событие с routing key, равным его типу
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID + ":" + string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

// Sender транспорт событий
type Sender interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Notifier публикует события по принципу best-effort: ошибка логируется и не возвращается
type Notifier struct {
	sender  Sender
	logger  Logger
	timeout time.Duration
}

// NewNotifier создает notifier с ограничением времени на одну публикацию
func NewNotifier(sender Sender, logger Logger, timeout time.Duration) *Notifier {
	return &Notifier{sender: sender, logger: logger, timeout: timeout}
}

// Notify публикует событие. Отмена контекста запроса не прерывает публикацию.
func (n *Notifier) Notify(ctx context.Context, event BookingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.sender.Publish(ctx, event); err != nil {
		n.logger.Warn("Notify: failed to publish %s for booking %s: %v", event.Type, event.BookingID, err)
	}
}

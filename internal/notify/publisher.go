package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cine-taquilla/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher pushes purchase events onto the ticket queue. Publishing is
// best-effort from the purchase workflow's point of view: the purchase is
// already committed, a failed publish is logged and swallowed by the caller.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

func NewPublisher(config utils.RabbitConfig, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Durable so pending confirmations survive broker restarts.
	if _, err := ch.QueueDeclare(config.Queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", config.Queue, err)
	}

	return &Publisher{
		conn:  conn,
		ch:    ch,
		queue: config.Queue,
		log:   log.With(zap.String("component", "notify-publisher")),
	}, nil
}

func (p *Publisher) PublishTicketPurchased(ctx context.Context, event TicketPurchasedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ticket event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.log.Error("Failed to publish ticket event",
			zap.Error(err),
			zap.Int64("compra_id", event.CompraID),
		)
		return fmt.Errorf("publish ticket event for compra %d: %w", event.CompraID, err)
	}

	p.log.Info("Ticket event published",
		zap.Int64("compra_id", event.CompraID),
		zap.String("email", event.UserEmail),
	)
	return nil
}

func (p *Publisher) Close() {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

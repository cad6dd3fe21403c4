package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"cine-taquilla/pkg/mailer"
	"cine-taquilla/pkg/qr"
	"cine-taquilla/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer drains the ticket queue and mails purchase confirmations with the
// QR image attached. Mail failures are logged and the delivery acked anyway:
// confirmation email is best-effort and must never wedge the queue.
type Consumer struct {
	config utils.RabbitConfig
	sender mailer.Sender
	log    *zap.Logger
}

func NewConsumer(config utils.RabbitConfig, sender mailer.Sender, log *zap.Logger) *Consumer {
	return &Consumer{
		config: config,
		sender: sender,
		log:    log.With(zap.String("component", "notify-consumer")),
	}
}

// Start blocks consuming deliveries until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	conn, err := amqp.Dial(c.config.URL)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(c.config.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.config.Queue, err)
	}

	deliveries, err := ch.Consume(c.config.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue %s: %w", c.config.Queue, err)
	}

	c.log.Info("Ticket mail consumer started", zap.String("queue", c.config.Queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handle(d)
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) {
	var event TicketPurchasedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.log.Error("Failed to decode ticket event, dropping", zap.Error(err))
		d.Ack(false)
		return
	}

	if err := c.sendConfirmation(event); err != nil {
		c.log.Error("Failed to send confirmation email",
			zap.Error(err),
			zap.Int64("compra_id", event.CompraID),
			zap.String("email", event.UserEmail),
		)
	}

	d.Ack(false)
}

func (c *Consumer) sendConfirmation(event TicketPurchasedEvent) error {
	png, err := qr.EncodePNG(event.QRCode)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`
		<h2>Compra confirmada</h2>
		<p>Hola %s,</p>
		<p>Tu compra de %d taquilla(s) %s para <b>%s</b> en la sala <b>%s</b> (%s) fue procesada.</p>
		<p>Total: %d DOP</p>
		<p>Presenta el código QR adjunto en la entrada. Es válido hasta el final del día de compra y se puede usar una sola vez.</p>`,
		event.UserName,
		event.Cantidad,
		event.TipoTaquilla,
		event.MovieTitle,
		event.SalaName,
		formatMinutes(event.StartTime),
		event.CostoTotal,
	)

	return c.sender.Send(mailer.Message{
		To:       event.UserEmail,
		Subject:  "Tu entrada de cine",
		HTMLBody: body,
		Attachments: map[string][]byte{
			"entrada-qr.png": png,
		},
	})
}

// formatMinutes renders minutes-from-midnight as HH:MM, wrapping past
// midnight for display only.
func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", (m/60)%24, m%60)
}

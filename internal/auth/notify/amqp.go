// Package notify delivers user-facing notifications. The AMQP publisher hands
// messages to a broker queue consumed by the mailer; the log notifier is the
// development fallback.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// ResetCodeQueue is the durable queue the mailer consumes reset codes from.
const ResetCodeQueue = "auth.password_reset"

// resetCodeMessage is the wire shape placed on the queue. The raw code rides
// here once on its way to the mailer and nowhere else.
type resetCodeMessage struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AMQPNotifier publishes reset codes to a RabbitMQ queue. Connections are
// opened per publish; reset requests are rare enough that holding a channel
// open buys nothing over reconnect-on-demand.
type AMQPNotifier struct {
	url string
}

func NewAMQPNotifier(url string) *AMQPNotifier {
	return &AMQPNotifier{url: url}
}

// SendResetCode places the reset code on the mailer queue. Messages are
// persistent and the queue is declared durable, so codes survive a broker
// restart within their validity window.
func (n *AMQPNotifier) SendResetCode(ctx context.Context, user domain.User, code string, expiresAt time.Time) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		ResetCodeQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("amqp queue declare: %w", err)
	}

	body, err := json.Marshal(resetCodeMessage{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Code:      code,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = ch.PublishWithContext(ctx,
		"",             // default exchange
		ResetCodeQueue, // routing key = queue name
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}

	slogx.FromContext(ctx).Info("reset code queued", "queue", ResetCodeQueue, "user_id", user.ID)
	return nil
}

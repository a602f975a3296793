package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const EmailRoutingKey = "email.send"

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// emailJob is the message consumed by the mail worker.
type emailJob struct {
	From     string    `json:"from,omitempty"`
	To       string    `json:"to"`
	Name     string    `json:"name,omitempty"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queued_at"`
}

// RabbitMQNotifier queues rendered notifications as email jobs on a topic
// exchange.
type RabbitMQNotifier struct {
	conn     *amqp.Connection
	channel  publisher
	exchange string
	from     string
	log      *zap.Logger
}

var _ interfaces.INotifier = (*RabbitMQNotifier)(nil)

func NewRabbitMQNotifier(amqpURL, exchange, from string, log *zap.Logger) (*RabbitMQNotifier, error) {
	cleanURL, err := sanitizeURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info("rabbitmq notifier connected", zap.String("exchange", exchange))
	return &RabbitMQNotifier{conn: conn, channel: ch, exchange: exchange, from: from, log: log}, nil
}

func (n *RabbitMQNotifier) Send(ctx context.Context, msg entities.Notification) error {
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("notification without recipient")
	}

	payload, err := json.Marshal(emailJob{
		From:     n.from,
		To:       msg.To,
		Name:     msg.Name,
		Subject:  msg.Subject,
		Body:     msg.Body,
		QueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	err = n.channel.PublishWithContext(ctx, n.exchange, EmailRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         payload,
	})
	if err != nil {
		return err
	}

	n.log.Debug("email job queued", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func (n *RabbitMQNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}

func sanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

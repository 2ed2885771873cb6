package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/storage/notification"
)

const publishTimeout = 5 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher fans stored notifications out to a topic exchange.
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	// amqp091 channels are not safe for concurrent publishing.
	mutex sync.Mutex
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// PublishNotifications publishes one persistent JSON message per notification
// and stops at the first failure.
func (p *Publisher) PublishNotifications(ctx context.Context, notifications []*notification.Notification) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	for _, n := range notifications {
		msg := NewNotificationMessage(n)
		body, err := msg.ToJSON()
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}

		publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		err = p.channel.PublishWithContext(
			publishCtx,
			p.exchange,
			msg.RoutingKey(),
			false, // mandatory
			false, // immediate
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				MessageId:    msg.ID,
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
		cancel()
		if err != nil {
			return fmt.Errorf("publish notification %s: %w", msg.ID, err)
		}

		logrus.WithFields(logrus.Fields{
			"notificationID": msg.ID,
			"exchange":       p.exchange,
			"routingKey":     msg.RoutingKey(),
		}).Debug("Publisher.PublishNotifications.published")
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

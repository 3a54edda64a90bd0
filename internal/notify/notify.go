// Package notify announces delivery status changes.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"fooddelivery/internal/model"
)

const DefaultExchange = "delivery_status_fanout"

type StatusChange struct {
	OrderID   string       `json:"order_id"`
	OldStatus model.Status `json:"old_status"`
	NewStatus model.Status `json:"new_status"`
	Completed bool         `json:"completed"`
	Timestamp time.Time    `json:"timestamp"`
}

type Notifier interface {
	StatusChanged(ctx context.Context, c StatusChange) error
}

// Publisher is satisfied by *Client.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table, contentType string, persistent bool) error
}

type AMQPNotifier struct {
	pub      Publisher
	exchange string
}

var _ Notifier = (*AMQPNotifier)(nil)

func NewAMQPNotifier(pub Publisher, exchange string) *AMQPNotifier {
	return &AMQPNotifier{pub: pub, exchange: exchange}
}

func (n *AMQPNotifier) StatusChanged(ctx context.Context, c StatusChange) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal status change: %w", err)
	}

	headers := amqp.Table{"order_id": c.OrderID}
	if err := n.pub.Publish(ctx, n.exchange, "", body, headers, "application/json", false); err != nil {
		return fmt.Errorf("publish status change: %w", err)
	}
	return nil
}

// LogNotifier writes status changes to the default logger.
type LogNotifier struct{}

var _ Notifier = LogNotifier{}

func (LogNotifier) StatusChanged(ctx context.Context, c StatusChange) error {
	slog.InfoContext(ctx, "delivery status changed",
		"order_id", c.OrderID,
		"old_status", c.OldStatus,
		"new_status", c.NewStatus,
		"completed", c.Completed,
	)
	return nil
}

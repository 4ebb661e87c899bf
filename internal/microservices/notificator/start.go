package notificator

import (
	"context"
	"encoding/json"

	"dining-system/internal/common/logger"
	"dining-system/internal/connections/rabbitmq"
)

// Run consumes dining lifecycle events from the notifications queue and
// logs them. Floor and kitchen displays hang off this stream.
func Run(ctx context.Context, rmq *rabbitmq.Client) error {
	lg := logger.New("notification-subscriber")

	msgs, err := rmq.Consume(rabbitmq.QueueNotifications, "notificator", 1)
	if err != nil {
		return err
	}
	lg.Info("subscribed", map[string]any{"queue": rabbitmq.QueueNotifications})

	for {
		select {
		case <-ctx.Done():
			lg.Info("graceful_shutdown", nil)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			var payload map[string]any
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				lg.Error("event_decode_failed", err, nil)
				_ = d.Nack(false, false)
				continue
			}
			lg.Info("event_received", payload)
			_ = d.Ack(false)
		}
	}
}

package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/delivery"
	"fooddelivery/internal/model"
	"fooddelivery/internal/notify"
)

type DeliveryLister interface {
	ListDeliveries(ctx context.Context) ([]model.DeliveryRecord, error)
}

// DeliveryTracker periodically re-fetches deliveries and announces every
// status that differs from the previous poll.
type DeliveryTracker struct {
	deliveries DeliveryLister
	notifier   notify.Notifier
	interval   time.Duration
	now        func() time.Time

	seeded bool
	last   map[string]model.Status
}

func NewDeliveryTracker(deliveries DeliveryLister, notifier notify.Notifier, interval time.Duration) *DeliveryTracker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &DeliveryTracker{
		deliveries: deliveries,
		notifier:   notifier,
		interval:   interval,
		now:        time.Now,
		last:       make(map[string]model.Status),
	}
}

func (w *DeliveryTracker) Start(ctx context.Context) {
	slog.Info("starting delivery tracker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if err := w.poll(ctx); err != nil {
		slog.Error("delivery poll failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("delivery tracker stopped")
			return
		case <-ticker.C:
			if err := w.poll(ctx); err != nil {
				slog.Error("delivery poll failed", "error", err)
			}
		}
	}
}

func (w *DeliveryTracker) poll(ctx context.Context) error {
	records, err := w.deliveries.ListDeliveries(ctx)
	if err != nil {
		return fmt.Errorf("list deliveries: %w", err)
	}

	active, completed := delivery.Classify(records)
	slog.Debug("deliveries polled", "active", len(active), "completed", len(completed))

	current := make(map[string]model.Status, len(records))
	for _, r := range records {
		current[r.OrderID] = r.Status

		prev, known := w.last[r.OrderID]
		if !w.seeded || (known && prev == r.Status) {
			continue
		}

		change := notify.StatusChange{
			OrderID:   r.OrderID,
			OldStatus: prev,
			NewStatus: r.Status,
			Completed: delivery.IsCompleted(r.Status),
			Timestamp: w.now(),
		}
		if err := w.notifier.StatusChanged(ctx, change); err != nil {
			slog.Error("failed to notify status change", "order_id", r.OrderID, "error", err)
		}
	}

	w.last = current
	w.seeded = true
	return nil
}

// Package worker runs the periodic budget alert evaluation loop.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/services"
)

// AlertPublisher sends budget alert messages downstream.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}

// Pruner removes stale dismissal records.
type Pruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// dismissalRetention is how long dismissal records are kept. Alert
// ids are month-scoped, so anything older can never match again.
const dismissalRetention = 90 * 24 * time.Hour

// AlertWorker periodically evaluates the current month's budgets and
// publishes a message for every category that crossed its ceiling.
// Each category publishes at most once per month.
type AlertWorker struct {
	alerts    *services.AlertService
	publisher AlertPublisher
	pruner    Pruner
	interval  time.Duration

	mu        sync.Mutex
	published map[string]struct{}
}

// NewAlertWorker creates a worker. publisher may be nil, in which
// case alerts are only logged; pruner may be nil to skip pruning.
func NewAlertWorker(alerts *services.AlertService, publisher AlertPublisher, pruner Pruner, interval time.Duration) *AlertWorker {
	return &AlertWorker{
		alerts:    alerts,
		publisher: publisher,
		pruner:    pruner,
		interval:  interval,
		published: make(map[string]struct{}),
	}
}

// Run evaluates immediately, then on every tick until ctx ends.
func (w *AlertWorker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Starting alert worker", "interval", w.interval)

	if err := w.RunOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Alert evaluation failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping alert worker", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Alert evaluation failed", "error", err)
			}
		}
	}
}

// RunOnce evaluates budgets once and publishes new over-budget
// alerts, skipping anything the user has already dismissed.
func (w *AlertWorker) RunOnce(ctx context.Context) error {
	items, err := w.alerts.UndismissedOverBudget(ctx)
	if err != nil {
		return err
	}

	month := time.Now().Format("2006-01")
	for _, item := range items {
		key := string(item.CategoryID) + "/" + month
		if w.alreadyPublished(key) {
			continue
		}

		msg := &amqp.BudgetAlertMessage{
			CategoryID: item.CategoryID,
			Category:   item.Category,
			Budget:     item.Budget,
			Spent:      item.Spent,
			Percentage: item.Percentage,
			OverBudget: true,
			Timestamp:  time.Now(),
		}

		if w.publisher == nil {
			slog.WarnContext(ctx, "AMQP not configured, logging alert only",
				"category", item.Category,
				"spent", item.Spent,
				"budget", item.Budget)
			w.markPublished(key)
			continue
		}

		if err := w.publisher.PublishBudgetAlert(ctx, msg); err != nil {
			// Leave the key unmarked so the next tick retries.
			slog.ErrorContext(ctx, "Failed to publish budget alert",
				"category", item.Category, "error", err)
			continue
		}
		w.markPublished(key)
	}

	if w.pruner != nil {
		if n, err := w.pruner.Prune(ctx, time.Now().Add(-dismissalRetention)); err != nil {
			slog.ErrorContext(ctx, "Failed to prune dismissals", "error", err)
		} else if n > 0 {
			slog.InfoContext(ctx, "Pruned stale dismissals", "count", n)
		}
	}

	return nil
}

func (w *AlertWorker) alreadyPublished(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.published[key]
	return ok
}

func (w *AlertWorker) markPublished(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.published[key] = struct{}{}
}

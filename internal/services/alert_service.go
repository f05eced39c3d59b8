package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// Alert is one budget notification shown in the notification tray.
type Alert struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}

// approachingThreshold is the budget percentage that starts warning
// before the ceiling is actually crossed.
const approachingThreshold = 80

// AlertStore persists which alert ids the user has dismissed.
type AlertStore interface {
	Dismiss(ctx context.Context, id string) error
	DismissedIDs(ctx context.Context) (map[string]struct{}, error)
}

// AlertService derives budget alerts from the current month's
// spending and filters out the ones the user already dismissed.
// Dismissals are keyed per category and month, so a category that
// runs over again next month alerts again.
type AlertService struct {
	snapshots *SnapshotService
	store     AlertStore
	now       func() time.Time
}

func NewAlertService(snapshots *SnapshotService, store AlertStore) *AlertService {
	return &AlertService{snapshots: snapshots, store: store, now: time.Now}
}

// CurrentBudgets evaluates budget progress for the current month.
func (s *AlertService) CurrentBudgets(ctx context.Context) ([]analytics.BudgetItem, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("current budgets: %w", err)
	}
	w := analytics.Window{Range: analytics.RangeThisMonth}
	windowed := analytics.Filter(snap.Transactions, w, s.now())
	return analytics.EvaluateBudgets(snap.Categories, windowed), nil
}

// Active returns the undismissed alerts for the current month.
func (s *AlertService) Active(ctx context.Context) ([]Alert, error) {
	items, err := s.CurrentBudgets(ctx)
	if err != nil {
		return nil, err
	}
	dismissed, err := s.store.DismissedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dismissed alerts: %w", err)
	}

	now := s.now()
	alerts := make([]Alert, 0, len(items))
	for _, item := range items {
		a, ok := buildAlert(item, now)
		if !ok {
			continue
		}
		if _, gone := dismissed[a.ID]; gone {
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// UndismissedOverBudget returns the current month's over-budget items
// whose alert id the user has not dismissed. The worker publishes
// from this list so a dismissed alert stays quiet downstream too.
func (s *AlertService) UndismissedOverBudget(ctx context.Context) ([]analytics.BudgetItem, error) {
	items, err := s.CurrentBudgets(ctx)
	if err != nil {
		return nil, err
	}
	dismissed, err := s.store.DismissedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dismissed alerts: %w", err)
	}

	now := s.now()
	out := make([]analytics.BudgetItem, 0, len(items))
	for _, item := range items {
		if !item.OverBudget {
			continue
		}
		if _, gone := dismissed[alertID(item.CategoryID, now)]; gone {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// Dismiss hides an alert id until its month rolls over.
func (s *AlertService) Dismiss(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("alert id is empty")
	}
	if err := s.store.Dismiss(ctx, id); err != nil {
		return fmt.Errorf("dismiss alert: %w", err)
	}
	return nil
}

// DismissAll hides every currently active alert.
func (s *AlertService) DismissAll(ctx context.Context) error {
	alerts, err := s.Active(ctx)
	if err != nil {
		return err
	}
	for _, a := range alerts {
		if err := s.store.Dismiss(ctx, a.ID); err != nil {
			return fmt.Errorf("dismiss alert %s: %w", a.ID, err)
		}
	}
	return nil
}

// alertID is month-scoped so a dismissal expires when the month
// rolls over.
func alertID(categoryID core.Ident, now time.Time) string {
	return fmt.Sprintf("alert-budget-%s-%s", categoryID, now.Format("2006-01"))
}

func buildAlert(item analytics.BudgetItem, now time.Time) (Alert, bool) {
	id := alertID(item.CategoryID, now)
	switch {
	case item.OverBudget:
		return Alert{
			ID:        id,
			Category:  item.Category,
			Message:   fmt.Sprintf("You have exceeded your %s budget: %.2f spent of %.2f.", item.Category, item.Spent, item.Budget),
			Severity:  "warning",
			CreatedAt: now,
		}, true
	case item.Ratio >= approachingThreshold:
		return Alert{
			ID:        id,
			Category:  item.Category,
			Message:   fmt.Sprintf("You have used %.0f%% of your %s budget.", item.Ratio, item.Category),
			Severity:  "info",
			CreatedAt: now,
		}, true
	default:
		return Alert{}, false
	}
}

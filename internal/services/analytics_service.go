package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// DashboardView is the full payload behind the dashboard page: totals,
// budget and goal progress, insights, and the latest activity for one
// time window.
type DashboardView struct {
	Period           string                    `json:"period"`
	TotalIncome      float64                   `json:"totalIncome"`
	TotalExpenses    float64                   `json:"totalExpenses"`
	NetBalance       float64                   `json:"netBalance"`
	TransactionCount int                       `json:"transactionCount"`
	Budgets          []analytics.BudgetItem    `json:"budgets"`
	Goals            []analytics.GoalProgress  `json:"goals"`
	Insights         []analytics.Insight       `json:"insights"`
	Categories       []analytics.CategorySlice `json:"categories"`
	Recent           []core.Transaction        `json:"recent"`
}

// recentLimit caps the dashboard's latest-activity list.
const recentLimit = 5

// ReportView is the payload behind the reports page: the chartable
// series for one time window.
type ReportView struct {
	Period        string                       `json:"period"`
	TotalIncome   float64                      `json:"totalIncome"`
	TotalExpenses float64                      `json:"totalExpenses"`
	NetBalance    float64                      `json:"netBalance"`
	Trend         []analytics.TrendPoint      `json:"trend"`
	Categories    []analytics.CategorySlice   `json:"categories"`
	Weekdays      []analytics.WeekdayTotal    `json:"weekdays"`
	Monthly       []analytics.MonthlyCategory `json:"monthly"`
}

// AnalyticsService turns cached snapshots into windowed views. The
// clock is injected so views are reproducible in tests.
type AnalyticsService struct {
	snapshots *SnapshotService
	now       func() time.Time
}

func NewAnalyticsService(snapshots *SnapshotService) *AnalyticsService {
	return &AnalyticsService{snapshots: snapshots, now: time.Now}
}

// Dashboard computes the dashboard view for one window.
func (s *AnalyticsService) Dashboard(ctx context.Context, w analytics.Window) (DashboardView, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return DashboardView{}, fmt.Errorf("dashboard: %w", err)
	}
	now := s.now()

	windowed := analytics.Filter(snap.Transactions, w, now)
	summary := analytics.Aggregate(windowed)

	return DashboardView{
		Period:           w.Label(),
		TotalIncome:      summary.TotalIncome,
		TotalExpenses:    summary.TotalExpenses,
		NetBalance:       summary.NetBalance,
		TransactionCount: len(windowed),
		Budgets:          analytics.EvaluateBudgets(snap.Categories, windowed),
		Goals:            analytics.EvaluateGoals(snap.Goals, windowed, now),
		Insights:         analytics.GenerateInsights(windowed, w, now),
		Categories:       analytics.CategoryBreakdown(windowed),
		Recent:           analytics.RecentTransactions(windowed, recentLimit),
	}, nil
}

// Report computes the reports view for one window.
func (s *AnalyticsService) Report(ctx context.Context, w analytics.Window) (ReportView, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return ReportView{}, fmt.Errorf("report: %w", err)
	}
	now := s.now()

	windowed := analytics.Filter(snap.Transactions, w, now)
	summary := analytics.Aggregate(windowed)

	return ReportView{
		Period:        w.Label(),
		TotalIncome:   summary.TotalIncome,
		TotalExpenses: summary.TotalExpenses,
		NetBalance:    summary.NetBalance,
		Trend:         analytics.SpendingTrend(windowed),
		Categories:    analytics.CategoryBreakdown(windowed),
		Weekdays:      analytics.WeekdaySpending(windowed),
		Monthly:       analytics.CategoryComparison(windowed),
	}, nil
}

// ExportKind selects which CSV layout an export uses.
type ExportKind string

const (
	ExportTransactions ExportKind = "transactions"
	ExportReport       ExportKind = "report"
)

// Export renders the windowed transactions as a downloadable CSV.
func (s *AnalyticsService) Export(ctx context.Context, kind ExportKind, w analytics.Window) (analytics.CSVExport, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return analytics.CSVExport{}, fmt.Errorf("export: %w", err)
	}

	windowed := analytics.Filter(snap.Transactions, w, s.now())
	switch kind {
	case ExportReport:
		return analytics.ReportCSV(windowed, w), nil
	default:
		return analytics.DashboardCSV(windowed, w), nil
	}
}

package analytics

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

// Severity classifies an insight for rendering.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Insight is one qualitative observation derived from the windowed
// aggregate. IDs are stable per rule so the presentation layer can
// key dismissals and styling on them.
type Insight struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// maxInsights caps the generated list; rules earlier in the order win.
const maxInsights = 4

// insightRule derives zero or one insight from a shared aggregate
// snapshot. Rules are independent: each sees the same inputs and
// never the output of another rule.
type insightRule func(txns []core.Transaction, s Summary, w Window, now time.Time) (Insight, bool)

// insightRules is the fixed evaluation order: net balance sign, top
// spending category, expense ratio, transaction frequency.
var insightRules = []insightRule{
	netBalanceRule,
	topCategoryRule,
	expenseRatioRule,
	frequencyRule,
}

// GenerateInsights evaluates the rule set over one windowed subset.
// An empty window yields no insights at all.
func GenerateInsights(txns []core.Transaction, w Window, now time.Time) []Insight {
	if len(txns) == 0 {
		return nil
	}
	s := Aggregate(txns)

	insights := make([]Insight, 0, maxInsights)
	for _, rule := range insightRules {
		if ins, ok := rule(txns, s, w, now); ok {
			insights = append(insights, ins)
			if len(insights) == maxInsights {
				break
			}
		}
	}
	return insights
}

func netBalanceRule(_ []core.Transaction, s Summary, _ Window, _ time.Time) (Insight, bool) {
	switch {
	case s.NetBalance > 0:
		return Insight{
			ID:          "net-positive",
			Title:       "Positive Net Balance",
			Description: fmt.Sprintf("You have a positive net balance of %.2f for this period.", s.NetBalance),
			Severity:    SeverityPositive,
		}, true
	case s.NetBalance < 0:
		return Insight{
			ID:          "net-negative",
			Title:       "Negative Net Balance",
			Description: fmt.Sprintf("Your expenses exceed income by %.2f for this period.", -s.NetBalance),
			Severity:    SeverityWarning,
		}, true
	default:
		return Insight{}, false
	}
}

func topCategoryRule(txns []core.Transaction, s Summary, _ Window, _ time.Time) (Insight, bool) {
	name, amount, ok := TopExpenseCategory(CategorySpending(txns))
	if !ok {
		return Insight{}, false
	}
	var share float64
	if s.TotalExpenses > 0 {
		share = amount / s.TotalExpenses * 100
	}
	return Insight{
		ID:          "top-category",
		Title:       "Top Spending Category",
		Description: fmt.Sprintf("%s accounts for %.1f%% of your total expenses (%.2f).", name, share, amount),
		Severity:    SeverityInfo,
	}, true
}

func expenseRatioRule(_ []core.Transaction, s Summary, _ Window, _ time.Time) (Insight, bool) {
	if s.TotalIncome <= 0 || s.TotalExpenses <= 0 {
		return Insight{}, false
	}
	ratio := s.TotalExpenses / s.TotalIncome * 100
	switch {
	case ratio > 90:
		return Insight{
			ID:          "high-expense-ratio",
			Title:       "High Expense Ratio",
			Description: fmt.Sprintf("Your expenses are %.1f%% of your income. Consider reducing spending to improve savings.", ratio),
			Severity:    SeverityWarning,
		}, true
	case ratio < 70:
		return Insight{
			ID:          "good-expense-ratio",
			Title:       "Good Expense Management",
			Description: fmt.Sprintf("Your expenses are only %.1f%% of your income. Great job managing your finances!", ratio),
			Severity:    SeverityPositive,
		}, true
	default:
		return Insight{}, false
	}
}

func frequencyRule(txns []core.Transaction, _ Summary, w Window, now time.Time) (Insight, bool) {
	days := w.Days(now)
	if days < 1 {
		days = 1
	}
	avg := float64(len(txns)) / float64(days)
	if avg <= 3 {
		return Insight{}, false
	}
	return Insight{
		ID:          "high-frequency",
		Title:       "High Transaction Frequency",
		Description: fmt.Sprintf("You're averaging %.1f transactions per day. Consider consolidating smaller purchases.", avg),
		Severity:    SeverityInfo,
	}, true
}

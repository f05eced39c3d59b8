package analytics

import (
	"math"
	"sort"
	"strings"

	"fintrack/internal/core"
)

// DayTotals holds the income and expense magnitudes booked on one day.
type DayTotals struct {
	Income  float64
	Expense float64
}

// Summary is the aggregate view of one transaction subset. Bucket maps
// are keyed by resolved category display name and by ISO date/month
// keys, which sort chronologically; use Days and Months for ordered
// traversal.
type Summary struct {
	TotalIncome   float64
	TotalExpenses float64
	NetBalance    float64

	// ByCategory groups transactions under their resolved display
	// name. Names that differ only by case share one bucket keyed by
	// the first-seen spelling.
	ByCategory map[string][]core.Transaction

	// ByDay buckets income/expense magnitudes per "2006-01-02" key.
	ByDay map[string]DayTotals

	// ByMonth holds the net balance per "2006-01" key.
	ByMonth map[string]float64
}

// abs normalizes a stored amount to its magnitude. Amount signs vary
// by backend entry path; TransactionType is the only sign-of-truth.
func abs(t core.Transaction) float64 {
	v := math.Abs(t.Amount.Float())
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Aggregate computes totals and buckets for a transaction subset.
// It is deterministic: the same input always yields the same Summary.
func Aggregate(txns []core.Transaction) Summary {
	s := Summary{
		ByCategory: make(map[string][]core.Transaction),
		ByDay:      make(map[string]DayTotals),
		ByMonth:    make(map[string]float64),
	}

	// canonical maps case-folded display names to the first-seen
	// spelling so differently-cased duplicates bucket together.
	canonical := make(map[string]string)

	for _, t := range txns {
		amount := abs(t)
		dayKey := t.Date.Format("2006-01-02")
		monthKey := t.Date.Format("2006-01")

		day := s.ByDay[dayKey]
		switch t.Type {
		case core.Income:
			s.TotalIncome += amount
			day.Income += amount
			s.ByMonth[monthKey] += amount
		case core.Expense:
			s.TotalExpenses += amount
			day.Expense += amount
			s.ByMonth[monthKey] -= amount
		}
		s.ByDay[dayKey] = day

		name := bucketName(canonical, t.Category)
		s.ByCategory[name] = append(s.ByCategory[name], t)
	}

	s.NetBalance = s.TotalIncome - s.TotalExpenses
	return s
}

// Days returns the ByDay keys in chronological order.
func (s Summary) Days() []string {
	return sortedKeys(s.ByDay)
}

// Months returns the ByMonth keys in chronological order.
func (s Summary) Months() []string {
	return sortedKeys(s.ByMonth)
}

// CategorySpending totals expense magnitudes per resolved category
// name, with the same case-folded bucketing as Aggregate.
func CategorySpending(txns []core.Transaction) map[string]float64 {
	canonical := make(map[string]string)
	spending := make(map[string]float64)
	for _, t := range txns {
		if t.Type != core.Expense {
			continue
		}
		spending[bucketName(canonical, t.Category)] += abs(t)
	}
	return spending
}

// TopExpenseCategory returns the category with the highest expense
// total. Ties break toward the lexicographically smaller name so the
// result is stable across runs. ok is false when there is no spending.
func TopExpenseCategory(spending map[string]float64) (name string, amount float64, ok bool) {
	for n, v := range spending {
		if v > amount || (v == amount && ok && n < name) {
			name, amount = n, v
			ok = true
		}
	}
	if amount <= 0 {
		return "", 0, false
	}
	return name, amount, true
}

// RecentTransactions returns the n newest transactions by date,
// newest first. Equal dates keep their input order.
func RecentTransactions(txns []core.Transaction, n int) []core.Transaction {
	out := append([]core.Transaction(nil), txns...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// bucketName resolves a category reference to its bucket key,
// folding case but preserving the first-seen spelling.
func bucketName(canonical map[string]string, ref core.CategoryRef) string {
	display := ref.DisplayName()
	folded := strings.ToLower(display)
	if first, seen := canonical[folded]; seen {
		return first
	}
	canonical[folded] = display
	return display
}

// sortedKeys sorts ISO-formatted keys; lexical order on these keys is
// chronological order, unlike formatted month labels.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package analytics

import (
	"sort"

	"fintrack/internal/core"
)

// TrendPoint is one day on the spending trend line.
type TrendPoint struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// CategorySlice is one category's share of total expense spending.
type CategorySlice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// WeekdayTotal is the expense total booked on one day of the week.
type WeekdayTotal struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
}

// MonthlyCategory is one category's expense total within one month.
type MonthlyCategory struct {
	Month    string  `json:"month"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// SpendingTrend returns per-day income, expense, and net points in
// chronological order.
func SpendingTrend(txns []core.Transaction) []TrendPoint {
	s := Aggregate(txns)
	days := s.Days()
	points := make([]TrendPoint, 0, len(days))
	for _, day := range days {
		totals := s.ByDay[day]
		points = append(points, TrendPoint{
			Date:    day,
			Income:  totals.Income,
			Expense: totals.Expense,
			Net:     totals.Income - totals.Expense,
		})
	}
	return points
}

// breakdownLimit caps the category breakdown at the biggest spenders.
const breakdownLimit = 8

// CategoryBreakdown returns expense totals per category, largest
// first, truncated to the top spenders. Ties break alphabetically.
func CategoryBreakdown(txns []core.Transaction) []CategorySlice {
	spending := CategorySpending(txns)
	slices := make([]CategorySlice, 0, len(spending))
	for name, amount := range spending {
		slices = append(slices, CategorySlice{Category: name, Amount: amount})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Amount != slices[j].Amount {
			return slices[i].Amount > slices[j].Amount
		}
		return slices[i].Category < slices[j].Category
	})
	if len(slices) > breakdownLimit {
		slices = slices[:breakdownLimit]
	}
	return slices
}

var weekdayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdaySpending returns expense totals per day of the week, Monday
// through Sunday, including zero days.
func WeekdaySpending(txns []core.Transaction) []WeekdayTotal {
	totals := make(map[string]float64, len(weekdayOrder))
	for _, t := range txns {
		if t.Type != core.Expense || t.Date.IsZero() {
			continue
		}
		totals[t.Date.Weekday().String()[:3]] += abs(t)
	}
	out := make([]WeekdayTotal, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		out = append(out, WeekdayTotal{Day: day, Amount: totals[day]})
	}
	return out
}

// CategoryComparison returns per-month expense totals per category,
// ordered by month then category so consumers can pivot it directly.
func CategoryComparison(txns []core.Transaction) []MonthlyCategory {
	type key struct {
		month    string
		category string
	}
	canonical := make(map[string]string)
	totals := make(map[key]float64)
	for _, t := range txns {
		if t.Type != core.Expense || t.Date.IsZero() {
			continue
		}
		k := key{
			month:    t.Date.Format("2006-01"),
			category: bucketName(canonical, t.Category),
		}
		totals[k] += abs(t)
	}

	out := make([]MonthlyCategory, 0, len(totals))
	for k, amount := range totals {
		out = append(out, MonthlyCategory{Month: k.month, Category: k.category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out
}

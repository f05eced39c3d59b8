package analytics

import (
	"reflect"
	"testing"
	"time"

	"fintrack/internal/core"
)

func tx(date core.Date, desc string, amount float64, typ core.TransactionType, cat core.CategoryRef) core.Transaction {
	return core.Transaction{
		Date:        date,
		Description: desc,
		Amount:      core.Decimal(amount),
		Type:        typ,
		Category:    cat,
	}
}

func TestAggregateTotals(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "salary", 100, core.Income, core.StringRef("Salary")),
		tx(core.NewDate(2024, time.March, 2), "groceries", 40, core.Expense, core.StringRef("Food")),
	}

	s := Aggregate(txns)
	if s.TotalIncome != 100 {
		t.Errorf("TotalIncome = %v, want 100", s.TotalIncome)
	}
	if s.TotalExpenses != 40 {
		t.Errorf("TotalExpenses = %v, want 40", s.TotalExpenses)
	}
	if s.NetBalance != 60 {
		t.Errorf("NetBalance = %v, want 60", s.NetBalance)
	}
	if got := len(s.ByCategory["Food"]); got != 1 {
		t.Errorf("ByCategory[Food] has %d entries, want 1", got)
	}
}

func TestAggregateNegativeAmounts(t *testing.T) {
	// Stored signs vary by entry path; only the type decides the side.
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "refund", -100, core.Income, core.StringRef("Misc")),
		tx(core.NewDate(2024, time.March, 2), "rent", -500, core.Expense, core.StringRef("Housing")),
	}

	s := Aggregate(txns)
	if s.TotalIncome != 100 {
		t.Errorf("TotalIncome = %v, want 100", s.TotalIncome)
	}
	if s.TotalExpenses != 500 {
		t.Errorf("TotalExpenses = %v, want 500", s.TotalExpenses)
	}
	if s.NetBalance != -400 {
		t.Errorf("NetBalance = %v, want -400", s.NetBalance)
	}
}

func TestAggregateCaseFoldedCategories(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "a", 10, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 2), "b", 20, core.Expense, core.StringRef("food")),
	}

	s := Aggregate(txns)
	if len(s.ByCategory) != 1 {
		t.Fatalf("ByCategory has %d buckets, want 1", len(s.ByCategory))
	}
	if got := len(s.ByCategory["Food"]); got != 2 {
		t.Errorf("ByCategory[Food] has %d entries, want 2 under first-seen spelling", got)
	}
}

func TestAggregateDayAndMonthBuckets(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "salary", 100, core.Income, core.StringRef("Salary")),
		tx(core.NewDate(2024, time.March, 1), "lunch", 15, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.April, 3), "dinner", 25, core.Expense, core.StringRef("Food")),
	}

	s := Aggregate(txns)
	day := s.ByDay["2024-03-01"]
	if day.Income != 100 || day.Expense != 15 {
		t.Errorf("ByDay[2024-03-01] = %+v, want income 100 expense 15", day)
	}
	if got := s.ByMonth["2024-03"]; got != 85 {
		t.Errorf("ByMonth[2024-03] = %v, want 85", got)
	}
	if got := s.ByMonth["2024-04"]; got != -25 {
		t.Errorf("ByMonth[2024-04] = %v, want -25", got)
	}
	if got := s.Days(); !reflect.DeepEqual(got, []string{"2024-03-01", "2024-04-03"}) {
		t.Errorf("Days() = %v", got)
	}
	if got := s.Months(); !reflect.DeepEqual(got, []string{"2024-03", "2024-04"}) {
		t.Errorf("Months() = %v", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.TotalIncome != 0 || s.TotalExpenses != 0 || s.NetBalance != 0 {
		t.Errorf("empty aggregate = %+v, want zero totals", s)
	}
	if len(s.ByCategory) != 0 || len(s.ByDay) != 0 || len(s.ByMonth) != 0 {
		t.Error("empty aggregate should have empty buckets")
	}
}

func TestCategorySpending(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "salary", 1000, core.Income, core.StringRef("Salary")),
		tx(core.NewDate(2024, time.March, 2), "lunch", 15, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 3), "dinner", 25, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 4), "bus", 5, core.Expense, core.StringRef("Transport")),
	}

	spending := CategorySpending(txns)
	want := map[string]float64{"Food": 40, "Transport": 5}
	if !reflect.DeepEqual(spending, want) {
		t.Errorf("CategorySpending = %v, want %v", spending, want)
	}
}

func TestTopExpenseCategory(t *testing.T) {
	tests := []struct {
		name       string
		spending   map[string]float64
		wantName   string
		wantAmount float64
		wantOK     bool
	}{
		{"largest wins", map[string]float64{"Food": 40, "Transport": 5}, "Food", 40, true},
		{"tie breaks alphabetically", map[string]float64{"Food": 40, "Bills": 40}, "Bills", 40, true},
		{"no spending", map[string]float64{}, "", 0, false},
		{"zero amounts", map[string]float64{"Food": 0}, "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, amount, ok := TopExpenseCategory(tt.spending)
			if name != tt.wantName || amount != tt.wantAmount || ok != tt.wantOK {
				t.Errorf("TopExpenseCategory = (%q, %v, %v), want (%q, %v, %v)",
					name, amount, ok, tt.wantName, tt.wantAmount, tt.wantOK)
			}
		})
	}
}

func TestRecentTransactions(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "oldest", 10, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 9), "middle", 10, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 20), "newest", 10, core.Expense, core.StringRef("Food")),
	}

	recent := RecentTransactions(txns, 2)
	if len(recent) != 2 || recent[0].Description != "newest" || recent[1].Description != "middle" {
		t.Errorf("RecentTransactions = %+v, want the two newest first", recent)
	}
	if txns[0].Description != "oldest" {
		t.Error("RecentTransactions mutated its input")
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "in window", 10, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2023, time.March, 1), "out of window", 10, core.Expense, core.StringRef("Food")),
	}

	got := Filter(txns, Window{Range: RangeThisMonth}, now)
	if len(got) != 1 || got[0].Description != "in window" {
		t.Fatalf("Filter = %v, want only the in-window entry", got)
	}
	if len(txns) != 2 {
		t.Error("Filter mutated its input")
	}
}

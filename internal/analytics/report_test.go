package analytics

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestSpendingTrend(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 2), "lunch", 15, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 1), "salary", 100, core.Income, core.StringRef("Salary")),
		tx(core.NewDate(2024, time.March, 1), "coffee", 5, core.Expense, core.StringRef("Food")),
	}

	got := SpendingTrend(txns)
	want := []TrendPoint{
		{Date: "2024-03-01", Income: 100, Expense: 5, Net: 95},
		{Date: "2024-03-02", Income: 0, Expense: 15, Net: -15},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SpendingTrend = %v, want %v", got, want)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "rent", 500, core.Expense, core.StringRef("Housing")),
		tx(core.NewDate(2024, time.March, 2), "lunch", 40, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 3), "bus", 40, core.Expense, core.StringRef("Transport")),
		tx(core.NewDate(2024, time.March, 4), "salary", 1000, core.Income, core.StringRef("Salary")),
	}

	got := CategoryBreakdown(txns)
	want := []CategorySlice{
		{Category: "Housing", Amount: 500},
		{Category: "Food", Amount: 40},
		{Category: "Transport", Amount: 40},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryBreakdown = %v, want %v", got, want)
	}
}

func TestCategoryBreakdownTruncates(t *testing.T) {
	var txns []core.Transaction
	for i := 0; i < 12; i++ {
		txns = append(txns, tx(core.NewDate(2024, time.March, 1), "x",
			float64(100-i), core.Expense, core.StringRef(fmt.Sprintf("Cat%02d", i))))
	}

	got := CategoryBreakdown(txns)
	if len(got) != breakdownLimit {
		t.Fatalf("got %d slices, want %d", len(got), breakdownLimit)
	}
	if got[0].Category != "Cat00" || got[0].Amount != 100 {
		t.Errorf("largest slice = %+v", got[0])
	}
}

func TestWeekdaySpending(t *testing.T) {
	txns := []core.Transaction{
		// 2024-03-04 is a Monday.
		tx(core.NewDate(2024, time.March, 4), "lunch", 10, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 11), "lunch", 15, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 9), "brunch", 30, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 4), "salary", 500, core.Income, core.StringRef("Salary")),
	}

	got := WeekdaySpending(txns)
	if len(got) != 7 {
		t.Fatalf("got %d days, want 7", len(got))
	}
	if got[0].Day != "Mon" || got[0].Amount != 25 {
		t.Errorf("Monday = %+v, want 25", got[0])
	}
	if got[5].Day != "Sat" || got[5].Amount != 30 {
		t.Errorf("Saturday = %+v, want 30", got[5])
	}
	if got[6].Day != "Sun" || got[6].Amount != 0 {
		t.Errorf("Sunday = %+v, want zero entry", got[6])
	}
}

func TestCategoryComparison(t *testing.T) {
	txns := []core.Transaction{
		tx(core.NewDate(2024, time.April, 1), "lunch", 20, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 1), "rent", 500, core.Expense, core.StringRef("Housing")),
		tx(core.NewDate(2024, time.March, 2), "lunch", 15, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 3), "dinner", 25, core.Expense, core.StringRef("food")),
	}

	got := CategoryComparison(txns)
	want := []MonthlyCategory{
		{Month: "2024-03", Category: "Food", Amount: 40},
		{Month: "2024-03", Category: "Housing", Amount: 500},
		{Month: "2024-04", Category: "Food", Amount: 20},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryComparison = %v, want %v", got, want)
	}
}

package analytics

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestEvaluateBudgets(t *testing.T) {
	food := core.Category{ID: "1", CategoryName: "Food", Budget: 100}
	transport := core.Category{ID: "2", CategoryName: "Transport", Budget: 50}

	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "groceries", 80, core.Expense, food.Ref()),
		tx(core.NewDate(2024, time.March, 2), "dinner", 70, core.Expense, food.Ref()),
		tx(core.NewDate(2024, time.March, 3), "bus", 20, core.Expense, transport.Ref()),
		tx(core.NewDate(2024, time.March, 4), "salary", 500, core.Income, food.Ref()),
	}

	items := EvaluateBudgets([]core.Category{food, transport}, txns)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	got := items[0]
	if got.Category != "Food" || got.Spent != 150 || got.Budget != 100 {
		t.Errorf("food item = %+v", got)
	}
	if got.Percentage != 100 {
		t.Errorf("food Percentage = %v, want clamped 100", got.Percentage)
	}
	if got.Ratio != 150 {
		t.Errorf("food Ratio = %v, want 150", got.Ratio)
	}
	if !got.OverBudget {
		t.Error("food should be over budget")
	}

	got = items[1]
	if got.Spent != 20 || got.Percentage != 40 || got.OverBudget {
		t.Errorf("transport item = %+v", got)
	}
}

func TestEvaluateBudgetsSkipsUntracked(t *testing.T) {
	cats := []core.Category{
		{ID: "1", CategoryName: "No budget"},
		{ID: "2", CategoryName: "Zero", Budget: 0},
		{ID: "3", CategoryName: "Negative", Budget: -10},
		{ID: "", CategoryName: "No id", Budget: 100},
		{ID: "4", CategoryName: "", Budget: 100},
		{ID: "5", CategoryName: "Tracked", Budget: 100},
	}

	items := EvaluateBudgets(cats, nil)
	if len(items) != 1 {
		t.Fatalf("got %d items, want only the tracked category", len(items))
	}
	if items[0].Category != "Tracked" || items[0].Spent != 0 {
		t.Errorf("item = %+v", items[0])
	}
}

func TestEvaluateBudgetsIgnoresBareStringCategories(t *testing.T) {
	food := core.Category{ID: "1", CategoryName: "Food", Budget: 100}
	txns := []core.Transaction{
		// Name matches but there is no category id to join on.
		tx(core.NewDate(2024, time.March, 1), "lunch", 30, core.Expense, core.StringRef("Food")),
		tx(core.NewDate(2024, time.March, 2), "dinner", 40, core.Expense, food.Ref()),
	}

	items := EvaluateBudgets([]core.Category{food}, txns)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Spent != 40 {
		t.Errorf("Spent = %v, want 40 from the structured match only", items[0].Spent)
	}
}

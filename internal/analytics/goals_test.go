package analytics

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func datePtr(d core.Date) *core.Date { return &d }

func refPtr(r core.CategoryRef) *core.CategoryRef { return &r }

func TestEvaluateGoals(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	savings := core.StructuredRef("7", "Savings", 0)

	txns := []core.Transaction{
		tx(core.NewDate(2024, time.March, 1), "transfer", 200, core.Income, savings),
		tx(core.NewDate(2024, time.March, 5), "transfer", 100, core.Income, savings),
		tx(core.NewDate(2024, time.March, 6), "withdrawal", 50, core.Expense, savings),
		tx(core.NewDate(2024, time.March, 7), "salary", 1000, core.Income, core.StringRef("Salary")),
	}

	goals := []core.SavingsGoal{
		{Name: "Vacation", TargetAmount: 1000, CurrentAmount: 400, Category: refPtr(savings)},
		{Name: "Done", TargetAmount: 500, CurrentAmount: 500},
		{Name: "Overdue", TargetAmount: 500, CurrentAmount: 100,
			TargetDate: datePtr(core.NewDate(2024, time.January, 1))},
		{Name: "Future", TargetAmount: 500, CurrentAmount: 100,
			TargetDate: datePtr(core.NewDate(2025, time.January, 1))},
	}

	out := EvaluateGoals(goals, txns, now)
	if len(out) != 4 {
		t.Fatalf("got %d results, want 4", len(out))
	}

	vacation := out[0]
	if vacation.PeriodAmount != 300 {
		t.Errorf("vacation PeriodAmount = %v, want 300 from income only", vacation.PeriodAmount)
	}
	if vacation.Progress != 40 || vacation.Ratio != 40 {
		t.Errorf("vacation progress = %v ratio = %v, want 40", vacation.Progress, vacation.Ratio)
	}
	if vacation.IsCompleted || vacation.IsOverdue {
		t.Errorf("vacation flags = %+v", vacation)
	}

	done := out[1]
	if !done.IsCompleted {
		t.Error("goal at target should be completed")
	}
	if done.PeriodAmount != 0 {
		t.Errorf("goal without category PeriodAmount = %v, want 0", done.PeriodAmount)
	}

	if !out[2].IsOverdue {
		t.Error("past target date on an incomplete goal should be overdue")
	}
	if out[3].IsOverdue {
		t.Error("future target date should not be overdue")
	}
}

func TestEvaluateGoalsZeroTarget(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	goals := []core.SavingsGoal{{Name: "No target", TargetAmount: 0, CurrentAmount: 50}}

	out := EvaluateGoals(goals, nil, now)
	if len(out) != 1 {
		t.Fatalf("got %d results, want 1", len(out))
	}
	if out[0].Progress != 0 || out[0].Ratio != 0 {
		t.Errorf("zero target progress = %v ratio = %v, want 0", out[0].Progress, out[0].Ratio)
	}
	if !out[0].IsCompleted {
		t.Error("current >= zero target counts as completed")
	}
}

func TestEvaluateGoalsProgressClamp(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	goals := []core.SavingsGoal{{Name: "Overshot", TargetAmount: 100, CurrentAmount: 250}}

	out := EvaluateGoals(goals, nil, now)
	if out[0].Progress != 100 {
		t.Errorf("Progress = %v, want clamped 100", out[0].Progress)
	}
	if out[0].Ratio != 250 {
		t.Errorf("Ratio = %v, want unclamped 250", out[0].Ratio)
	}
}

func TestEvaluateGoalsCompletedNeverOverdue(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	goals := []core.SavingsGoal{{
		Name: "Finished late", TargetAmount: 100, CurrentAmount: 100,
		TargetDate: datePtr(core.NewDate(2024, time.January, 1)),
	}}

	out := EvaluateGoals(goals, nil, now)
	if out[0].IsOverdue {
		t.Error("completed goal must not be overdue")
	}
}

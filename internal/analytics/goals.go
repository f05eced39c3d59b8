package analytics

import (
	"math"
	"time"

	"fintrack/internal/core"
)

// GoalProgress is the evaluated state of one savings goal within the
// active window. Progress is clamped to [0,100]; Ratio is not.
type GoalProgress struct {
	Goal core.SavingsGoal `json:"goal"`

	// PeriodAmount sums the windowed income transactions whose
	// category matches the goal's category.
	PeriodAmount float64 `json:"periodAmount"`

	Progress    float64 `json:"progress"`
	Ratio       float64 `json:"ratio"`
	IsCompleted bool    `json:"isCompleted"`
	IsOverdue   bool    `json:"isOverdue"`
}

// EvaluateGoals computes progress for every goal. txns is expected to
// be the already-windowed transaction subset; only income entries
// contribute. A goal with no category, or whose category matches no
// transaction, simply reports a zero period amount.
func EvaluateGoals(goals []core.SavingsGoal, txns []core.Transaction, now time.Time) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		var period float64
		if g.Category != nil && !g.Category.IsZero() {
			for _, t := range txns {
				if t.Type != core.Income {
					continue
				}
				if t.Category.Same(*g.Category) {
					period += abs(t)
				}
			}
		}

		target := g.TargetAmount.Float()
		current := g.CurrentAmount.Float()

		var ratio float64
		if target > 0 {
			ratio = current / target * 100
		}

		completed := current >= target
		overdue := g.TargetDate != nil && !g.TargetDate.IsZero() &&
			g.TargetDate.Before(now) && !completed

		out = append(out, GoalProgress{
			Goal:         g,
			PeriodAmount: period,
			Progress:     math.Min(ratio, 100),
			Ratio:        ratio,
			IsCompleted:  completed,
			IsOverdue:    overdue,
		})
	}
	return out
}

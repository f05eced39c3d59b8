package analytics

import (
	"math"

	"fintrack/internal/core"
)

// BudgetItem reports spending against one budgeted category.
// Percentage is clamped to [0,100] for progress bars; Ratio keeps the
// unclamped value so "150% of budget" remains expressible in text.
type BudgetItem struct {
	CategoryID core.Ident `json:"categoryId"`
	Category   string     `json:"category"`
	Budget     float64    `json:"budget"`
	Spent      float64    `json:"spent"`
	Percentage float64    `json:"percentage"`
	Ratio      float64    `json:"ratio"`
	OverBudget bool       `json:"overBudget"`
}

// EvaluateBudgets joins category budget ceilings against expense
// transactions. Categories without a positive numeric budget, or
// without an id and a name, are not budget-tracked and produce no
// item. Only structured transaction categories can match: budgets
// require a canonical category id, so bare-string expense categories
// are silently excluded. Output order follows the input categories.
func EvaluateBudgets(categories []core.Category, txns []core.Transaction) []BudgetItem {
	items := make([]BudgetItem, 0, len(categories))
	for _, cat := range categories {
		budget := cat.Budget.Float()
		if cat.ID == "" || cat.CategoryName == "" || math.IsNaN(budget) || budget <= 0 {
			continue
		}

		var spent float64
		for _, t := range txns {
			if t.Type != core.Expense {
				continue
			}
			if t.Category.MatchesID(cat.ID) {
				spent += abs(t)
			}
		}

		ratio := spent / budget * 100
		items = append(items, BudgetItem{
			CategoryID: cat.ID,
			Category:   cat.CategoryName,
			Budget:     budget,
			Spent:      spent,
			Percentage: math.Min(ratio, 100),
			Ratio:      ratio,
			OverBudget: spent > budget,
		})
	}
	return items
}

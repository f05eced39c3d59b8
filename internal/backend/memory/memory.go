// Package memory is an in-process backend adapter seeded from local
// JSON files. It serves development and tests without a running REST
// backend.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fintrack/internal/core"
)

type Store struct {
	mu    sync.Mutex
	txns  []core.Transaction
	cats  []core.Category
	goals []core.SavingsGoal
}

// New creates a store holding the given data.
func New(txns []core.Transaction, cats []core.Category, goals []core.SavingsGoal) *Store {
	return &Store{txns: txns, cats: cats, goals: goals}
}

// NewFromFiles loads transactions.json, categories.json, and
// goals.json from base. Files may use any of the REST response shapes
// as long as they contain a bare array; missing or unreadable files
// fall back to a small built-in seed so the app stays explorable.
func NewFromFiles(base string) *Store {
	var txns []core.Transaction
	var cats []core.Category
	var goals []core.SavingsGoal
	readJSON(filepath.Join(base, "transactions.json"), &txns)
	readJSON(filepath.Join(base, "categories.json"), &cats)
	readJSON(filepath.Join(base, "goals.json"), &goals)
	if len(txns) == 0 && len(cats) == 0 && len(goals) == 0 {
		return New(seedTransactions(), seedCategories(), seedGoals())
	}
	return New(txns, cats, goals)
}

// ListTransactions returns a copy of the stored transactions.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txns...), nil
}

// ListCategories returns a copy of the stored categories.
func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats...), nil
}

// ListGoals returns a copy of the stored savings goals.
func (s *Store) ListGoals(_ context.Context) ([]core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SavingsGoal(nil), s.goals...), nil
}

func readJSON(path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// A malformed seed file is ignored, not fatal.
	_ = json.Unmarshal(data, out)
}

func seedCategories() []core.Category {
	return []core.Category{
		{ID: "1", CategoryName: "Groceries", Budget: 400},
		{ID: "2", CategoryName: "Transport", Budget: 120},
		{ID: "3", CategoryName: "Entertainment", Budget: 80},
		{ID: "4", CategoryName: "Salary"},
	}
}

func seedTransactions() []core.Transaction {
	now := time.Now()
	day := func(offset int) core.Date {
		d := now.AddDate(0, 0, -offset)
		return core.NewDate(d.Year(), d.Month(), d.Day())
	}
	cat := func(id core.Ident, name string) core.CategoryRef {
		return core.StructuredRef(id, name, 0)
	}
	return []core.Transaction{
		{ID: "1", Date: day(25), Description: "Monthly salary", Amount: 2500, Type: core.Income, Category: cat("4", "Salary")},
		{ID: "2", Date: day(20), Description: "Weekly shop", Amount: 86.40, Type: core.Expense, Category: cat("1", "Groceries")},
		{ID: "3", Date: day(14), Description: "Transit pass", Amount: 49, Type: core.Expense, Category: cat("2", "Transport")},
		{ID: "4", Date: day(10), Description: "Weekly shop", Amount: 92.15, Type: core.Expense, Category: cat("1", "Groceries")},
		{ID: "5", Date: day(6), Description: "Cinema", Amount: 24, Type: core.Expense, Category: cat("3", "Entertainment")},
		{ID: "6", Date: day(2), Description: "Weekly shop", Amount: 78.90, Type: core.Expense, Category: cat("1", "Groceries")},
	}
}

func seedGoals() []core.SavingsGoal {
	target := core.NewDate(time.Now().Year()+1, 1, 1)
	return []core.SavingsGoal{
		{ID: "1", Name: "Emergency fund", TargetAmount: 5000, CurrentAmount: 1800, TargetDate: &target},
	}
}

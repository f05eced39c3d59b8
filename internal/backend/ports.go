// Package backend defines the ports the analytics tier reads source
// data through, and a factory that builds the configured adapter.
// Persistence and authentication live behind these ports; fintrack
// itself never writes transactions, categories, or goals.
package backend

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
)

// Ports for inbound data adapters.
type (
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	CategoryLister interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
	}

	// GoalLister returns the user's savings goals.
	GoalLister interface {
		ListGoals(ctx context.Context) ([]core.SavingsGoal, error)
	}
)

// Backend is the unified read surface an adapter must provide.
type Backend interface {
	TransactionLister
	CategoryLister
	GoalLister
}

// CleanupFunc releases adapter resources.
type CleanupFunc func() error

// Result contains the backend instance and optional cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Type names a backend adapter.
type Type string

const (
	RESTBackend   Type = "rest"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case RESTBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Snapshot fetches transactions, categories, and goals concurrently
// and returns them as one consistent unit. Any single failure fails
// the whole snapshot; partial data would silently skew every derived
// number downstream.
func Snapshot(ctx context.Context, b Backend) (core.Snapshot, error) {
	var snap core.Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txns, err := b.ListTransactions(ctx)
		if err != nil {
			return err
		}
		snap.Transactions = txns
		return nil
	})
	g.Go(func() error {
		cats, err := b.ListCategories(ctx)
		if err != nil {
			return err
		}
		snap.Categories = cats
		return nil
	})
	g.Go(func() error {
		goals, err := b.ListGoals(ctx)
		if err != nil {
			return err
		}
		snap.Goals = goals
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.Snapshot{}, err
	}
	snap.FetchedAt = time.Now()
	return snap, nil
}

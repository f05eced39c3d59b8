package amqp

import (
	"testing"
	"time"
)

func TestBudgetAlertMessageJSON(t *testing.T) {
	timestamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := &BudgetAlertMessage{
		CategoryID: "7",
		Category:   "Groceries",
		Budget:     200,
		Spent:      260.5,
		Percentage: 100,
		OverBudget: true,
		Timestamp:  timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := BudgetAlertMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("BudgetAlertMessageFromJSON() error = %v", err)
	}

	if parsed.CategoryID != msg.CategoryID {
		t.Errorf("Parsed CategoryID = %v, want %v", parsed.CategoryID, msg.CategoryID)
	}
	if parsed.Category != msg.Category {
		t.Errorf("Parsed Category = %v, want %v", parsed.Category, msg.Category)
	}
	if parsed.Spent != msg.Spent {
		t.Errorf("Parsed Spent = %v, want %v", parsed.Spent, msg.Spent)
	}
	if !parsed.OverBudget {
		t.Error("Parsed OverBudget should be true")
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestBudgetAlertMessageNumericCategoryID(t *testing.T) {
	// Backends emit numeric ids; the tolerant decoder accepts them.
	parsed, err := BudgetAlertMessageFromJSON([]byte(`{"categoryId":7,"category":"Groceries"}`))
	if err != nil {
		t.Fatalf("BudgetAlertMessageFromJSON() error = %v", err)
	}
	if parsed.CategoryID != "7" {
		t.Errorf("Parsed CategoryID = %q, want \"7\"", parsed.CategoryID)
	}
}

func TestBudgetAlertMessageInvalidJSON(t *testing.T) {
	if _, err := BudgetAlertMessageFromJSON([]byte(`{"budget": "not closed`)); err == nil {
		t.Error("BudgetAlertMessageFromJSON() should fail with invalid JSON")
	}
}

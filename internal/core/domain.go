package core

import (
	"encoding/json"
	"strings"
	"time"
)

// TransactionType discriminates income from expense entries. It is the
// sole sign-of-truth for aggregation: stored amount signs vary between
// backend entry paths and must never be trusted.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

type (
	// Transaction is an immutable record fetched from the backend.
	// Amount is a signed magnitude; its sign carries no meaning.
	Transaction struct {
		ID          Ident           `json:"id"`
		Date        Date            `json:"date"`
		Description string          `json:"description"`
		Amount      Decimal         `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    CategoryRef     `json:"category"`
	}

	// Category is a budget category definition. A Budget of zero (or
	// anything non-positive) means the category is not budget-tracked.
	Category struct {
		ID           Ident   `json:"id"`
		CategoryName string  `json:"categoryName"`
		Budget       Decimal `json:"budget"`
	}

	// SavingsGoal tracks progress toward a target amount. Category, when
	// set, selects the income transactions that contribute to the goal.
	SavingsGoal struct {
		ID            Ident        `json:"id"`
		Name          string       `json:"name"`
		Description   string       `json:"description,omitempty"`
		TargetAmount  Decimal      `json:"targetAmount"`
		CurrentAmount Decimal      `json:"currentAmount"`
		TargetDate    *Date        `json:"targetDate,omitempty"`
		StartDate     *Date        `json:"startDate,omitempty"`
		Category      *CategoryRef `json:"category,omitempty"`
	}

	// Snapshot is one request-scoped copy of the backend data. The
	// analytics engine never mutates it; rerunning the engine on the
	// same snapshot yields identical results.
	Snapshot struct {
		Transactions []Transaction
		Categories   []Category
		Goals        []SavingsGoal
		FetchedAt    time.Time
	}
)

// Date wraps time.Time and accepts the date encodings the backend is
// known to emit: RFC 3339 timestamps and plain YYYY-MM-DD dates.
// Unparseable input decodes to the zero Date rather than failing.
type Date struct {
	time.Time
}

// NewDate creates a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	d.Time = time.Time{}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}

// SameMonth reports whether both dates fall in the same calendar month.
func (d Date) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month()
}

// Decimal is a float64 that tolerates the backend's numeric quirks:
// it decodes from a JSON number, a numeric string, or null. Missing
// and malformed values decode to zero, which downstream evaluators
// treat as "skip" per their own rules.
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		*d = 0
		return nil
	}
	*d = Decimal(f)
	return nil
}

func (d Decimal) Float() float64 { return float64(d) }

// Ident is an opaque identifier. Backends emit ids as strings or as
// numbers depending on the endpoint; both decode to the string form.
type Ident string

func (i *Ident) UnmarshalJSON(b []byte) error {
	*i = Ident(rawToString(b))
	return nil
}

func (i Ident) String() string { return string(i) }


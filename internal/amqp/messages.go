package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// BudgetAlertMessage notifies downstream consumers that a category
// crossed its budget ceiling. It carries the full evaluation so
// consumers do not need backend access to render a notification.
type BudgetAlertMessage struct {
	CategoryID core.Ident `json:"categoryId"`
	Category   string     `json:"category"`
	Budget     float64    `json:"budget"`
	Spent      float64    `json:"spent"`
	Percentage float64    `json:"percentage"`
	OverBudget bool       `json:"overBudget"`
	Timestamp  time.Time  `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON creates a message from JSON bytes.
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

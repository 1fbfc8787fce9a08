package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event kinds published on the ledger exchange.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is the message emitted after a successful write. Consumers
// re-read the record by ID; the event carries identity, not state.
type ExpenseEvent struct {
	Event      string    `json:"event"`
	ExpenseID  string    `json:"expense_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewExpenseEvent builds an event stamped with the current time.
func NewExpenseEvent(kind, expenseID string) *ExpenseEvent {
	return &ExpenseEvent{
		Event:      kind,
		ExpenseID:  expenseID,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON serializes the event for publishing.
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal expense event: %w", err)
	}
	return b, nil
}

// ExpenseEventFromJSON deserializes a consumed message.
func ExpenseEventFromJSON(b []byte) (*ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("unmarshal expense event: %w", err)
	}
	if e.Event == "" || e.ExpenseID == "" {
		return nil, fmt.Errorf("expense event missing required fields: %s", b)
	}
	return &e, nil
}

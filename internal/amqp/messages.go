package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEventMessage tells the export worker that a month's figures changed.
// It carries only the entry ID and the affected period; the worker recomputes
// the summary from the database rather than trusting message payloads.
type LedgerEventMessage struct {
	EntryID   string    `json:"entry_id"`
	Action    string    `json:"action"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(entryID, action string, year, month int) *LedgerEventMessage {
	return &LedgerEventMessage{
		EntryID:   entryID,
		Action:    action,
		Year:      year,
		Month:     month,
		Timestamp: time.Now().UTC(),
	}
}

func (m *LedgerEventMessage) Validate() error {
	switch m.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
	default:
		return errors.New("unknown ledger event action: " + m.Action)
	}
	if m.Month < 1 || m.Month > 12 {
		return errors.New("ledger event month out of range")
	}
	return nil
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}

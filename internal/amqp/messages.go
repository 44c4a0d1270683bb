package amqp

import (
	"encoding/json"
	"time"
)

// Record sources and actions carried by change messages.
const (
	SourceOrder       = "order"
	SourceTransaction = "transaction"
	SourceService     = "service"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordChangedMessage tells the export worker that a financial record
// changed and the report snapshot is stale. It carries only identifiers;
// the worker refetches the snapshot from storage.
type RecordChangedMessage struct {
	Source    string    `json:"source"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChangedMessage creates a change message for one record.
func NewRecordChangedMessage(source, id, action string) *RecordChangedMessage {
	return &RecordChangedMessage{
		Source:    source,
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangedMessageFromJSON creates a message from JSON bytes.
func RecordChangedMessageFromJSON(data []byte) (*RecordChangedMessage, error) {
	var msg RecordChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

package amqp

import (
	"encoding/json"
	"time"
)

// RecordSyncMessage represents a lightweight message for syncing a record
// to Google Sheets. Contains only the ID and date, the worker will fetch
// the full record from the store.
type RecordSyncMessage struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Deleted   bool      `json:"deleted,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordSyncMessage creates a new sync message with just ID and date
func NewRecordSyncMessage(id, date string) *RecordSyncMessage {
	return &RecordSyncMessage{
		ID:        id,
		Date:      date,
		Timestamp: time.Now(),
	}
}

// NewRecordDeleteMessage creates a sync message marking a record as removed
func NewRecordDeleteMessage(id string) *RecordSyncMessage {
	return &RecordSyncMessage{
		ID:        id,
		Deleted:   true,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

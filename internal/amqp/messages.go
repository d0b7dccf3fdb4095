package amqp

import (
	"encoding/json"
	"time"
)

// CollectionsChangedMessage announces that a user's local collections were
// mutated. It carries only the user id; the worker fetches the full snapshot
// from the database before pushing it to the remote backend.
type CollectionsChangedMessage struct {
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCollectionsChangedMessage(userID string) *CollectionsChangedMessage {
	return &CollectionsChangedMessage{
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *CollectionsChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func CollectionsChangedMessageFromJSON(data []byte) (*CollectionsChangedMessage, error) {
	var msg CollectionsChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

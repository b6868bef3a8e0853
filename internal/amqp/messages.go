package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"budgetbook/internal/core"
)

// ChangeMessage announces that the persisted ledger changed.
// It carries no ledger data; consumers reload the stored document.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Operation string    `json:"operation"`
	Key       string    `json:"key,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage wraps a ledger change event stamped with the current time
func NewChangeMessage(ev core.ChangeEvent) *ChangeMessage {
	return &ChangeMessage{
		Entity:    ev.Entity,
		Operation: ev.Operation,
		Key:       ev.Key,
		Timestamp: time.Now(),
	}
}

// Event returns the ledger change event carried by the message
func (m *ChangeMessage) Event() core.ChangeEvent {
	return core.ChangeEvent{Entity: m.Entity, Operation: m.Operation, Key: m.Key}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message and rejects ones without an entity
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Entity == "" {
		return nil, fmt.Errorf("change message without entity")
	}
	return &msg, nil
}

package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message kinds carried on the sync queue.
const (
	KindSync   = "sync"
	KindDelete = "delete"
)

// SyncMessage tells the worker to export one transaction. It carries only the
// ID; the worker fetches the full row from the database.
type SyncMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSyncMessage builds a sync message for a stored transaction.
func NewSyncMessage(id string) *SyncMessage {
	return &SyncMessage{
		Kind:      KindSync,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// NewDeleteMessage builds a delete message for a removed transaction.
func NewDeleteMessage(id string) *SyncMessage {
	return &SyncMessage{
		Kind:      KindDelete,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncMessageFromJSON creates a message from JSON bytes
func SyncMessageFromJSON(data []byte) (*SyncMessage, error) {
	var msg SyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Kind {
	case KindSync, KindDelete:
	default:
		return nil, fmt.Errorf("unknown message kind %q", msg.Kind)
	}
	return &msg, nil
}

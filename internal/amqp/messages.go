package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	KindTransaction = "transaction"
	KindGoal        = "goal"

	OpCreate = "create"
	OpDelete = "delete"
)

// RecordEventMessage notifies the mirror worker that a record changed.
// It carries only the kind, ID and operation; the worker reads the full
// record back from the store when it needs one.
type RecordEventMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordEventMessage(kind, id, op string) *RecordEventMessage {
	return &RecordEventMessage{
		Kind:      kind,
		ID:        id,
		Op:        op,
		Timestamp: time.Now().UTC(),
	}
}

func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var m RecordEventMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal record event: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *RecordEventMessage) validate() error {
	if m.Kind != KindTransaction && m.Kind != KindGoal {
		return fmt.Errorf("unknown record kind %q", m.Kind)
	}
	if m.ID == "" {
		return fmt.Errorf("missing record id")
	}
	if m.Op != OpCreate && m.Op != OpDelete {
		return fmt.Errorf("unknown record op %q", m.Op)
	}
	return nil
}

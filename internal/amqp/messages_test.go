package amqp

import (
	"testing"
	"time"
)

func TestRecordEventMessageRoundTrip(t *testing.T) {
	msg := NewRecordEventMessage(KindTransaction, "abc-123", OpCreate)
	if msg.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := RecordEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != KindTransaction || got.ID != "abc-123" || got.Op != OpCreate {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("timestamp mismatch: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestRecordEventMessageRejectsInvalid(t *testing.T) {
	cases := []string{
		`not json`,
		`{"kind":"widget","id":"x","op":"create"}`,
		`{"kind":"transaction","id":"","op":"create"}`,
		`{"kind":"goal","id":"x","op":"rename"}`,
	}
	for i, raw := range cases {
		if _, err := RecordEventMessageFromJSON([]byte(raw)); err == nil {
			t.Fatalf("case %d: expected error for %q", i, raw)
		}
	}
}

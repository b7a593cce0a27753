package amqp

import "testing"

func TestSyncMessageRoundTrip(t *testing.T) {
	msg := NewSyncMessage("tx-123")
	if msg.Kind != KindSync || msg.ID != "tx-123" || msg.Timestamp.IsZero() {
		t.Fatalf("unexpected message: %+v", msg)
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := SyncMessageFromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindSync || got.ID != "tx-123" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

func TestDeleteMessageKind(t *testing.T) {
	msg := NewDeleteMessage("tx-456")
	if msg.Kind != KindDelete {
		t.Fatalf("kind = %q", msg.Kind)
	}
}

func TestSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "not-json"},
		{"unknown kind", `{"kind":"refresh","id":"x"}`},
		{"missing kind", `{"id":"x"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := SyncMessageFromJSON([]byte(tc.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

package conversation

import (
	"fmt"
	"testing"
)

func TestNewMessageIdentity(t *testing.T) {
	a := NewMessage(RoleUser, "one")
	b := NewMessage(RoleUser, "two")

	if a.ID == "" || b.ID == "" {
		t.Fatal("Expected nonempty message IDs")
	}
	// Messages created back to back in the same millisecond still differ
	if a.ID == b.ID {
		t.Error("Expected distinct IDs for messages created together")
	}
	if a.Timestamp.IsZero() {
		t.Error("Expected a creation timestamp")
	}
}

func TestWindow(t *testing.T) {
	makeLog := func(n int) []Message {
		log := make([]Message, 0, n)
		for i := 0; i < n; i++ {
			log = append(log, NewMessage(RoleUser, fmt.Sprintf("m%d", i)))
		}
		return log
	}

	tests := []struct {
		name     string
		logSize  int
		window   int
		expected int
		firstMsg string
	}{
		{"Shorter than window", 3, 10, 3, "m0"},
		{"Exactly window", 10, 10, 10, "m0"},
		{"Longer than window keeps tail", 14, 10, 10, "m4"},
		{"Zero window keeps all", 5, 0, 5, "m0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := makeLog(tt.logSize)
			got := Window(log, tt.window)

			if len(got) != tt.expected {
				t.Fatalf("Expected %d messages, got %d", tt.expected, len(got))
			}
			if got[0].Content != tt.firstMsg {
				t.Errorf("Expected first message %q, got %q", tt.firstMsg, got[0].Content)
			}
			// Original log untouched
			if len(log) != tt.logSize {
				t.Errorf("Window truncated the source log")
			}
		})
	}
}

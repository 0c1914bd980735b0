package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes who authored a message, which drives rendering side.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in the conversation log.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps a fresh message. IDs are random UUIDs rather than
// creation-time strings so two messages created in the same millisecond
// still get distinct identities.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Window returns the trailing n messages, oldest first. The stored log is
// never truncated by this; it only bounds the context sent upstream.
func Window(messages []Message, n int) []Message {
	if n <= 0 || len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

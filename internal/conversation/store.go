package conversation

import "context"

// Store maintains the authoritative, persisted ordered message log for the
// current session, plus a small preference slot used for the locale mirror.
//
// Append and Replace return the updated log so callers always continue from
// the freshly written state instead of a possibly stale snapshot.
type Store interface {
	// Messages returns a copy of the current log in insertion order.
	Messages(ctx context.Context) ([]Message, error)

	// Append adds one message to the end of the log and persists the whole
	// updated log. On a persistence failure the in-memory log is left at its
	// pre-write value and the unchanged log is returned alongside the error.
	Append(ctx context.Context, msg Message) ([]Message, error)

	// Replace overwrites the entire log, used when two messages land
	// transactionally (optimistic user turn + resolved assistant turn) or
	// when clearing.
	Replace(ctx context.Context, messages []Message) ([]Message, error)

	// Clear resets the log to empty and persists that state.
	Clear(ctx context.Context) error

	// GetPreference reads a named preference value; ok is false when unset.
	GetPreference(ctx context.Context, key string) (value string, ok bool, err error)

	// SetPreference persists a named preference value.
	SetPreference(ctx context.Context, key, value string) error

	// Close closes the underlying database.
	Close() error
}

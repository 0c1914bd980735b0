package conversation

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T, dir string) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return store
}

func TestAppendReturnsUpdatedLog(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer store.Close()

	ctx := context.Background()

	first, err := store.Append(ctx, NewMessage(RoleUser, "hello"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("Expected 1 message after first append, got %d", len(first))
	}

	second, err := store.Append(ctx, NewMessage(RoleAssistant, "hi there"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("Expected 2 messages after second append, got %d", len(second))
	}

	// Insertion order, not timestamp order
	if second[0].Content != "hello" || second[1].Content != "hi there" {
		t.Errorf("Messages out of insertion order: %+v", second)
	}
}

func TestLogSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := newTestStore(t, dir)
	if _, err := store.Append(ctx, NewMessage(RoleUser, "persisted?")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := store.Append(ctx, NewMessage(RoleAssistant, "persisted.")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := newTestStore(t, dir)
	defer reopened.Close()

	messages, err := reopened.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages after reopen, got %d", len(messages))
	}
	if messages[0].Content != "persisted?" || messages[1].Content != "persisted." {
		t.Errorf("Unexpected log after reopen: %+v", messages)
	}
	if messages[0].Role != RoleUser || messages[1].Role != RoleAssistant {
		t.Errorf("Roles lost on reload: %+v", messages)
	}
}

func TestReplaceOverwritesLog(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer store.Close()

	ctx := context.Background()

	if _, err := store.Append(ctx, NewMessage(RoleUser, "old")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	replacement := []Message{
		NewMessage(RoleUser, "question"),
		NewMessage(RoleAssistant, "answer"),
	}
	updated, err := store.Replace(ctx, replacement)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(updated) != 2 {
		t.Fatalf("Expected 2 messages after replace, got %d", len(updated))
	}
	if updated[0].Content != "question" || updated[1].Content != "answer" {
		t.Errorf("Unexpected log after replace: %+v", updated)
	}
}

func TestClearEmptiesMemoryAndDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := newTestStore(t, dir)
	if _, err := store.Append(ctx, NewMessage(RoleUser, "stale")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	messages, err := store.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("Expected empty log after clear, got %d messages", len(messages))
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A reload must show the empty state, not stale messages
	reopened := newTestStore(t, dir)
	defer reopened.Close()

	messages, err = reopened.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("Expected empty log after clear and reopen, got %d messages", len(messages))
	}
}

func TestReturnedLogIsACopy(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer store.Close()

	ctx := context.Background()

	log, err := store.Append(ctx, NewMessage(RoleUser, "original"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	log[0].Content = "mutated"

	fresh, err := store.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if fresh[0].Content != "original" {
		t.Error("Mutating the returned log leaked into the store")
	}
}

func TestPreferences(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := newTestStore(t, dir)

	if _, ok, err := store.GetPreference(ctx, "locale"); err != nil || ok {
		t.Fatalf("Expected unset preference, got ok=%v err=%v", ok, err)
	}

	if err := store.SetPreference(ctx, "locale", "de"); err != nil {
		t.Fatalf("SetPreference failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := newTestStore(t, dir)
	defer reopened.Close()

	value, ok, err := reopened.GetPreference(ctx, "locale")
	if err != nil {
		t.Fatalf("GetPreference failed: %v", err)
	}
	if !ok || value != "de" {
		t.Errorf("Expected persisted preference de, got %q (ok=%v)", value, ok)
	}
}

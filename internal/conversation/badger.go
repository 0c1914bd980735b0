package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"concierge-chat/internal/logging"
)

const (
	logKey        = "conversation:log"
	prefKeyPrefix = "pref:"
)

// BadgerStore keeps the whole serialized log under a single key, the way the
// embedded widget keeps it in one local-storage entry. The in-memory copy is
// the read path; every mutation persists the full updated log before the new
// in-memory value becomes visible.
//
// Two processes sharing one data directory are not coordinated: the last
// writer wins, a known limitation carried over from the original.
type BadgerStore struct {
	db *badger.DB

	mu       sync.RWMutex
	messages []Message
}

func NewBadgerStore(dbPath string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	s := &BadgerStore{db: db}
	if err := s.rehydrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// rehydrate loads the persisted log into memory on startup.
func (s *BadgerStore) rehydrate() error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(logKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s.messages)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to load conversation log: %w", err)
	}
	return nil
}

func (s *BadgerStore) Messages(_ context.Context) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMessages(s.messages), nil
}

func (s *BadgerStore) Append(_ context.Context, msg Message) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append(copyMessages(s.messages), msg)
	if err := s.persist(updated); err != nil {
		logging.Error("Failed to persist appended message: %v", err)
		return copyMessages(s.messages), err
	}

	s.messages = updated
	return copyMessages(s.messages), nil
}

func (s *BadgerStore) Replace(_ context.Context, messages []Message) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := copyMessages(messages)
	if err := s.persist(updated); err != nil {
		logging.Error("Failed to persist replaced log: %v", err)
		return copyMessages(s.messages), err
	}

	s.messages = updated
	return copyMessages(s.messages), nil
}

func (s *BadgerStore) Clear(ctx context.Context) error {
	_, err := s.Replace(ctx, nil)
	return err
}

// persist writes the full log under the single log key. Callers hold the lock.
func (s *BadgerStore) persist(messages []Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation log: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(logKey), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write conversation log: %w", err)
	}
	return nil
}

func (s *BadgerStore) GetPreference(_ context.Context, key string) (string, bool, error) {
	var value string
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefKeyPrefix + key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			found = true
			return nil
		})
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %q: %w", key, err)
	}

	return value, found, nil
}

func (s *BadgerStore) SetPreference(_ context.Context, key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefKeyPrefix+key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write preference %q: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func copyMessages(messages []Message) []Message {
	copied := make([]Message, len(messages))
	copy(copied, messages)
	return copied
}

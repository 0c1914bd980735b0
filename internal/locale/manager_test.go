package locale

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

type fakeStore struct {
	prefs    map[string]string
	setCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{prefs: make(map[string]string)}
}

func (s *fakeStore) GetPreference(_ context.Context, key string) (string, bool, error) {
	v, ok := s.prefs[key]
	return v, ok, nil
}

func (s *fakeStore) SetPreference(_ context.Context, key, value string) error {
	s.prefs[key] = value
	s.setCalls++
	return nil
}

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		t.Setenv(name, "")
	}
}

func TestManagerStartupPriority(t *testing.T) {
	t.Run("Preference file wins", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANG", "de_DE.UTF-8")

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, PreferenceFileName), []byte("it\n"), 0644); err != nil {
			t.Fatal(err)
		}
		store := newFakeStore()
		store.prefs[PreferenceKey] = "fr"

		m := NewManager(context.Background(), store, dir)
		if m.Current() != Italian {
			t.Errorf("Expected file value it, got %q", m.Current())
		}
	})

	t.Run("Store mirror when no file", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANG", "de_DE.UTF-8")

		store := newFakeStore()
		store.prefs[PreferenceKey] = "fr"

		m := NewManager(context.Background(), store, t.TempDir())
		if m.Current() != French {
			t.Errorf("Expected store value fr, got %q", m.Current())
		}
	})

	t.Run("Environment heuristic when nothing persisted", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANG", "es_ES.UTF-8")

		m := NewManager(context.Background(), newFakeStore(), t.TempDir())
		if m.Current() != Spanish {
			t.Errorf("Expected detected es, got %q", m.Current())
		}
	})

	t.Run("Fallback when nothing matches", func(t *testing.T) {
		clearLocaleEnv(t)

		m := NewManager(context.Background(), newFakeStore(), t.TempDir())
		if m.Current() != Fallback {
			t.Errorf("Expected fallback %q, got %q", Fallback, m.Current())
		}
	})

	t.Run("Corrupt file ignored", func(t *testing.T) {
		clearLocaleEnv(t)

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, PreferenceFileName), []byte("klingon"), 0644); err != nil {
			t.Fatal(err)
		}
		store := newFakeStore()
		store.prefs[PreferenceKey] = "de"

		m := NewManager(context.Background(), store, dir)
		if m.Current() != German {
			t.Errorf("Expected store value de after corrupt file, got %q", m.Current())
		}
	})
}

func TestManagerSetPersistsBothSlots(t *testing.T) {
	clearLocaleEnv(t)

	dir := t.TempDir()
	store := newFakeStore()

	m := NewManager(context.Background(), store, dir)
	if err := m.Set(context.Background(), "de"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if m.Current() != German {
		t.Errorf("Expected current locale de, got %q", m.Current())
	}
	if store.prefs[PreferenceKey] != "de" {
		t.Errorf("Store mirror not written, got %q", store.prefs[PreferenceKey])
	}

	data, err := os.ReadFile(filepath.Join(dir, PreferenceFileName))
	if err != nil {
		t.Fatalf("Preference file not written: %v", err)
	}
	if string(data) != "de\n" {
		t.Errorf("Unexpected preference file contents %q", string(data))
	}

	// A fresh manager on the same state restores the selection
	m2 := NewManager(context.Background(), store, dir)
	if m2.Current() != German {
		t.Errorf("Expected restored locale de, got %q", m2.Current())
	}
}

func TestManagerRejectsUnsupported(t *testing.T) {
	clearLocaleEnv(t)

	store := newFakeStore()
	m := NewManager(context.Background(), store, t.TempDir())

	before := m.Current()
	if err := m.Set(context.Background(), "jp"); err == nil {
		t.Fatal("Expected error for unsupported locale")
	}
	if m.Current() != before {
		t.Errorf("Locale changed on rejected selection: %q -> %q", before, m.Current())
	}
	if store.setCalls != 0 {
		t.Errorf("Store written on rejected selection (%d calls)", store.setCalls)
	}
}

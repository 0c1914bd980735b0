package locale

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"concierge-chat/internal/logging"
)

// PreferenceKey is the store slot mirroring the preference file, the way the
// original mirrors its cookie into local storage.
const PreferenceKey = "locale"

// PreferenceFileName is the file-backed slot inside the data directory.
const PreferenceFileName = "locale"

// PreferenceStore is the subset of the conversation store the manager needs.
type PreferenceStore interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
}

// Manager owns the selected locale for the lifetime of the process. It is
// constructed once at startup and never torn down; mutation happens only
// through Set on explicit guest selection.
type Manager struct {
	store    PreferenceStore
	filePath string
	current  Locale
}

// NewManager resolves the startup locale in priority order: the preference
// file, the store mirror, the environment-language heuristic, then the fixed
// fallback.
func NewManager(ctx context.Context, store PreferenceStore, dataDir string) *Manager {
	m := &Manager{
		store:    store,
		filePath: filepath.Join(dataDir, PreferenceFileName),
		current:  Fallback,
	}

	if code, ok := m.readFile(); ok {
		m.current = code
		logging.Debug("Locale %q restored from preference file", code)
		return m
	}

	if value, ok, err := store.GetPreference(ctx, PreferenceKey); err != nil {
		logging.Error("Failed to read locale preference from store: %v", err)
	} else if ok && IsSupported(value) {
		m.current = Locale(value)
		logging.Debug("Locale %q restored from store", value)
		return m
	}

	if code, ok := DetectEnvironment(); ok {
		m.current = code
		logging.Debug("Locale %q detected from environment", code)
		return m
	}

	logging.Debug("No locale preference found, using fallback %q", Fallback)
	return m
}

// Current returns the active locale.
func (m *Manager) Current() Locale {
	return m.current
}

// Strings returns the canned strings for the active locale.
func (m *Manager) Strings() Strings {
	return StringsFor(m.current)
}

// Set switches the active locale. Both persisted slots are written before
// the in-memory value changes; an unsupported code is rejected with a logged
// warning and leaves the current locale untouched.
func (m *Manager) Set(ctx context.Context, code string) error {
	if !IsSupported(code) {
		logging.Warn("Rejected unsupported locale %q", code)
		return fmt.Errorf("unsupported locale %q", code)
	}

	if err := m.writeFile(Locale(code)); err != nil {
		logging.Error("Failed to write locale preference file: %v", err)
	}
	if err := m.store.SetPreference(ctx, PreferenceKey, code); err != nil {
		logging.Error("Failed to write locale preference to store: %v", err)
	}

	m.current = Locale(code)
	logging.Info("Locale switched to %q", code)
	return nil
}

func (m *Manager) readFile() (Locale, bool) {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		return "", false
	}
	code := strings.TrimSpace(string(data))
	if !IsSupported(code) {
		return "", false
	}
	return Locale(code), true
}

func (m *Manager) writeFile(code Locale) error {
	if err := os.MkdirAll(filepath.Dir(m.filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(m.filePath, []byte(code+"\n"), 0644)
}

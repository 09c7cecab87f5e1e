package viewstate

import (
	"os"
	"sync"

	"github.com/andri/podgrid/internal/logger"
)

// Store loads and saves the grid layout with a restoration guard: Save is a
// no-op until MarkRestored is called, so a layout read from disk can never
// be clobbered by a default layout written during startup.
type Store struct {
	mu            sync.Mutex
	path          string
	backupEnabled bool
	restored      bool
}

// NewStore resolves the layout file path and returns a store for it.
func NewStore(path string, backupEnabled bool) (*Store, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		path:          resolved,
		backupEnabled: backupEnabled,
	}, nil
}

// Path returns the resolved layout file path.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Load reads the saved layout. A missing, corrupt, or invalid file yields
// nil: the caller falls back to defaults rather than failing startup.
func (s *Store) Load() *ViewState {
	s.mu.Lock()
	path := s.path
	s.mu.Unlock()

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cannot stat layout file", "path", path, "error", err)
		}
		return nil
	}

	parsed, err := ParseFile(path)
	if err != nil {
		logger.Warn("discarding unreadable layout file", "path", path, "error", err)
		return nil
	}

	normalized := Normalize(*parsed)
	return &normalized
}

// MarkRestored arms the store: from now on Save writes through.
func (s *Store) MarkRestored() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restored = true
}

// Restored reports whether the restoration handshake has completed.
func (s *Store) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}

// Save persists the layout. Before MarkRestored it does nothing. Failures
// are logged and swallowed: losing a layout write must never break the UI.
func (s *Store) Save(vs ViewState) {
	s.mu.Lock()
	path := s.path
	backupEnabled := s.backupEnabled
	restored := s.restored
	s.mu.Unlock()

	if !restored {
		logger.Debug("skipping layout save before restore completes", "path", path)
		return
	}

	if _, err := WriteFileWithBackup(path, vs, BackupOptions{Enabled: backupEnabled}); err != nil {
		logger.Warn("failed to persist layout", "path", path, "error", err)
	}
}

// Package cache persists selectors that previously worked for an action, so
// later runs can skip Set-of-Mark annotation and the vision round-trip
// entirely on structurally similar pages.
//
// Entries are keyed by a host glob pattern plus a normalized action
// description. A cached selector is a hint, never a guarantee: consumers must
// still verify the selector resolves to exactly one element before acting,
// and invalidate the entry when it does not.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"
)

// Entry is one cached selector.
type Entry struct {
	// HostPattern matches page hosts, glob syntax with "." as separator
	// ("app.example.com", "*.example.com").
	HostPattern string `json:"host_pattern"`

	// Action is the normalized action description the selector satisfied.
	Action string `json:"action"`

	// Selector is the locator that worked last time.
	Selector string `json:"selector"`

	// UpdatedAt records the last confirmation time.
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a file-backed selector cache. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// Open loads the cache at path. A missing file yields an empty store; the
// file is created on first Save.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading selector cache: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parsing selector cache %s: %w", path, err)
	}
	return s, nil
}

// Normalize canonicalizes an action description for use as a cache key.
func Normalize(action string) string {
	return strings.Join(strings.Fields(strings.ToLower(action)), " ")
}

// Lookup returns the cached selector for the given host and action, if any.
// Host patterns are matched as globs so wildcard entries can cover several
// deployments of the same application.
func (s *Store) Lookup(host, action string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action = Normalize(action)
	for _, e := range s.entries {
		if e.Action != action {
			continue
		}
		g, err := glob.Compile(e.HostPattern, '.')
		if err != nil {
			continue
		}
		if g.Match(host) {
			return e.Selector, true
		}
	}
	return "", false
}

// Put records a selector that worked for the given host and action,
// replacing any previous entry with the same key.
func (s *Store) Put(host, action, selector string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action = Normalize(action)
	for i := range s.entries {
		if s.entries[i].HostPattern == host && s.entries[i].Action == action {
			s.entries[i].Selector = selector
			s.entries[i].UpdatedAt = time.Now()
			return
		}
	}
	s.entries = append(s.entries, Entry{
		HostPattern: host,
		Action:      action,
		Selector:    selector,
		UpdatedAt:   time.Now(),
	})
}

// Invalidate drops every entry matching the given host and action. Called
// when a cached selector no longer resolves.
func (s *Store) Invalidate(host, action string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action = Normalize(action)
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Action == action {
			if g, err := glob.Compile(e.HostPattern, '.'); err == nil && g.Match(host) {
				continue
			}
		}
		kept = append(kept, e)
	}
	s.entries = kept
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Save writes the cache to disk atomically.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding selector cache: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing selector cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing selector cache: %w", err)
	}
	return nil
}

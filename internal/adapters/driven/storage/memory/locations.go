package memory

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
)

// Ensure LocationTable implements the interface.
var _ driven.LocationLookup = (*LocationTable)(nil)

// LocationTable is an in-memory raw location → country code mapping.
type LocationTable struct {
	mu    sync.RWMutex
	codes map[string]string
}

// NewLocationTable creates a table seeded with a copy of codes.
func NewLocationTable(codes map[string]string) *LocationTable {
	t := &LocationTable{codes: make(map[string]string, len(codes))}
	for raw, code := range codes {
		t.codes[raw] = code
	}
	return t
}

// ParseLocationTable decodes a TOML document of `"raw location" = "CC"` pairs.
func ParseLocationTable(data []byte) (*LocationTable, error) {
	codes := make(map[string]string)
	if err := toml.Unmarshal(data, &codes); err != nil {
		return nil, fmt.Errorf("parse location table: %w", err)
	}
	return NewLocationTable(codes), nil
}

// LoadLocationTable reads a TOML location table from path.
func LoadLocationTable(path string) (*LocationTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location table: %w", err)
	}
	return ParseLocationTable(data)
}

// Lookup returns the code for raw. Matching is exact.
func (t *LocationTable) Lookup(raw string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	code, ok := t.codes[raw]
	return code, ok
}

// Set stores or replaces a mapping.
func (t *LocationTable) Set(raw, code string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.codes[raw] = code
}

// Len returns the number of mappings.
func (t *LocationTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.codes)
}

// Keys returns the raw locations in sorted order.
func (t *LocationTable) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.codes))
	for raw := range t.codes {
		keys = append(keys, raw)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the mappings.
func (t *LocationTable) Map() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.codes))
	for raw, code := range t.codes {
		out[raw] = code
	}
	return out
}

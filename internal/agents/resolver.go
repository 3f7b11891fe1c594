// Package agents maps numeric extension identifiers to display names.
package agents

import (
	"fmt"
	"sync"
)

// Resolver resolves extensions to agent display names. Lookups consult
// a session-supplied custom mapping first and fall back to the built-in
// directory. Resolve never fails; extensions absent from both maps get
// a synthesized label.
type Resolver struct {
	mu     sync.RWMutex
	custom map[string]string
}

// NewResolver creates a Resolver with no custom mapping loaded.
func NewResolver() *Resolver {
	return &Resolver{}
}

// SetCustomMap replaces the session's custom extension mapping. A nil
// map clears it, restoring built-in-only resolution.
func (r *Resolver) SetCustomMap(m map[string]string) {
	r.mu.Lock()
	r.custom = m
	r.mu.Unlock()
}

// HasCustomMap reports whether a custom mapping is loaded.
func (r *Resolver) HasCustomMap() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.custom) > 0
}

// Resolve returns the display name for an extension. Custom entries win
// over built-ins; unknown extensions yield "Unknown Ext <value>".
func (r *Resolver) Resolve(extension string) string {
	r.mu.RLock()
	if name, ok := r.custom[extension]; ok {
		r.mu.RUnlock()
		return name
	}
	r.mu.RUnlock()

	if name, ok := defaultAgentMap[extension]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Ext %s", extension)
}

// Package form models the mutable field sets behind the client's input
// forms. Every visible field echoes the record: a field never written
// reads as the empty string.
package form

import "sync"

// Record maps field names to their current values. Writes are
// last-write-wins; unspecified fields keep prior values.
type Record struct {
	mu     sync.RWMutex
	fields map[string]string
}

// NewRecord creates an empty record, as when a form mounts.
func NewRecord() *Record {
	return &Record{fields: make(map[string]string)}
}

// Set replaces the named field's value, keeping all other fields.
func (r *Record) Set(name, value string) {
	r.mu.Lock()
	r.fields[name] = value
	r.mu.Unlock()
}

// Value returns the controlled value for a field: the stored value, or
// the empty string when the field was never written.
func (r *Record) Value(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fields[name]
}

// Has reports whether the field has ever been written.
func (r *Record) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.fields[name]
	return ok
}

// Fields returns a snapshot copy of the record.
func (r *Record) Fields() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// Len returns the number of written fields.
func (r *Record) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fields)
}

// Reset empties the record, as on submission success.
func (r *Record) Reset() {
	r.mu.Lock()
	r.fields = make(map[string]string)
	r.mu.Unlock()
}

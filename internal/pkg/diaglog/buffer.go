// Package diaglog provides a bounded in-memory buffer of diagnostic records.
// The buffer is process-scoped: it starts empty, keeps at most a fixed number
// of entries, and evicts the oldest entry first when full. It has no
// persistence guarantee across restarts.
package diaglog

import (
	"sync"
	"time"
)

// DefaultCapacity is the entry limit used by NewBuffer.
const DefaultCapacity = 1000

// Level classifies the severity of a diagnostic entry.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is a single diagnostic record.
type Entry struct {
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Source    string         `json:"source"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Buffer is an append-only ring of diagnostic entries, safe for concurrent use.
type Buffer struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// NewBuffer creates a buffer with DefaultCapacity.
func NewBuffer() *Buffer {
	return NewBufferWithCapacity(DefaultCapacity)
}

// NewBufferWithCapacity creates a buffer holding at most capacity entries.
// A capacity below 1 is clamped to 1.
func NewBufferWithCapacity(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{capacity: capacity}
}

// Append records an entry, stamping it with the current time.
// When the buffer is full the oldest entry is evicted.
func (b *Buffer) Append(level Level, message, source string, data map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == b.capacity {
		b.entries = b.entries[1:]
	}

	b.entries = append(b.entries, Entry{
		Level:     level,
		Message:   message,
		Source:    source,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Entries returns a snapshot of the buffered entries, oldest first.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make([]Entry, len(b.entries))
	copy(snapshot, b.entries)
	return snapshot
}

// Len returns the current number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

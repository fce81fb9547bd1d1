package activity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is how many entries a log keeps when no size is given.
const DefaultCapacity = 50

// Log is an append-only ring of recent entries, oldest evicted first.
// It is not safe for concurrent use; the engine guards it.
type Log struct {
	entries  []Entry
	capacity int
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Append stores an entry, filling in its id when empty.
func (l *Log) Append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, e)
	return e
}

// List returns a copy of the retained entries, oldest first.
func (l *Log) List() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns retained entries at or after t, optionally filtered by type.
func (l *Log) Since(t time.Time, types ...EventType) []Entry {
	filter := make(map[EventType]bool, len(types))
	for _, typ := range types {
		filter[typ] = true
	}
	out := make([]Entry, 0)
	for _, e := range l.entries {
		if e.At.Before(t) {
			continue
		}
		if len(types) > 0 && !filter[e.Type] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (l *Log) Len() int { return len(l.entries) }

func (l *Log) Capacity() int { return l.capacity }

package history

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is used when a session does not set max_history.
const DefaultCapacity = 100

// Record is one completed translation. Records are never mutated after
// they are appended.
type Record struct {
	ID             string
	SourceLanguage string
	TargetLanguage string
	Input          string
	Output         string
	Timestamp      time.Time
}

// NewRecord stamps a record with a fresh ID and the current time.
func NewRecord(source, target, input, output string) Record {
	return Record{
		ID:             uuid.NewString(),
		SourceLanguage: source,
		TargetLanguage: target,
		Input:          input,
		Output:         output,
		Timestamp:      time.Now(),
	}
}

// Buffer is a fixed-capacity FIFO log of records. When full, appending
// evicts the oldest record.
type Buffer struct {
	items []Record
	start int
	size  int
}

// New returns an empty buffer. Capacities below 1 are raised to 1.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{items: make([]Record, capacity)}
}

// Append adds rec at the end, dropping the oldest record on overflow.
func (b *Buffer) Append(rec Record) {
	capacity := len(b.items)
	if b.size < capacity {
		b.items[(b.start+b.size)%capacity] = rec
		b.size++
		return
	}
	b.items[b.start] = rec
	b.start = (b.start + 1) % capacity
}

// Recent returns up to n of the newest records, oldest first.
func (b *Buffer) Recent(n int) []Record {
	if n <= 0 || b.size == 0 {
		return nil
	}
	if n > b.size {
		n = b.size
	}
	out := make([]Record, n)
	offset := b.size - n
	for i := 0; i < n; i++ {
		out[i] = b.items[(b.start+offset+i)%len(b.items)]
	}
	return out
}

// All returns every stored record, oldest first.
func (b *Buffer) All() []Record {
	return b.Recent(b.size)
}

func (b *Buffer) Len() int { return b.size }

func (b *Buffer) Cap() int { return len(b.items) }

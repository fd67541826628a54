package history

import (
	"sync"
	"time"

	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
)

// Record is one completed summarization. Immutable once appended.
type Record struct {
	Timestamp time.Time     `json:"timestamp"`
	Summary   string        `json:"summary"`
	Language  string        `json:"language"`
	Length    ingest.Length `json:"length"`
	Format    ingest.Format `json:"format"`
}

// DefaultCapacity bounds the buffer to the five most recent summaries.
const DefaultCapacity = 5

// Buffer is a capacity-bounded FIFO of summary records. It is the only piece
// of state shared across requests, so every access is serialized.
type Buffer struct {
	mu       sync.Mutex
	records  []Record
	capacity int
}

// NewBuffer constructs an empty buffer. Non-positive capacities fall back to
// DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// Append adds the record at the end, evicting from the front once the
// capacity is exceeded. Eviction is purely positional.
func (b *Buffer) Append(record Record) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, record)
	if excess := len(b.records) - b.capacity; excess > 0 {
		b.records = append(b.records[:0:0], b.records[excess:]...)
	}
}

// Clear empties the buffer unconditionally.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = nil
}

// Snapshot returns the records oldest-first. The returned slice is a copy and
// safe to hold across requests.
func (b *Buffer) Snapshot() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

package standings

import "time"

// TimestampLayout is the updatedAt format the display page parses (UTC, no zone suffix).
const TimestampLayout = "2006-01-02 15:04:05"

// Source records which extractor produced a snapshot's rows.
type Source string

const (
	SourceTable Source = "table"
	SourceText  Source = "text"
	SourceNone  Source = "none"
)

// Snapshot is the complete ordered table of one competition captured in one run.
type Snapshot struct {
	FiksID   string   `json:"fiksId"`
	Source   Source   `json:"source,omitempty"`
	Degraded bool     `json:"degraded"`
	Unmapped []string `json:"unmapped,omitempty"` // columns resolved by position or unreadable
	Rows     []Row    `json:"rows"`
}

// NewSnapshot creates an empty snapshot for a competition.
func NewSnapshot(fiksID string) *Snapshot {
	return &Snapshot{
		FiksID: fiksID,
		Rows:   make([]Row, 0),
	}
}

// Len returns the number of rows, treating nil as empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// Empty reports whether the snapshot holds no rows.
func (s *Snapshot) Empty() bool {
	return s.Len() == 0
}

// Keys lists the competition slots of a Feed in persisted order.
var Keys = []string{"a", "b"}

// Feed is the persisted document: one snapshot per tracked competition.
type Feed struct {
	UpdatedAt string    `json:"updatedAt"`
	A         *Snapshot `json:"a"`
	B         *Snapshot `json:"b"`
}

// NewFeed creates a feed with two empty snapshots.
func NewFeed() *Feed {
	return &Feed{
		A: NewSnapshot(""),
		B: NewSnapshot(""),
	}
}

// Get returns the snapshot stored under key ("a" or "b").
func (f *Feed) Get(key string) *Snapshot {
	if f == nil {
		return nil
	}
	switch key {
	case "a":
		return f.A
	case "b":
		return f.B
	}
	return nil
}

// Set stores snap under key. Unknown keys are ignored.
func (f *Feed) Set(key string, snap *Snapshot) {
	switch key {
	case "a":
		f.A = snap
	case "b":
		f.B = snap
	}
}

// Stamp sets UpdatedAt from t in the display page's format.
func (f *Feed) Stamp(t time.Time) {
	f.UpdatedAt = t.UTC().Format(TimestampLayout)
}

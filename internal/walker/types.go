package walker

import (
	"sync"
)

// SkippedReason clarifies why a path could not be traversed.
type SkippedReason string

const (
	ReasonOpenError SkippedReason = "Skipped (Directory Open Error)"
	ReasonReadError SkippedReason = "Skipped (Directory Read Error)"
)

// SkippedItem holds information about a path abandoned by a non-fatal
// traversal error.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker accumulates skipped items for the end-of-run summary.
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a tracker with the given initial capacity.
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track records one skipped path.
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns the tracked skipped items.
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.items
}

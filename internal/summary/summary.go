// Package summary accumulates per-run statistics for the --stats output.
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/halvard/ffind/internal/walker"
)

// Stats counts matched entries by kind and records the traversal skips.
type Stats struct {
	Files    int64
	Dirs     int64
	Symlinks int64
	Others   int64
	Skipped  []walker.SkippedItem

	start time.Time
}

// NewStats starts the clock.
func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

// Record counts one matched entry.
func (s *Stats) Record(e *walker.Entry) {
	switch e.Kind {
	case walker.KindFile:
		s.Files++
	case walker.KindDir:
		s.Dirs++
	case walker.KindSymlink:
		s.Symlinks++
	default:
		s.Others++
	}
}

// Total returns the number of matched entries.
func (s *Stats) Total() int64 {
	return s.Files + s.Dirs + s.Symlinks + s.Others
}

// Print writes the summary block.
func (s *Stats) Print(w io.Writer) {
	elapsed := time.Since(s.start).Round(time.Millisecond)
	fmt.Fprintf(w, "%d results (%d files, %d directories, %d symlinks, %d other) in %v\n",
		s.Total(), s.Files, s.Dirs, s.Symlinks, s.Others, elapsed)

	if len(s.Skipped) == 0 {
		return
	}
	items := make([]walker.SkippedItem, len(s.Skipped))
	copy(items, s.Skipped)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})
	fmt.Fprintf(w, "%d paths could not be traversed:\n", len(items))
	for _, item := range items {
		fmt.Fprintf(w, "  %s [%s]\n", item.Path, item.Reason)
	}
}

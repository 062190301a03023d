// Package finder wires the traversal core to the search pattern and the
// metadata filter. It owns no traversal or precedence logic: it builds a
// fresh ignore stack and walker per root and streams the survivors to a
// caller-supplied yield function.
package finder

import (
	"errors"
	"fmt"

	"github.com/halvard/ffind/internal/filter"
	"github.com/halvard/ffind/internal/ignore"
	"github.com/halvard/ffind/internal/pattern"
	"github.com/halvard/ffind/internal/utils"
	"github.com/halvard/ffind/internal/walker"
)

// ErrStop may be returned by a yield function to end the search early
// without reporting an error.
var ErrStop = errors.New("finder: stop")

// Options assemble one search. Pattern and Filter may be nil, meaning
// "match everything".
type Options struct {
	Pattern *pattern.Pattern
	Filter  *filter.Filter
	Logger  utils.Logger

	Hidden        bool
	Excludes      []string
	MinDepth      int
	MaxDepth      int
	Follow        bool
	OneFileSystem bool

	// NoIgnore disables every ignore source; IgnoreOptions tune the stack
	// otherwise (sources, git requirement, global file location).
	NoIgnore      bool
	IgnoreOptions []ignore.Option
}

// Finder runs searches over one or more roots with a shared configuration.
type Finder struct {
	opts    Options
	skipped []walker.SkippedItem
}

// New creates a Finder.
func New(opts Options) *Finder {
	if opts.Logger == nil {
		opts.Logger = utils.NoopLogger{}
	}
	return &Finder{opts: opts}
}

// Find walks root and calls yield for every entry that survives ignore
// resolution, the search pattern and the filter. Walkers are single-start,
// so each call constructs a fresh one; non-fatal skips accumulate across
// calls for the summary.
func (f *Finder) Find(root string, yield func(e *walker.Entry) error) error {
	walkOpts := []walker.Option{
		walker.WithLogger(f.opts.Logger),
		walker.WithHidden(f.opts.Hidden),
		walker.WithExcludes(f.opts.Excludes),
		walker.WithMinDepth(f.opts.MinDepth),
		walker.WithMaxDepth(f.opts.MaxDepth),
		walker.WithFollow(f.opts.Follow),
		walker.WithOneFileSystem(f.opts.OneFileSystem),
	}
	if !f.opts.NoIgnore {
		ignoreOpts := append([]ignore.Option{ignore.WithLogger(f.opts.Logger)}, f.opts.IgnoreOptions...)
		walkOpts = append(walkOpts, walker.WithIgnoreStack(ignore.NewStack(ignoreOpts...)))
	}

	w := walker.New(walkOpts...)
	if err := w.Start(root); err != nil {
		return fmt.Errorf("finder: %w", err)
	}
	defer w.Close()
	defer func() {
		f.skipped = append(f.skipped, w.Skipped()...)
	}()

	for w.Next() {
		e := w.Entry()
		if f.opts.Pattern != nil && !f.opts.Pattern.Match(e.Name, e.Path) {
			continue
		}
		if f.opts.Filter != nil && !f.opts.Filter.Matches(e) {
			continue
		}
		if err := yield(e); err != nil {
			if errors.Is(err, ErrStop) {
				break
			}
			return err
		}
	}
	return w.Err()
}

// Skipped returns the paths every Find call so far abandoned on non-fatal
// traversal errors.
func (f *Finder) Skipped() []walker.SkippedItem {
	return f.skipped
}

package walker

import (
	"github.com/halvard/ffind/internal/ignore"
	"github.com/halvard/ffind/internal/utils"
)

// walkOptions configures the behavior of a Walker.
type walkOptions struct {
	logger        utils.Logger
	ignores       *ignore.Stack
	hidden        bool
	excludes      []string
	minDepth      int
	maxDepth      int
	follow        bool
	oneFileSystem bool
}

// defaultOptions returns the default walk options: hidden entries skipped,
// no depth bounds, symlinks not followed, no ignore sources.
func defaultOptions() walkOptions {
	return walkOptions{
		logger:   utils.NoopLogger{},
		minDepth: 0,
		maxDepth: -1,
	}
}

// Option is a functional option for configuring a Walker.
type Option func(*walkOptions)

// WithLogger sets a custom logger for the walker.
func WithLogger(logger utils.Logger) Option {
	return func(o *walkOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIgnoreStack supplies the ignore-resolution stack the walker pushes
// and pops in lock-step with its own frames. Nil disables ignore handling.
func WithIgnoreStack(s *ignore.Stack) Option {
	return func(o *walkOptions) {
		o.ignores = s
	}
}

// WithHidden includes dotfiles in the walk instead of skipping them.
func WithHidden(enabled bool) Option {
	return func(o *walkOptions) {
		o.hidden = enabled
	}
}

// WithExcludes sets glob patterns that unconditionally exclude any entry
// whose basename or relative path matches.
func WithExcludes(patterns []string) Option {
	return func(o *walkOptions) {
		o.excludes = patterns
	}
}

// WithMinDepth suppresses yielding entries shallower than depth. Descent is
// unaffected.
func WithMinDepth(depth int) Option {
	return func(o *walkOptions) {
		if depth > 0 {
			o.minDepth = depth
		}
	}
}

// WithMaxDepth bounds descent: a directory at depth d is only opened when
// d < depth. Negative means unbounded.
func WithMaxDepth(depth int) Option {
	return func(o *walkOptions) {
		o.maxDepth = depth
	}
}

// WithFollow descends through symlinks that resolve to directories, with
// cycle protection.
func WithFollow(enabled bool) Option {
	return func(o *walkOptions) {
		o.follow = enabled
	}
}

// WithOneFileSystem keeps the walk on the filesystem of the root: a
// directory on another device is yielded but never descended into. No-op
// on platforms without device IDs.
func WithOneFileSystem(enabled bool) Option {
	return func(o *walkOptions) {
		o.oneFileSystem = enabled
	}
}

package ignore

import (
	"os"
	"path/filepath"

	"github.com/halvard/ffind/internal/utils"
)

// Option is a functional option for configuring a Stack.
type Option func(*Stack)

// WithGitignore enables or disables the per-directory .gitignore source.
func WithGitignore(enabled bool) Option {
	return func(s *Stack) {
		s.useGitignore = enabled
	}
}

// WithDotIgnore enables or disables the per-directory .ignore source.
func WithDotIgnore(enabled bool) Option {
	return func(s *Stack) {
		s.useDotIgnore = enabled
	}
}

// WithFdignore enables or disables the per-directory .fdignore source.
func WithFdignore(enabled bool) Option {
	return func(s *Stack) {
		s.useFdignore = enabled
	}
}

// WithRequireGit controls whether .gitignore files are only honored inside
// a git repository (a directory containing .git, or under one).
func WithRequireGit(required bool) Option {
	return func(s *Stack) {
		s.requireGit = required
	}
}

// WithGlobalIgnore enables or disables the process-wide global ignore file.
func WithGlobalIgnore(enabled bool) Option {
	return func(s *Stack) {
		s.useGlobal = enabled
	}
}

// WithGlobalPath overrides the location of the global ignore file.
func WithGlobalPath(path string) Option {
	return func(s *Stack) {
		s.globalPath = path
	}
}

// WithLogger sets a custom logger for the stack.
func WithLogger(logger utils.Logger) Option {
	return func(s *Stack) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// DefaultGlobalPath returns the conventional global ignore file location
// under the user's configuration directory, or "" when the home directory
// cannot be resolved.
func DefaultGlobalPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ffind", "ignore")
}

package ignore

import (
	"os"
	"path/filepath"

	"github.com/halvard/ffind/internal/utils"
)

// level is the ignore-file state for one directory on the traversal path.
type level struct {
	gitignore *File
	dotignore *File
	fdignore  *File
	// pathLen is the byte length of the root-relative path naming this
	// directory, 0 for the search root. Anchored rules are matched against
	// the entry path with this prefix (and its trailing separator) removed.
	pathLen int
	// hasGit records a .git entry directly in this directory. A plain file
	// counts too, covering worktrees and submodules.
	hasGit bool
}

// Stack resolves ignore decisions for the directory the traversal is
// currently in. Levels are pushed and popped in lock-step with the walker's
// own frame stack, root first; the global file sits outside the stack and
// is loaded once at construction.
type Stack struct {
	levels []level
	global *File

	useGitignore bool
	useDotIgnore bool
	useFdignore  bool
	useGlobal    bool
	requireGit   bool
	globalPath   string
	logger       utils.Logger
}

// NewStack creates a Stack with every source enabled and the git-repository
// requirement on, matching gitignore-honoring finders.
func NewStack(opts ...Option) *Stack {
	s := &Stack{
		useGitignore: true,
		useDotIgnore: true,
		useFdignore:  true,
		useGlobal:    true,
		requireGit:   true,
		globalPath:   DefaultGlobalPath(),
		logger:       utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.useGlobal && s.globalPath != "" {
		s.global = Load(s.globalPath)
		if s.global != nil {
			s.logger.Debug("ignore: loaded global ignore file %s (%d rules)",
				s.globalPath, len(s.global.Patterns))
		}
	}
	return s
}

// Depth returns the number of pushed levels.
func (s *Stack) Depth() int {
	return len(s.levels)
}

// PushLevel loads the ignore files of the directory being entered and
// pushes its level. dir is the absolute directory path; pathLen the byte
// length of its root-relative path (0 for the root itself).
func (s *Stack) PushLevel(dir string, pathLen int) {
	lv := level{pathLen: pathLen}

	if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
		lv.hasGit = true
	}
	inGit := lv.hasGit
	for i := range s.levels {
		if s.levels[i].hasGit {
			inGit = true
			break
		}
	}

	if s.useGitignore && (inGit || !s.requireGit) {
		lv.gitignore = Load(filepath.Join(dir, ".gitignore"))
	}
	if s.useDotIgnore {
		lv.dotignore = Load(filepath.Join(dir, ".ignore"))
	}
	if s.useFdignore {
		lv.fdignore = Load(filepath.Join(dir, ".fdignore"))
	}
	s.levels = append(s.levels, lv)
}

// PopLevel drops the most recently pushed level.
func (s *Stack) PopLevel() {
	if n := len(s.levels); n > 0 {
		s.levels = s.levels[:n-1]
	}
}

// levelRel rebases the root-relative path onto one level's directory so
// anchored rules see the path from their own file's point of view.
func (lv *level) levelRel(name, relPath string) string {
	switch {
	case lv.pathLen == 0:
		return relPath
	case lv.pathLen < len(relPath):
		return relPath[lv.pathLen+1:]
	default:
		return name
	}
}

// IsIgnored resolves the final ignore verdict for an entry. Levels are
// consulted root to leaf and, within a level, gitignore then .ignore then
// .fdignore; every source with an opinion overwrites the running verdict,
// so the later source and the deeper level always win. The global file is
// checked last against the root-relative path and its opinion is final.
func (s *Stack) IsIgnored(name, relPath string, isDir bool) bool {
	verdict := NoOpinion
	for i := range s.levels {
		lv := &s.levels[i]
		rel := lv.levelRel(name, relPath)
		for _, f := range []*File{lv.gitignore, lv.dotignore, lv.fdignore} {
			if v := f.Check(name, rel, isDir); v != NoOpinion {
				verdict = v
			}
		}
	}
	if v := s.global.Check(name, relPath, isDir); v != NoOpinion {
		verdict = v
	}
	return verdict == Ignored
}

// IsExplicitlyIncluded reports whether any negation rule anywhere in the
// stack (or the global file) matches the entry, independent of the
// precedence that IsIgnored applies. The walker uses it to let negations
// punch through the unconditional hidden-file skip, which runs before
// ignore resolution is otherwise consulted.
func (s *Stack) IsExplicitlyIncluded(name, relPath string, isDir bool) bool {
	for i := range s.levels {
		lv := &s.levels[i]
		rel := lv.levelRel(name, relPath)
		if lv.gitignore.hasNegationMatch(name, rel, isDir) ||
			lv.dotignore.hasNegationMatch(name, rel, isDir) ||
			lv.fdignore.hasNegationMatch(name, rel, isDir) {
			return true
		}
	}
	return s.global.hasNegationMatch(name, relPath, isDir)
}

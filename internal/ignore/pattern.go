// Package ignore implements layered ignore-file resolution: parsing of
// gitignore-style rule files and a stack of per-directory rule sets with
// precedence and negation, consulted by the walker for every entry.
package ignore

import (
	"strings"

	"github.com/halvard/ffind/internal/glob"
)

// Pattern is a single parsed ignore rule. It is immutable after parsing.
type Pattern struct {
	// Text is the glob body with the '!' prefix, trailing '/' and leading
	// '/' already stripped.
	Text string
	// Negated re-includes a path that an earlier rule excluded.
	Negated bool
	// DirOnly restricts the rule to directories (trailing '/').
	DirOnly bool
	// Anchored rules match the path relative to the directory owning the
	// file, not the bare basename (leading '/' or any embedded '/').
	Anchored bool
}

// parseLine turns one raw ignore-file line into a Pattern. ok is false for
// blank lines, comments and the degenerate lone "!".
func parseLine(line string) (Pattern, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return Pattern{}, false
	}

	var p Pattern
	if line[0] == '!' {
		p.Negated = true
		line = line[1:]
		if line == "" {
			return Pattern{}, false
		}
	}
	if strings.HasSuffix(line, "/") {
		p.DirOnly = true
		line = strings.TrimSuffix(line, "/")
		if line == "" {
			return Pattern{}, false
		}
	}
	// A separator anywhere anchors the rule to its own directory level.
	if strings.Contains(line, "/") {
		p.Anchored = true
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			return Pattern{}, false
		}
	}
	p.Text = line
	return p, true
}

// Matches reports whether the rule applies to an entry with the given
// basename and level-relative path.
func (p Pattern) Matches(name, relPath string, isDir bool) bool {
	if p.DirOnly && !isDir {
		return false
	}
	if p.Anchored {
		return glob.Match(p.Text, relPath)
	}
	return glob.Match(p.Text, name)
}

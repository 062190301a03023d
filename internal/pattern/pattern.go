// Package pattern matches user search patterns against found entries,
// with smart-case semantics.
package pattern

import (
	"strings"
	"unicode"

	"github.com/halvard/ffind/internal/glob"
)

// Case selects how letter case is compared.
type Case int

const (
	// CaseSmart is case-sensitive exactly when the pattern contains an
	// uppercase letter.
	CaseSmart Case = iota
	CaseSensitive
	CaseInsensitive
)

// Options configure a Pattern.
type Options struct {
	Case Case
	// FullPath matches the pattern against the '/'-joined root-relative
	// path instead of the basename.
	FullPath bool
}

// Pattern is one compiled search pattern. The zero-value text matches
// everything.
type Pattern struct {
	text      string
	sensitive bool
	fullPath  bool
}

// New compiles a search pattern. The glob grammar is shared with ignore
// rules; an empty text matches every entry.
func New(text string, opts Options) *Pattern {
	sensitive := true
	switch opts.Case {
	case CaseSmart:
		sensitive = strings.ContainsFunc(text, unicode.IsUpper)
	case CaseInsensitive:
		sensitive = false
	}
	if !sensitive {
		text = strings.ToLower(text)
	}
	return &Pattern{text: text, sensitive: sensitive, fullPath: opts.FullPath}
}

// Match reports whether an entry with the given basename and relative path
// satisfies the pattern.
func (p *Pattern) Match(name, relPath string) bool {
	if p.text == "" {
		return true
	}
	candidate := name
	if p.fullPath {
		candidate = relPath
	}
	if !p.sensitive {
		candidate = strings.ToLower(candidate)
	}
	return glob.Match(p.text, candidate)
}

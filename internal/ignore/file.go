package ignore

import (
	"os"
	"strings"
)

// Verdict is the tri-state outcome of checking an entry against ignore
// rules.
type Verdict int

const (
	// NoOpinion means no rule matched; the caller keeps its running verdict.
	NoOpinion Verdict = iota
	// Ignored means the last matching rule excludes the entry.
	Ignored
	// Included means the last matching rule was a negation.
	Included
)

// File is the parsed content of one ignore file, rules in file order.
type File struct {
	// Origin is the path the file was loaded from, kept for diagnostics.
	Origin   string
	Patterns []Pattern
}

// Parse builds a File from raw content. It returns nil when the content
// yields no usable rules, so callers treat "empty file" and "file of
// comments" the same as "no file".
func Parse(origin string, content []byte) *File {
	var patterns []Pattern
	for _, line := range strings.Split(string(content), "\n") {
		if p, ok := parseLine(line); ok {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return nil
	}
	return &File{Origin: origin, Patterns: patterns}
}

// Load reads and parses the ignore file at path. A missing or unreadable
// file is "no file" (nil), never an error.
func Load(path string) *File {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return Parse(path, content)
}

// Check scans every rule in file order and returns the verdict of the last
// one that matches, realizing gitignore's last-match-wins rule within a
// single file. relPath must be relative to the directory owning the file.
func (f *File) Check(name, relPath string, isDir bool) Verdict {
	if f == nil {
		return NoOpinion
	}
	verdict := NoOpinion
	for _, p := range f.Patterns {
		if !p.Matches(name, relPath, isDir) {
			continue
		}
		if p.Negated {
			verdict = Included
		} else {
			verdict = Ignored
		}
	}
	return verdict
}

// hasNegationMatch reports whether any negation rule in the file matches the
// entry, ignoring every non-negated rule and the last-match-wins order.
func (f *File) hasNegationMatch(name, relPath string, isDir bool) bool {
	if f == nil {
		return false
	}
	for _, p := range f.Patterns {
		if p.Negated && p.Matches(name, relPath, isDir) {
			return true
		}
	}
	return false
}

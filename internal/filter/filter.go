// Package filter evaluates type, size and modification-time predicates
// against found entries. Metadata failures never propagate: an entry whose
// metadata cannot be read simply does not match.
package filter

import (
	"time"

	"github.com/halvard/ffind/internal/walker"
)

// Filter is the conjunction of all configured predicates. The zero value
// (via New) matches everything.
type Filter struct {
	types         map[byte]struct{}
	sizes         []SizeConstraint
	changedWithin time.Time
	changedBefore time.Time
}

// New returns an empty filter.
func New() *Filter {
	return &Filter{}
}

// Empty reports whether no predicate is configured.
func (f *Filter) Empty() bool {
	return len(f.types) == 0 && len(f.sizes) == 0 &&
		f.changedWithin.IsZero() && f.changedBefore.IsZero()
}

// AddType adds one fd-style type letter: f (file), d (directory),
// l (symlink), s (socket), p (pipe), b (block device), c (char device),
// x (executable), e (empty).
func (f *Filter) AddType(spec string) error {
	letter, err := ParseType(spec)
	if err != nil {
		return err
	}
	if f.types == nil {
		f.types = make(map[byte]struct{})
	}
	f.types[letter] = struct{}{}
	return nil
}

// AddSize adds one size constraint; an entry must satisfy all of them.
func (f *Filter) AddSize(spec string) error {
	c, err := ParseSize(spec)
	if err != nil {
		return err
	}
	f.sizes = append(f.sizes, c)
	return nil
}

// SetChangedWithin requires the modification time to be at or after the
// instant spec describes, relative to now.
func (f *Filter) SetChangedWithin(spec string, now time.Time) error {
	t, err := ParseTime(spec, now)
	if err != nil {
		return err
	}
	f.changedWithin = t
	return nil
}

// SetChangedBefore requires the modification time to be before the instant
// spec describes, relative to now.
func (f *Filter) SetChangedBefore(spec string, now time.Time) error {
	t, err := ParseTime(spec, now)
	if err != nil {
		return err
	}
	f.changedBefore = t
	return nil
}

// Matches reports whether the entry satisfies every configured predicate.
// Size and time predicates apply to regular files only: when one is
// present, a non-file never matches.
func (f *Filter) Matches(e *walker.Entry) bool {
	if len(f.types) > 0 && !f.matchesType(e) {
		return false
	}
	if len(f.sizes) > 0 {
		if e.Kind != walker.KindFile {
			return false
		}
		info, err := e.Stat()
		if err != nil {
			return false
		}
		for _, c := range f.sizes {
			if !c.Matches(info.Size()) {
				return false
			}
		}
	}
	if !f.changedWithin.IsZero() || !f.changedBefore.IsZero() {
		if e.Kind != walker.KindFile {
			return false
		}
		info, err := e.Stat()
		if err != nil {
			return false
		}
		mtime := info.ModTime()
		if !f.changedWithin.IsZero() && mtime.Before(f.changedWithin) {
			return false
		}
		if !f.changedBefore.IsZero() && !mtime.Before(f.changedBefore) {
			return false
		}
	}
	return true
}

// matchesType reports whether the entry satisfies at least one of the
// configured type letters.
func (f *Filter) matchesType(e *walker.Entry) bool {
	for letter := range f.types {
		switch letter {
		case 'f':
			if e.Kind == walker.KindFile {
				return true
			}
		case 'd':
			if e.Kind == walker.KindDir {
				return true
			}
		case 'l':
			if e.Kind == walker.KindSymlink {
				return true
			}
		case 's':
			if e.Kind == walker.KindSocket {
				return true
			}
		case 'p':
			if e.Kind == walker.KindPipe {
				return true
			}
		case 'b':
			if e.Kind == walker.KindBlockDevice {
				return true
			}
		case 'c':
			if e.Kind == walker.KindCharDevice {
				return true
			}
		case 'x':
			if e.Kind != walker.KindFile {
				continue
			}
			if info, err := e.Stat(); err == nil && info.Mode().Perm()&0o111 != 0 {
				return true
			}
		case 'e':
			if e.Kind != walker.KindFile && e.Kind != walker.KindDir {
				continue
			}
			if empty, err := e.IsEmpty(); err == nil && empty {
				return true
			}
		}
	}
	return false
}

package walker

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Kind classifies a filesystem object by its directory-entry type.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
	KindSocket
	KindPipe
	KindBlockDevice
	KindCharDevice
	KindOther
)

// String returns the fd-style single-letter spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "f"
	case KindDir:
		return "d"
	case KindSymlink:
		return "l"
	case KindSocket:
		return "s"
	case KindPipe:
		return "p"
	case KindBlockDevice:
		return "b"
	case KindCharDevice:
		return "c"
	default:
		return "?"
	}
}

// kindOf maps a directory-entry mode to a Kind.
func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode&fs.ModeSocket != 0:
		return KindSocket
	case mode&fs.ModeNamedPipe != 0:
		return KindPipe
	case mode&fs.ModeCharDevice != 0:
		return KindCharDevice
	case mode&fs.ModeDevice != 0:
		return KindBlockDevice
	default:
		return KindOther
	}
}

// Entry is one found filesystem object. It is a short-lived, single-use
// value: the caller inspects it, possibly asks for metadata, and discards
// it before pulling the next one.
type Entry struct {
	// Path is relative to the search root, '/'-separated.
	Path string
	// Name is the basename of Path.
	Name string
	// Depth is 0 for direct children of the root.
	Depth int
	Kind  Kind

	root     string
	info     fs.FileInfo
	statErr  error
	statDone bool
}

// AbsPath returns the entry's path joined onto the search root, in the
// platform's separator convention.
func (e *Entry) AbsPath() string {
	return filepath.Join(e.root, filepath.FromSlash(e.Path))
}

// Stat fetches the entry's metadata (lstat semantics) on first call and
// caches it; repeated calls are free. Failure means the object vanished or
// access is denied; callers treat that as "does not match", not as a
// traversal failure.
func (e *Entry) Stat() (fs.FileInfo, error) {
	if !e.statDone {
		e.info, e.statErr = os.Lstat(e.AbsPath())
		e.statDone = true
	}
	return e.info, e.statErr
}

// IsEmpty reports whether a directory has no entries or a file has zero
// size. For directories this reads at most one entry, not the whole
// listing.
func (e *Entry) IsEmpty() (bool, error) {
	if e.Kind == KindDir {
		dir, err := os.Open(e.AbsPath())
		if err != nil {
			return false, err
		}
		defer dir.Close()
		_, err = dir.ReadDir(1)
		if err == io.EOF {
			return true, nil
		}
		return false, err
	}
	info, err := e.Stat()
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}

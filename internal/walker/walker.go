// Package walker implements the explicit-stack, pull-based directory
// traversal at the heart of ffind. Callers drive it one entry at a time:
//
//	w := walker.New(opts...)
//	if err := w.Start(root); err != nil { ... }
//	defer w.Close()
//	for w.Next() {
//		e := w.Entry()
//		...
//	}
//	if err := w.Err(); err != nil { ... }
//
// Traversal is depth-first in the underlying directory-iteration order.
// Every open directory handle is owned by exactly one stack frame and is
// closed when that frame is popped or when Close tears the stack down, so
// abandoning a walk early cannot leak handles.
package walker

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/halvard/ffind/internal/glob"
)

// ErrAlreadyStarted is returned by Start when the Walker has been started
// before. A Walker traverses one root; use a fresh one per root.
var ErrAlreadyStarted = errors.New("walker: already started")

// readBatchSize is how many directory entries a frame reads per refill.
const readBatchSize = 64

// frame is one level of the traversal stack. It exclusively owns its
// directory handle, which is closed exactly once: on exhaustion or on
// teardown.
type frame struct {
	dir     *os.File
	batch   []fs.DirEntry
	next    int
	pathLen int
	// depth assigned to this directory's children; 0 for the root frame.
	depth int
}

// Walker walks a directory tree lazily. It is single-threaded; all
// filesystem I/O happens inside Start and Next.
type Walker struct {
	opts walkOptions

	root    string
	frames  []frame
	pathBuf []byte
	cur     *Entry
	err     error
	started bool
	closed  bool

	rootDev  uint64
	checkDev bool
	// seen holds resolved paths of every descended directory in follow
	// mode, so symlink cycles are broken instead of looped.
	seen map[string]struct{}

	tracker *SkippedTracker
}

// New creates a Walker. It does no I/O until Start.
func New(opts ...Option) *Walker {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Walker{
		opts:    options,
		tracker: NewSkippedTracker(16),
	}
}

// Start opens the root directory and prepares the stack. It may be called
// only once per Walker; a second call returns ErrAlreadyStarted.
func (w *Walker) Start(root string) error {
	if w.started {
		return ErrAlreadyStarted
	}
	w.started = true

	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("walker: resolving root %q: %w", root, err)
	}
	dir, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("walker: opening root %q: %w", root, err)
	}
	info, err := dir.Stat()
	if err != nil {
		dir.Close()
		return fmt.Errorf("walker: stat root %q: %w", root, err)
	}
	if !info.IsDir() {
		dir.Close()
		return fmt.Errorf("walker: root %q is not a directory", root)
	}

	w.root = abs
	if w.opts.oneFileSystem {
		if dev, ok := deviceID(info); ok {
			w.rootDev = dev
			w.checkDev = true
		}
	}
	if w.opts.follow {
		w.seen = make(map[string]struct{})
		if real, err := filepath.EvalSymlinks(abs); err == nil {
			w.seen[real] = struct{}{}
		}
	}

	if w.opts.ignores != nil {
		w.opts.ignores.PushLevel(abs, 0)
	}
	w.frames = append(w.frames, frame{dir: dir, pathLen: 0, depth: 0})
	w.opts.logger.Debug("walker: started at %s", abs)
	return nil
}

// Next advances to the next surviving entry, available through Entry until
// the following call. It returns false on exhaustion, after Close, or on a
// fatal error (distinguish via Err).
func (w *Walker) Next() bool {
	if w.closed || w.err != nil {
		return false
	}
	for len(w.frames) > 0 {
		f := &w.frames[len(w.frames)-1]
		if f.next >= len(f.batch) {
			batch, err := f.dir.ReadDir(readBatchSize)
			if err != nil && err != io.EOF {
				if !isTransient(err) {
					w.err = fmt.Errorf("walker: reading directory %q: %w", w.frameRel(f), err)
					return false
				}
				// The rest of this directory is unreadable; record it and
				// resume with the parent's siblings.
				w.tracker.Track(w.frameRel(f), ReasonReadError, true)
				w.popFrame()
				continue
			}
			if len(batch) == 0 {
				w.popFrame()
				continue
			}
			f.batch, f.next = batch, 0
		}

		de := f.batch[f.next]
		f.next++

		// Copy the frame fields now: descending appends to w.frames, which
		// may reallocate and leave f dangling.
		depth, pathLen := f.depth, f.pathLen

		name := de.Name()
		rel := w.appendPath(pathLen, name)
		kind := kindOf(de.Type())
		if kind == KindSymlink && w.opts.follow {
			if info, err := os.Stat(w.fullPath(rel)); err == nil {
				kind = kindOf(info.Mode())
			}
		}
		isDir := kind == KindDir

		if !w.opts.hidden && strings.HasPrefix(name, ".") {
			if w.opts.ignores == nil || !w.opts.ignores.IsExplicitlyIncluded(name, rel, isDir) {
				continue
			}
		}
		if w.excluded(name, rel) {
			continue
		}
		if w.opts.ignores != nil && w.opts.ignores.IsIgnored(name, rel, isDir) {
			continue
		}

		if isDir && (w.opts.maxDepth < 0 || depth < w.opts.maxDepth) {
			w.descend(rel, depth)
		}
		if depth < w.opts.minDepth {
			continue
		}

		w.cur = &Entry{Path: rel, Name: name, Depth: depth, Kind: kind, root: w.root}
		return true
	}
	return false
}

// Entry returns the entry found by the most recent successful Next.
func (w *Walker) Entry() *Entry {
	return w.cur
}

// Err returns the fatal error that ended the walk, if any. Transient
// errors never surface here; they are recorded as skipped items.
func (w *Walker) Err() error {
	return w.err
}

// Skipped returns the paths abandoned by non-fatal traversal errors.
func (w *Walker) Skipped() []SkippedItem {
	return w.tracker.Items()
}

// Close releases every still-open directory handle. It is idempotent and
// the only guaranteed release path when iteration is abandoned early.
func (w *Walker) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	for len(w.frames) > 0 {
		w.popFrame()
	}
	return nil
}

// appendPath builds the entry's root-relative path in the shared buffer:
// truncate to the parent's prefix, append a separator and the basename. The
// string conversion gives the Entry its own copy.
func (w *Walker) appendPath(pathLen int, name string) string {
	w.pathBuf = w.pathBuf[:pathLen]
	if pathLen > 0 {
		w.pathBuf = append(w.pathBuf, '/')
	}
	w.pathBuf = append(w.pathBuf, name...)
	return string(w.pathBuf)
}

// frameRel returns the top frame's own root-relative path. The shared
// buffer's first pathLen bytes are exactly that path while the frame is on
// top of the stack.
func (w *Walker) frameRel(f *frame) string {
	if f.pathLen == 0 {
		return "."
	}
	return string(w.pathBuf[:f.pathLen])
}

func (w *Walker) fullPath(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func (w *Walker) excluded(name, rel string) bool {
	for _, pattern := range w.opts.excludes {
		if glob.Match(pattern, name) || glob.Match(pattern, rel) {
			return true
		}
	}
	return false
}

// descend opens the directory at rel and pushes an ignore level and a
// frame for it. Failure to open is non-fatal: the directory entry itself
// stays eligible to be yielded, there is just nothing below it.
func (w *Walker) descend(rel string, parentDepth int) {
	full := w.fullPath(rel)

	if w.checkDev {
		if info, err := os.Stat(full); err == nil {
			if dev, ok := deviceID(info); ok && dev != w.rootDev {
				w.opts.logger.Debug("walker: %s is on another filesystem, not descending", rel)
				return
			}
		}
	}
	if w.opts.follow {
		if real, err := filepath.EvalSymlinks(full); err == nil {
			if _, ok := w.seen[real]; ok {
				w.opts.logger.Debug("walker: %s resolves to an already-visited directory, not descending", rel)
				return
			}
			w.seen[real] = struct{}{}
		}
	}

	dir, err := os.Open(full)
	if err != nil {
		w.opts.logger.Debug("walker: cannot open %s: %v", rel, err)
		w.tracker.Track(rel, ReasonOpenError, true)
		return
	}
	if w.opts.ignores != nil {
		w.opts.ignores.PushLevel(full, len(rel))
	}
	w.frames = append(w.frames, frame{dir: dir, pathLen: len(rel), depth: parentDepth + 1})
}

// popFrame closes the top frame's handle and pops it together with its
// ignore level.
func (w *Walker) popFrame() {
	top := len(w.frames) - 1
	if f := &w.frames[top]; f.dir != nil {
		f.dir.Close()
		f.dir = nil
	}
	if w.opts.ignores != nil {
		w.opts.ignores.PopLevel()
	}
	w.frames = w.frames[:top]
}

// isTransient classifies the error kinds the walk continues past.
func isTransient(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist)
}

// Package printer renders found entries to the configured output
// destination: plain paths, null-separated paths, absolute paths or
// {}-style format templates, with optional color by entry kind.
package printer

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/fatih/color"

	"github.com/halvard/ffind/internal/walker"
)

// Printer handles output formatting and writing to the configured output
// destination. It performs no traversal logic of its own.
type Printer struct {
	output    io.Writer
	useColors bool
	nullSep   bool
	absolute  bool
	format    string
	count     atomic.Int64
}

// New creates a new Printer with default settings.
func New() *Printer {
	return &Printer{
		output: os.Stdout,
	}
}

// WithOutput sets the output destination.
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output.
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithNullSeparator terminates results with NUL instead of newline, for
// consumption by xargs -0 and friends.
func (p *Printer) WithNullSeparator(enabled bool) *Printer {
	p.nullSep = enabled
	return p
}

// WithAbsolute prints paths joined onto the search root.
func (p *Printer) WithAbsolute(enabled bool) *Printer {
	p.absolute = enabled
	return p
}

// WithFormat renders each result through a {}-style template instead of
// printing the bare path. Templates disable coloring.
func (p *Printer) WithFormat(format string) *Printer {
	p.format = format
	return p
}

// Print writes one entry.
func (p *Printer) Print(e *walker.Entry) {
	path := e.Path
	if p.absolute {
		path = e.AbsPath()
	}

	var line string
	switch {
	case p.format != "":
		line = ExpandTemplate(p.format, path)
	case p.useColors:
		line = p.colorize(e, path)
	default:
		line = path
	}

	terminator := byte('\n')
	if p.nullSep {
		terminator = 0
	}
	fmt.Fprintf(p.output, "%s%c", line, terminator)
	p.count.Add(1)
}

// Count returns how many entries have been printed. Quiet mode uses it for
// the exit code.
func (p *Printer) Count() int64 {
	return p.count.Load()
}

var (
	dirColor     = color.New(color.FgBlue, color.Bold)
	symlinkColor = color.New(color.FgCyan)
	execColor    = color.New(color.FgGreen)
)

// colorize styles the path by entry kind the way ls does: directories
// bold blue, symlinks cyan, executable files green.
func (p *Printer) colorize(e *walker.Entry, path string) string {
	switch e.Kind {
	case walker.KindDir:
		return dirColor.Sprint(path)
	case walker.KindSymlink:
		return symlinkColor.Sprint(path)
	case walker.KindFile:
		if info, err := e.Stat(); err == nil && info.Mode().Perm()&0o111 != 0 {
			return execColor.Sprint(path)
		}
	}
	return path
}

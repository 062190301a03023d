package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SizeOp is the comparison direction of a size constraint.
type SizeOp byte

const (
	SizeExact   SizeOp = '='
	SizeAtLeast SizeOp = '+'
	SizeAtMost  SizeOp = '-'
)

// SizeConstraint is one parsed size specification.
type SizeConstraint struct {
	Op    SizeOp
	Bytes int64
}

// Matches reports whether a file of the given size satisfies the
// constraint.
func (c SizeConstraint) Matches(size int64) bool {
	switch c.Op {
	case SizeAtLeast:
		return size >= c.Bytes
	case SizeAtMost:
		return size <= c.Bytes
	default:
		return size == c.Bytes
	}
}

// sizeUnits maps fd's size suffixes to byte multipliers: single letters
// are decimal, the 'i' forms binary.
var sizeUnits = map[string]int64{
	"":   1,
	"b":  1,
	"k":  1000,
	"m":  1000 * 1000,
	"g":  1000 * 1000 * 1000,
	"t":  1000 * 1000 * 1000 * 1000,
	"ki": 1024,
	"mi": 1024 * 1024,
	"gi": 1024 * 1024 * 1024,
	"ti": 1024 * 1024 * 1024 * 1024,
}

// ParseSize parses a size specification like "10k", "+1mi" or "-500".
// '+' means at least, '-' at most, no prefix an exact size.
func ParseSize(spec string) (SizeConstraint, error) {
	c := SizeConstraint{Op: SizeExact}
	rest := strings.ToLower(strings.TrimSpace(spec))
	switch {
	case strings.HasPrefix(rest, "+"):
		c.Op = SizeAtLeast
		rest = rest[1:]
	case strings.HasPrefix(rest, "-"):
		c.Op = SizeAtMost
		rest = rest[1:]
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return c, fmt.Errorf("filter: invalid size %q: missing number", spec)
	}
	n, err := strconv.ParseInt(rest[:digits], 10, 64)
	if err != nil {
		return c, fmt.Errorf("filter: invalid size %q: %w", spec, err)
	}
	unit, ok := sizeUnits[rest[digits:]]
	if !ok {
		return c, fmt.Errorf("filter: invalid size %q: unknown unit %q", spec, rest[digits:])
	}
	c.Bytes = n * unit
	return c, nil
}

// timeLayouts are the accepted absolute date formats, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a time specification: either a duration before now
// ("30m", "12h", "2d", "1w") or an absolute date.
func ParseTime(spec string, now time.Time) (time.Time, error) {
	spec = strings.TrimSpace(spec)
	if d, err := parseLongDuration(spec); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("filter: invalid time %q: want a duration like 2d or a date like 2006-01-02", spec)
}

// parseLongDuration extends time.ParseDuration with day and week units.
func parseLongDuration(spec string) (time.Duration, error) {
	if d, err := time.ParseDuration(spec); err == nil {
		return d, nil
	}
	if len(spec) < 2 {
		return 0, fmt.Errorf("filter: invalid duration %q", spec)
	}
	unit := spec[len(spec)-1]
	n, err := strconv.ParseFloat(spec[:len(spec)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("filter: invalid duration %q", spec)
	}
	switch unit {
	case 'd':
		return time.Duration(n * 24 * float64(time.Hour)), nil
	case 'w':
		return time.Duration(n * 7 * 24 * float64(time.Hour)), nil
	}
	return 0, fmt.Errorf("filter: invalid duration %q", spec)
}

// validTypes is the accepted set of type letters.
const validTypes = "fdlspbcxe"

// typeAliases maps the long spellings fd also accepts to their letters.
var typeAliases = map[string]byte{
	"file":       'f',
	"directory":  'd',
	"dir":        'd',
	"symlink":    'l',
	"socket":     's',
	"pipe":       'p',
	"fifo":       'p',
	"block":      'b',
	"char":       'c',
	"executable": 'x',
	"empty":      'e',
}

// ParseType normalizes a type specification to its single letter.
func ParseType(spec string) (byte, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if letter, ok := typeAliases[s]; ok {
		return letter, nil
	}
	if len(s) == 1 && strings.IndexByte(validTypes, s[0]) >= 0 {
		return s[0], nil
	}
	return 0, fmt.Errorf("filter: invalid type %q: want one of %s", spec, validTypes)
}

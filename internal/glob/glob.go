// Package glob implements the pattern matching shared by ignore rules,
// exclude lists and search patterns.
package glob

import "strings"

// Match reports whether text matches pattern.
//
// Pattern syntax:
//
//	*     any run of characters except '/'
//	**    any run of characters including '/' (zero or more whole segments)
//	?     exactly one character except '/'
//	[...] character class; ranges like a-z; negated by a leading ! or ^
//
// There is no escaping, so ']' cannot appear inside a class. A '[' that is
// never closed is matched as a literal '[' instead of opening a class.
func Match(pattern, text string) bool {
	pi, ti := 0, 0
	// Resume point for the most recent single star: on a mismatch the star
	// is fed one more character and matching restarts after it.
	starPi, starTi := -1, -1

	for ti < len(text) {
		if pi < len(pattern) {
			switch c := pattern[pi]; c {
			case '*':
				if pi+1 < len(pattern) && pattern[pi+1] == '*' {
					return matchDoubleStar(pattern[pi:], text[ti:])
				}
				starPi, starTi = pi, ti
				pi++
				continue
			case '?':
				if text[ti] != '/' {
					pi++
					ti++
					continue
				}
			case '[':
				if matched, end, ok := matchClass(pattern, pi, text[ti]); ok {
					if matched {
						pi = end
						ti++
						continue
					}
				} else if text[ti] == '[' {
					pi++
					ti++
					continue
				}
			default:
				if c == text[ti] {
					pi++
					ti++
					continue
				}
			}
		}

		// A single star never swallows a separator, so backtracking stops at
		// the first '/' the star would have to consume.
		if starPi >= 0 && text[starTi] != '/' {
			starTi++
			pi = starPi + 1
			ti = starTi
			continue
		}
		return false
	}

	// Text consumed: the rest of the pattern must be stars only.
	for pi < len(pattern) {
		if pattern[pi] != '*' {
			return false
		}
		pi++
	}
	return true
}

// matchDoubleStar matches a pattern that starts with '**'. The stars and one
// directly following separator are consumed, then the remaining pattern is
// tried at the start of the text and after every separator in it, so '**'
// spans zero or more complete path segments.
func matchDoubleStar(pattern, text string) bool {
	i := 0
	for i < len(pattern) && pattern[i] == '*' {
		i++
	}
	if i >= len(pattern) {
		return true
	}
	if pattern[i] == '/' {
		i++
		if i >= len(pattern) {
			return true
		}
	}
	rest := pattern[i:]

	if Match(rest, text) {
		return true
	}
	for j := 0; j < len(text); j++ {
		if text[j] == '/' && Match(rest, text[j+1:]) {
			return true
		}
	}
	return false
}

// matchClass evaluates the character class opening at pattern[start] against
// ch. ok is false when the class has no closing bracket; end is the index
// just past the ']'. Classes never match the path separator.
func matchClass(pattern string, start int, ch byte) (matched bool, end int, ok bool) {
	i := start + 1
	negate := false
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		negate = true
		i++
	}
	closing := strings.IndexByte(pattern[i:], ']')
	if closing < 0 {
		return false, 0, false
	}
	body := pattern[i : i+closing]
	end = i + closing + 1

	if ch == '/' {
		return false, end, true
	}

	in := false
	for j := 0; j < len(body); j++ {
		if j+2 < len(body) && body[j+1] == '-' {
			if body[j] <= ch && ch <= body[j+2] {
				in = true
			}
			j += 2
		} else if body[j] == ch {
			in = true
		}
	}
	return in != negate, end, true
}

// HasMeta reports whether pattern contains any glob metacharacter. Patterns
// without metacharacters can be compared literally by callers.
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

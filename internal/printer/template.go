package printer

import (
	"path"
	"strings"
)

// Template placeholders, longest spelling first so replacement of "{/.}"
// never corrupts "{/}" or "{.}".
var placeholders = []struct {
	token  string
	expand func(p string) string
}{
	{"{/.}", func(p string) string { return stripExt(path.Base(p)) }},
	{"{//}", path.Dir},
	{"{/}", path.Base},
	{"{.}", stripExt},
	{"{}", func(p string) string { return p }},
}

// ExpandTemplate substitutes every placeholder in tmpl with the
// corresponding form of p: {} the full path, {/} the basename, {//} the
// parent, {.} the path without extension, {/.} the basename without
// extension.
func ExpandTemplate(tmpl, p string) string {
	out := tmpl
	for _, ph := range placeholders {
		if strings.Contains(out, ph.token) {
			out = strings.ReplaceAll(out, ph.token, ph.expand(p))
		}
	}
	return out
}

// HasPlaceholder reports whether tmpl contains any placeholder. Commands
// without one get the path appended as a final argument instead.
func HasPlaceholder(tmpl string) bool {
	for _, ph := range placeholders {
		if strings.Contains(tmpl, ph.token) {
			return true
		}
	}
	return false
}

func stripExt(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}

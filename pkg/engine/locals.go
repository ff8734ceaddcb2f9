package engine

import (
	"regexp"
	"strings"
)

// Local names with a meaning to the built-in engines.
const (
	LocalCache  = "cache"
	LocalPretty = "pretty"
)

var blankLines = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*)+`)

func cacheEnabled(locals map[string]any) bool {
	v, _ := locals[LocalCache].(bool)
	return v
}

// pretty reports whether formatted output was requested. Missing means true.
func pretty(locals map[string]any) bool {
	v, ok := locals[LocalPretty].(bool)
	return !ok || v
}

// finish applies the pretty local to rendered output.
func finish(out string, view View, locals map[string]any) string {
	if pretty(locals) {
		return out
	}
	if view.IsHTML() {
		out = blankLines.ReplaceAllString(out, "\n")
	}
	return strings.TrimSpace(out)
}

package inliner

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
)

// declaration is a single property assignment competing in the cascade.
type declaration struct {
	property  string
	value     string
	important bool
	inline    bool
	spec      cascadia.Specificity
	order     int
}

// outranks reports whether d wins over o for the same property.
// Precedence: !important, then inline style, then specificity, then source order.
func (d declaration) outranks(o declaration) bool {
	if d.important != o.important {
		return d.important
	}
	if d.inline != o.inline {
		return d.inline
	}
	if d.spec != o.spec {
		return o.spec.Less(d.spec)
	}
	return d.order > o.order
}

func (d declaration) String(preserveImportant bool) string {
	s := d.property + ": " + d.value
	if d.important && preserveImportant {
		s += " !important"
	}
	return s + ";"
}

// cascade returns the winning declaration per property, in the order the
// winners would be applied.
func cascade(decls []declaration) []declaration {
	winners := make(map[string]declaration, len(decls))
	for _, d := range decls {
		if cur, ok := winners[d.property]; !ok || d.outranks(cur) {
			winners[d.property] = d
		}
	}

	out := slices.Collect(maps.Values(winners))
	slices.SortFunc(out, func(a, b declaration) int {
		switch {
		case a.outranks(b):
			return 1
		case b.outranks(a):
			return -1
		}
		return 0
	})
	return out
}

func styleString(decls []declaration, preserveImportant bool) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.String(preserveImportant))
	}
	return strings.Join(parts, " ")
}

var dynamicPseudo = regexp.MustCompile(`(?i)::?(hover|active|focus|focus-within|focus-visible|visited|link|target|before|after|first-line|first-letter|selection|placeholder|marker)\b`)

// compileSelector parses a selector for inlining. Selectors that depend on
// user interaction or generate content report keep=true instead.
func compileSelector(sel string) (compiled cascadia.Sel, keep bool) {
	if dynamicPseudo.MatchString(sel) {
		return nil, true
	}
	c, err := cascadia.Parse(sel)
	if err != nil {
		return nil, strings.Contains(sel, ":")
	}
	return c, false
}

package i18n

import (
	"fmt"
	"strings"
)

// M holds placeholder values.
type M map[string]any

// ReplacePlaceholders replaces {{name}} placeholders in s with values from
// placeholders. Unknown placeholders are left unchanged.
func ReplacePlaceholders(s string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(s, "{{") {
		return s
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// pairsToM converts alternating key/value arguments to M.
// A trailing key without a value is ignored, as are non-string keys.
// An M argument is merged as a whole.
func pairsToM(args []any) M {
	if len(args) == 0 {
		return nil
	}

	out := M{}
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case M:
			for k, val := range v {
				out[k] = val
			}
			continue
		case map[string]any:
			for k, val := range v {
				out[k] = val
			}
			continue
		}

		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			continue
		}
		out[key] = args[i+1]
		i++
	}
	return out
}

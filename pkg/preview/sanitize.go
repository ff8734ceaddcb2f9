package preview

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	policyOnce  sync.Once
)

// Sanitize strips active content from message HTML. Layout markup and
// inline styles are kept.
func Sanitize(html string) string {
	policyOnce.Do(func() {
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowStyling()
		emailPolicy.AllowAttrs("style").Globally()
		emailPolicy.AllowAttrs("align", "valign", "width", "height", "bgcolor",
			"border", "cellpadding", "cellspacing").Globally()
		emailPolicy.AllowElements("center", "font", "span", "div")
		emailPolicy.AllowAttrs("color", "face", "size").OnElements("font")
		emailPolicy.AllowURLSchemes("http", "https", "mailto", "cid")
	})
	return emailPolicy.Sanitize(html)
}

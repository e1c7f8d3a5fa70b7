package sitesearch

import "strings"

// htmlEscaper replaces in a single pass, so an ampersand introduced by one
// replacement is never escaped again.
var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// Escape escapes raw text so it can be inserted into markup.
// It is not idempotent: escaping already escaped text escapes it twice,
// so callers must escape exactly once, at the raw-field boundary.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return htmlEscaper.Replace(s)
}

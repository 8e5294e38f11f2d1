// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag; script/style contents are dropped entirely.
var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from user-supplied text (names, titles,
// descriptions). The API stores and returns plain text, so the entities
// bluemonday escapes are decoded again.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

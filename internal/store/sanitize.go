package store

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// cleanCell strips any markup from a vocabulary cell. Entities escaped by the
// policy are turned back into text so the file round-trips unchanged.
func cleanCell(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(strings.TrimSpace(s))))
}

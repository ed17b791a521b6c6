package bulletin

import (
	"regexp"
	"strings"
)

// whitespaceRe collapses runs of spaces, tabs, and newlines. Bulletins arrive
// line-wrapped at transmission width; field extraction wants one token stream.
var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText normalizes raw bulletin text for field scanning: strips the "="
// end-of-product/continuation markers, collapses all whitespace to single
// spaces, trims, and upper-cases.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "=", "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.ToUpper(strings.TrimSpace(text))
}

package headings

import (
	"regexp"
	"strings"
)

// space is the Unicode whitespace set. RE2's \s alone is ASCII only.
const space = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	nonWordPattern   = regexp.MustCompile(`[^\w` + space + `-]`)
	separatorPattern = regexp.MustCompile(`[` + space + `_-]+`)
)

// Normalize lowercases text, drops characters other than word characters,
// whitespace and hyphens, collapses runs of whitespace, underscores and
// hyphens into one hyphen and trims hyphens from both ends.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = nonWordPattern.ReplaceAllString(s, "")
	s = separatorPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Slugify returns page + "/" + Normalize(text).
func Slugify(page, text string) string {
	return page + "/" + Normalize(text)
}

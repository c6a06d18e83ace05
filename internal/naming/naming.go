package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser capitalizes word-initial letters without lowering the rest.
var titleCaser = cases.Title(language.English, cases.NoLower)

// Singularize strips every trailing 's' from a word.
// Example: "users" -> "user"
// Example: "pets" -> "pet"
// Plural detection is deliberately naive; the result feeds generated
// parameter names, not user-facing prose.
func Singularize(s string) string {
	return strings.TrimRight(s, "s")
}

// ToTitleCase capitalizes the leading letter of each word.
// Example: "convert" -> "Convert"
func ToTitleCase(s string) string {
	return titleCaser.String(s)
}

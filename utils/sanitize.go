package utils

import (
	"fmt"
	"html"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizer strips every HTML element from user supplied text. Entities are
// unescaped afterwards so storage holds plain text; templates escape on
// output.
var sanitizer = bluemonday.StrictPolicy()

// linkPolicy allows only the anchors Linkify itself constructs.
var linkPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("href", "class", "target", "rel").OnElements("a")
	p.AllowStandardURLs()
	return p
}()

// Sanitize removes all HTML markup from input, returning plain text.
func Sanitize(input string) string {
	return html.UnescapeString(sanitizer.Sanitize(input))
}

var urlPattern = regexp.MustCompile(`https?://[^\s<]+`)

// Linkify escapes text and converts bare http/https URLs into safe clickable
// anchors. The result passes through a restrictive policy so nothing but the
// generated anchors survives as markup.
func Linkify(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	linked := urlPattern.ReplaceAllStringFunc(escaped, func(match string) string {
		return fmt.Sprintf(`<a href="%s" class="feed-link" target="_blank" rel="noopener noreferrer">%s</a>`, match, match)
	})
	return template.HTML(linkPolicy.Sanitize(linked))
}

package feed

import (
	"fmt"
	"strings"

	"podtube/internal/domain/regex"

	"golang.org/x/net/html"
)

// descriptionStyle floats the thumbnail left of the text, bounded to 30%
// of the viewport width.
const descriptionStyle = `<style type="text/css">
body > img { float: left; max-width: 30vw; margin: 0 1em 1em 0; }
</style>
`

// StripTags removes HTML markup from a string, leaving its text content.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}

// htmlDescription renders the HTML-flavored episode description: bare URLs
// hyperlinked, newlines converted to breaks, thumbnail prepended.
func htmlDescription(thumbnail, description string) string {
	description = regex.BareURLCompile().ReplaceAllString(description, `<a href="$0">$0</a>`)
	description = strings.ReplaceAll(description, "\n", "<br>")

	var b strings.Builder
	b.WriteString(descriptionStyle)
	if thumbnail != "" {
		fmt.Fprintf(&b, "<img src=%q>", thumbnail)
	}
	fmt.Fprintf(&b, "<p>%s</p>", description)
	return b.String()
}

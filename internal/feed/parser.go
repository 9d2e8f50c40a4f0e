package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/bilgisen/haberci/internal/models"
)

var (
	imgTagRegex  = regexp.MustCompile(`(?is)<img[^>]*?\ssrc=["']([^"']+)["'][^>]*>`)
	htmlTagRegex = regexp.MustCompile(`(?s)<[^>]*>`)
)

// ExtractImageAndText pulls the first image URL out of a feed description
// and returns the remaining markup as plain text. The text is trimmed but
// not otherwise normalized.
func ExtractImageAndText(description string) models.ExtractedContent {
	var out models.ExtractedContent

	if m := imgTagRegex.FindStringSubmatch(description); m != nil {
		out.ImageURL = html.UnescapeString(strings.TrimSpace(m[1]))
	}

	text := imgTagRegex.ReplaceAllString(description, "")
	text = htmlTagRegex.ReplaceAllString(text, "")
	out.ShortText = strings.TrimSpace(html.UnescapeString(text))

	return out
}

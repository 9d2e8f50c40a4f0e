package feed

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bilgisen/haberci/internal/textnorm"
	"github.com/go-resty/resty/v2"
)

// DetailConfig configures the article page client
type DetailConfig struct {
	Timeout   time.Duration
	UserAgent string
	Selector  string
}

// DetailFetcher reads the full body of an article from its web page
type DetailFetcher struct {
	client   *resty.Client
	selector string
}

func NewDetailFetcher(cfg DetailConfig) *DetailFetcher {
	return &DetailFetcher{
		client: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("User-Agent", cfg.UserAgent),
		selector: cfg.Selector,
	}
}

// FetchArticleBody returns the normalized paragraphs of the first content
// container joined by blank lines. A page without the container yields
// an empty body and no error.
func (d *DetailFetcher) FetchArticleBody(ctx context.Context, url string) (string, error) {
	resp, err := d.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), url)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", fmt.Errorf("failed to parse article %s: %w", url, err)
	}

	container := doc.Find(d.selector).First()
	if container.Length() == 0 {
		return "", nil
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, s *goquery.Selection) {
		if p := textnorm.Normalize(s.Text()); p != "" {
			paragraphs = append(paragraphs, p)
		}
	})

	return strings.Join(paragraphs, "\n\n"), nil
}

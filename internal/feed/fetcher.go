package feed

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bilgisen/haberci/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// FetcherConfig configures the feed HTTP client
type FetcherConfig struct {
	Timeout    time.Duration
	RetryCount int
	UserAgent  string
}

type Fetcher struct {
	client *resty.Client
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Fetcher{client: client}
}

// FetchFeed retrieves an RSS feed and returns its items in document order
func (f *Fetcher) FetchFeed(ctx context.Context, url string) ([]models.FeedItem, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed from %s: %w", url, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), url)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed from %s: %w", url, err)
	}

	items := make([]models.FeedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, models.FeedItem{
			Title:           it.Title,
			Link:            it.Link,
			DescriptionHTML: it.Description,
			PubDateRaw:      it.Published,
		})
	}

	return items, nil
}

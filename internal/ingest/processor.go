package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/haberci/internal/dates"
	"github.com/bilgisen/haberci/internal/feed"
	"github.com/bilgisen/haberci/internal/gazetteer"
	"github.com/bilgisen/haberci/internal/logger"
	"github.com/bilgisen/haberci/internal/models"
	"github.com/bilgisen/haberci/internal/storage"
	"github.com/bilgisen/haberci/internal/textnorm"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// FeedSource reads the items of a category feed
type FeedSource interface {
	FetchFeed(ctx context.Context, url string) ([]models.FeedItem, error)
}

// BodySource reads the full body of an article page
type BodySource interface {
	FetchArticleBody(ctx context.Context, url string) (string, error)
}

// Sink is the persistence side of the pipeline, normally a
// *storage.Gateway
type Sink interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Insert(ctx context.Context, article *models.Article) error
	Lock(ctx context.Context, title string) (release func(), ok bool)
}

// Config holds the run-independent settings of a Processor
type Config struct {
	Categories  []feed.Category
	Concurrency int
	SourceName  string
}

// Processor runs the per-item pipeline over every configured category
type Processor struct {
	feeds   FeedSource
	details BodySource
	sink    Sink
	cfg     Config
	now     func() time.Time
}

func NewProcessor(feeds FeedSource, details BodySource, sink Sink, cfg Config) *Processor {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.SourceName == "" {
		cfg.SourceName = models.SourceName
	}
	return &Processor{
		feeds:   feeds,
		details: details,
		sink:    sink,
		cfg:     cfg,
		now:     time.Now,
	}
}

// prepared is an item that went through extraction, enrichment and the
// image/content gates. outcome is empty when it is ready to commit.
type prepared struct {
	item    models.FeedItem
	title   string
	link    string
	image   string
	content string
	cities  []string
	date    *string
	outcome Outcome
	reason  string
}

// Run processes every category in order, considering at most limit items
// per category. Category failures are recorded and the run continues; the
// returned error is only set when ctx ends the run early.
func (p *Processor) Run(ctx context.Context, limit int) (*Report, error) {
	log := logger.With("ingest")
	report := &Report{
		Limit:      limit,
		StartedAt:  p.now().UTC(),
		Totals:     make(map[Outcome]int),
		Categories: []CategoryReport{},
	}

	log.Info().
		Int("categories", len(p.cfg.Categories)).
		Int("limit", limit).
		Int("concurrency", p.cfg.Concurrency).
		Msg("Starting ingestion run")

	var runErr error
	for _, category := range p.cfg.Categories {
		if err := ctx.Err(); err != nil {
			report.Cancelled = true
			runErr = err
			break
		}
		report.addCategory(p.ProcessCategory(ctx, category, limit))
	}
	if runErr == nil && ctx.Err() != nil {
		report.Cancelled = true
		runErr = ctx.Err()
	}

	report.FinishedAt = p.now().UTC()
	log.Info().
		Int("persisted", report.Totals[OutcomePersisted]).
		Int("skipped_no_image", report.Totals[OutcomeSkippedNoImage]).
		Int("skipped_no_content", report.Totals[OutcomeSkippedNoContent]).
		Int("skipped_duplicate", report.Totals[OutcomeSkippedDuplicate]).
		Int("failed", report.Totals[OutcomeFailed]).
		Strs("failed_categories", report.Failed()).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Bool("cancelled", report.Cancelled).
		Msg("Finished ingestion run")

	return report, runErr
}

// ProcessCategory fetches one feed and takes its first limit items
// through the pipeline in feed order
func (p *Processor) ProcessCategory(ctx context.Context, category feed.Category, limit int) CategoryReport {
	log := logger.With("ingest").With().Str("category", category.Name).Logger()
	report := newCategoryReport(category.Name)

	log.Info().Str("url", category.URL).Msg("Fetching category")

	items, err := p.feeds.FetchFeed(ctx, category.URL)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching category")
		report.Error = err.Error()
		return report
	}
	report.Fetched = len(items)

	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}

	for _, prep := range p.prepareAll(ctx, items) {
		if ctx.Err() != nil {
			log.Warn().Msg("Run cancelled, leaving category")
			break
		}

		if prep.outcome == "" {
			prep.outcome, prep.reason = p.commit(ctx, category, prep)
		}
		p.logDecision(&log, prep)
		report.add(Decision{
			Title:   prep.title,
			Link:    prep.link,
			Outcome: prep.outcome,
			Reason:  prep.reason,
		})
	}

	return report
}

// prepareAll runs the extraction stage for every item on a bounded pool.
// Results keep feed order.
func (p *Processor) prepareAll(ctx context.Context, items []models.FeedItem) []prepared {
	results := make([]prepared, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i, item := range items {
		g.Go(func() error {
			results[i] = p.prepare(gctx, item)
			return nil
		})
	}
	// prepare never fails; errors become outcomes
	_ = g.Wait()

	return results
}

func (p *Processor) prepare(ctx context.Context, item models.FeedItem) prepared {
	prep := prepared{
		item:  item,
		title: textnorm.Normalize(item.Title),
		link:  strings.TrimSpace(item.Link),
	}

	extracted := feed.ExtractImageAndText(item.DescriptionHTML)
	if !extracted.HasImage() {
		prep.outcome = OutcomeSkippedNoImage
		prep.reason = "description has no image"
		return prep
	}
	prep.image = extracted.ImageURL

	candidate := ""
	if ctx.Err() == nil {
		body, err := p.details.FetchArticleBody(ctx, prep.link)
		if err != nil {
			logger.With("ingest").Warn().
				Err(err).
				Str("title", prep.title).
				Str("url", prep.link).
				Msg("Detail page unavailable, using feed summary")
		}
		candidate = body
	}
	if candidate == "" {
		candidate = extracted.ShortText
	}

	prep.content = textnorm.Normalize(candidate)
	if textnorm.IsBlank(prep.content) {
		prep.outcome = OutcomeSkippedNoContent
		prep.reason = "no content in detail page or description"
		return prep
	}

	prep.cities = gazetteer.DetectCities(prep.content)
	if formatted, ok := dates.FormatPublishDate(item.PubDateRaw); ok {
		prep.date = &formatted
	}

	return prep
}

// commit runs the dedup check and the insert for one prepared item. It
// is always called serially.
func (p *Processor) commit(ctx context.Context, category feed.Category, prep prepared) (Outcome, string) {
	release, ok := p.sink.Lock(ctx, prep.title)
	if !ok {
		return OutcomeSkippedDuplicate, "title is being written by another run"
	}
	defer release()

	exists, err := p.sink.ExistsByTitle(ctx, prep.title)
	if err != nil {
		return OutcomeFailed, err.Error()
	}
	if exists {
		return OutcomeSkippedDuplicate, "title already stored"
	}

	article := &models.Article{
		Title:           prep.title,
		URL:             prep.link,
		Content:         prep.content,
		ImageURL:        prep.image,
		PublishDateStr:  prep.date,
		Category:        category.Name,
		Cities:          prep.cities,
		SourceName:      p.cfg.SourceName,
		CreatedAtServer: p.now().UTC(),
	}

	if err := p.sink.Insert(ctx, article); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return OutcomeSkippedDuplicate, "title stored concurrently"
		}
		return OutcomeFailed, fmt.Sprintf("insert: %v", err)
	}
	return OutcomePersisted, ""
}

func (p *Processor) logDecision(log *zerolog.Logger, prep prepared) {
	ev := log.Info()
	if prep.outcome == OutcomeFailed {
		ev = log.Error()
	}
	ev.Str("title", prep.title).
		Str("outcome", string(prep.outcome)).
		Str("reason", prep.reason).
		Msg(decisionMessage(prep.outcome))
}

func decisionMessage(o Outcome) string {
	switch o {
	case OutcomePersisted:
		return "Added article"
	case OutcomeSkippedNoImage:
		return "Skipped article without image"
	case OutcomeSkippedNoContent:
		return "Skipped article without content"
	case OutcomeSkippedDuplicate:
		return "Skipped duplicate article"
	default:
		return "Failed to store article"
	}
}

package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"

	"golang-news-sentiment/internal/entity"
	"golang-news-sentiment/pkg/logger"
)

// Config holds the settings for the RSS fetcher.
type Config struct {
	Feeds          []string `mapstructure:"feeds"`
	RequestTimeout string   `mapstructure:"request_timeout"`
	FetchFullText  bool     `mapstructure:"fetch_full_text"`
}

// Fetcher pulls documents for a topic from configured RSS feeds. It is a
// collaborator of the scoring pipeline, not part of it: the pipeline only
// sees the Document records it produces.
type Fetcher struct {
	cfg    Config
	log    *logger.Logger
	parser *gofeed.Parser
	client *http.Client
	feeds  *cache.Cache
}

// New creates an RSS fetcher.
func New(cfg Config, log *logger.Logger) *Fetcher {
	timeout := 15 * time.Second
	if d, err := time.ParseDuration(cfg.RequestTimeout); err == nil && d > 0 {
		timeout = d
	}

	return &Fetcher{
		cfg:    cfg,
		log:    log,
		parser: gofeed.NewParser(),
		client: &http.Client{Timeout: timeout},
		feeds:  cache.New(15*time.Minute, 30*time.Minute),
	}
}

// FetchNews returns up to limit documents whose title or description
// mentions the topic, across all configured feeds.
func (f *Fetcher) FetchNews(ctx context.Context, topic string, limit int) ([]entity.Document, error) {
	if limit <= 0 {
		limit = 10
	}

	var documents []entity.Document
	needle := strings.ToLower(topic)

	for _, feedURL := range f.cfg.Feeds {
		if len(documents) >= limit {
			break
		}

		feed, err := f.loadFeed(ctx, feedURL)
		if err != nil {
			f.log.Warn("failed to load feed, skipping",
				logger.StringField("feed", feedURL),
				logger.ErrorField(err),
			)
			continue
		}

		for _, item := range feed.Items {
			if len(documents) >= limit {
				break
			}
			if !matchesTopic(item, needle) {
				continue
			}
			documents = append(documents, f.toDocument(ctx, feed, item))
		}
	}

	return documents, nil
}

func (f *Fetcher) loadFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	if cached, ok := f.feeds.Get(feedURL); ok {
		return cached.(*gofeed.Feed), nil
	}

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	f.feeds.Set(feedURL, feed, cache.DefaultExpiration)
	return feed, nil
}

func matchesTopic(item *gofeed.Item, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle)
}

func (f *Fetcher) toDocument(ctx context.Context, feed *gofeed.Feed, item *gofeed.Item) entity.Document {
	doc := entity.Document{
		Title:       item.Title,
		Description: stripHTML(item.Description),
		URL:         item.Link,
		Source:      feed.Title,
	}
	if len(item.Authors) > 0 {
		doc.Author = item.Authors[0].Name
	}
	if item.PublishedParsed != nil {
		doc.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else {
		doc.PublishedAt = item.Published
	}

	// Prefer full article text; fall back to the feed's own fields.
	if f.cfg.FetchFullText && item.Link != "" {
		if content, err := f.extractContent(ctx, item.Link); err == nil && content != "" {
			doc.Content = content
			return doc
		} else if err != nil {
			f.log.Debug("full text extraction failed, using feed content",
				logger.StringField("url", item.Link),
				logger.ErrorField(err),
			)
		}
	}

	doc.Content = strings.TrimSpace(strings.Join([]string{item.Title, doc.Description, stripHTML(item.Content)}, ". "))
	return doc
}

// extractContent downloads the article page and extracts readable text.
func (f *Fetcher) extractContent(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}

	article, err := readability.NewDocument(string(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}

	return stripHTML(article.Content()), nil
}

// stripHTML flattens any markup into plain text.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

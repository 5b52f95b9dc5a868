// Package extract implements the multi-site extraction engine: one
// strategy per site driven by a uniform orchestrator loop.
package extract

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"cryptonews/internal/browser"
	"cryptonews/internal/domain"
	"cryptonews/internal/sites"
)

// Navigator is the browser capability a strategy drives. Satisfied by
// *browser.Session; faked in tests.
type Navigator interface {
	FetchPage(ctx context.Context, url string, act browser.PageActions) (string, error)
}

// SeenCache skips the expensive article-page fetch for URLs extracted
// recently. Optional; a nil cache disables the check.
type SeenCache interface {
	Seen(ctx context.Context, source, url string) (bool, error)
	Mark(ctx context.Context, source, url string) error
}

// Strategy is the per-site extraction unit. One instance serves one
// run; Extract re-does the full browser work on every call.
type Strategy interface {
	Extract(ctx context.Context) ([]domain.NewsRecord, error)
	Source() string
}

type strategyDeps struct {
	nav    Navigator
	seen   SeenCache
	logger *zap.Logger
}

// siteStrategy is the shared listing-scan + article-enrichment flow,
// parameterized entirely by the site's SelectorConfig.
type siteStrategy struct {
	cfg    sites.SelectorConfig
	nav    Navigator
	seen   SeenCache
	logger *zap.Logger
}

func newSiteStrategy(cfg sites.SelectorConfig, deps strategyDeps) *siteStrategy {
	return &siteStrategy{
		cfg:    cfg,
		nav:    deps.nav,
		seen:   deps.seen,
		logger: deps.logger.With(zap.String("component", "strategy"), zap.String("site", cfg.ID)),
	}
}

func (s *siteStrategy) Source() string { return s.cfg.ID }

func (s *siteStrategy) Extract(ctx context.Context) ([]domain.NewsRecord, error) {
	st := newRunState()
	if err := s.extractListing(ctx, s.cfg.BaseURL, st); err != nil {
		return nil, err
	}
	return st.records, nil
}

// runState carries the per-run accumulation: records in discovery
// order and the URL set backing the dedup invariant.
type runState struct {
	records  []domain.NewsRecord
	seenURLs map[string]struct{}
}

func newRunState() *runState {
	return &runState{seenURLs: make(map[string]struct{})}
}

// extractListing fetches one listing page and appends its records to
// st. Only listing-level failures are returned; article-level failures
// degrade individual records.
func (s *siteStrategy) extractListing(ctx context.Context, pageURL string, st *runState) error {
	html, err := s.nav.FetchPage(ctx, pageURL, browser.PageActions{
		WaitSelector:    s.cfg.Listing.Item,
		ConsentSelector: s.cfg.ConsentSelector,
		ScrollRounds:    s.cfg.ScrollRounds,
	})
	if err != nil {
		return &ListingFetchError{Site: s.cfg.ID, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &ListingFetchError{Site: s.cfg.ID, Err: err}
	}

	scope := doc.Selection
	if s.cfg.Listing.Container != "" {
		if container := doc.Find(s.cfg.Listing.Container); container.Length() > 0 {
			scope = container
		}
	}

	var walkErr error
	scope.Find(s.cfg.Listing.Item).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if err := ctx.Err(); err != nil {
			walkErr = err
			return false
		}
		if len(st.records) >= s.cfg.MaxItems {
			return false
		}
		s.processItem(ctx, item, st)
		return true
	})
	return walkErr
}

func (s *siteStrategy) processItem(ctx context.Context, item *goquery.Selection, st *runState) {
	raw := s.scrapeStub(item)

	link := s.absoluteURL(raw[domain.FieldLink])
	if raw[domain.FieldTitle] == "" || link == "" {
		s.logger.Warn("dropping listing item without mandatory fields",
			zap.String("stage", "listing"),
			zap.String("title", raw[domain.FieldTitle]),
			zap.String("link", raw[domain.FieldLink]))
		return
	}
	raw[domain.FieldLink] = link

	// Listing pages and pagination overlap; first occurrence wins.
	if _, dup := st.seenURLs[link]; dup {
		return
	}
	st.seenURLs[link] = struct{}{}

	fetchedAt := time.Now()
	if s.shouldEnrich(ctx, link) {
		s.enrich(ctx, link, raw)
	}

	st.records = append(st.records, domain.FromRaw(s.cfg.ID, raw, fetchedAt))

	if s.seen != nil {
		if err := s.seen.Mark(ctx, s.cfg.ID, link); err != nil {
			s.logger.Debug("seen-cache mark failed", zap.String("url", link), zap.Error(err))
		}
	}
}

// scrapeStub pulls every configured listing field off one item node.
func (s *siteStrategy) scrapeStub(item *goquery.Selection) domain.RawRecord {
	raw := domain.RawRecord{}
	sel := s.cfg.Listing

	grab := func(field, selector string) {
		if selector == "" {
			return
		}
		if text := strings.TrimSpace(item.Find(selector).First().Text()); text != "" {
			raw[field] = text
		}
	}
	grab(domain.FieldTitle, sel.Title)
	grab(domain.FieldDescription, sel.Description)
	grab(domain.FieldCategory, sel.Category)
	grab(domain.FieldAuthor, sel.Author)

	if sel.Date != "" {
		node := item.Find(sel.Date).First()
		if dt, ok := node.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
			raw[domain.FieldDate] = strings.TrimSpace(dt)
		} else if text := strings.TrimSpace(node.Text()); text != "" {
			raw[domain.FieldDate] = text
		}
	}
	if sel.Link != "" {
		if href, ok := item.Find(sel.Link).First().Attr("href"); ok {
			raw[domain.FieldLink] = strings.TrimSpace(href)
		}
	}
	if raw[domain.FieldLink] == "" {
		// Some sites make the whole card the anchor.
		if href, ok := item.Attr("href"); ok {
			raw[domain.FieldLink] = strings.TrimSpace(href)
		}
	}
	if sel.Image != "" {
		if src, ok := item.Find(sel.Image).First().Attr("src"); ok {
			raw[domain.FieldImage] = strings.TrimSpace(src)
		}
	}
	return raw
}

func (s *siteStrategy) shouldEnrich(ctx context.Context, link string) bool {
	if s.cfg.Article.Content == "" {
		return false
	}
	if s.seen == nil {
		return true
	}
	seen, err := s.seen.Seen(ctx, s.cfg.ID, link)
	if err != nil {
		s.logger.Debug("seen-cache lookup failed", zap.String("url", link), zap.Error(err))
		return true
	}
	return !seen
}

// enrich fetches the article page and merges its fields into raw. A
// failure here is non-fatal: the record keeps its listing-derived
// fields and the preview content stands in for the body.
func (s *siteStrategy) enrich(ctx context.Context, link string, raw domain.RawRecord) {
	html, err := s.nav.FetchPage(ctx, link, browser.PageActions{
		WaitSelector: s.cfg.Article.Content,
	})
	if err != nil {
		s.logger.Debug("article fetch failed, keeping preview",
			zap.String("stage", "article"),
			zap.String("url", link),
			zap.Error(err))
		return
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.logger.Debug("article parse failed, keeping preview",
			zap.String("stage", "article"),
			zap.String("url", link),
			zap.Error(err))
		return
	}

	art := s.cfg.Article
	var paragraphs []string
	doc.Find(art.Content).Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return
	}
	raw[domain.FieldContent] = strings.Join(paragraphs, "\n\n")
	raw[domain.FieldContentType] = "article"

	if raw[domain.FieldAuthor] == "" && art.Author != "" {
		if author := strings.TrimSpace(doc.Find(art.Author).First().Text()); author != "" {
			raw[domain.FieldAuthor] = author
		}
	}
	if art.Date != "" {
		node := doc.Find(art.Date).First()
		if dt, ok := node.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
			raw[domain.FieldDate] = strings.TrimSpace(dt)
		}
	}
	if raw[domain.FieldDescription] == "" && art.Subtitle != "" {
		if sub := strings.TrimSpace(doc.Find(art.Subtitle).First().Text()); sub != "" {
			raw[domain.FieldDescription] = sub
		}
	}
}

func (s *siteStrategy) absoluteURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

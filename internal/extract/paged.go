package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"cryptonews/internal/domain"
)

// pagedStrategy walks numbered listing pages on sites without lazy
// loading. Page one failing is fatal like any listing failure; deeper
// pages are best effort. The shared run state dedups the overlap
// between adjacent pages.
type pagedStrategy struct {
	*siteStrategy
	pages   int
	pageURL func(base string, page int) string
}

func (p *pagedStrategy) Extract(ctx context.Context) ([]domain.NewsRecord, error) {
	st := newRunState()
	if err := p.extractListing(ctx, p.cfg.BaseURL, st); err != nil {
		return nil, err
	}
	for page := 2; page <= p.pages && len(st.records) < p.cfg.MaxItems; page++ {
		u := p.pageURL(p.cfg.BaseURL, page)
		if err := p.extractListing(ctx, u, st); err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			p.logger.Warn("pagination stopped early",
				zap.String("stage", "listing"),
				zap.Int("page", page),
				zap.Error(err))
			break
		}
	}
	return st.records, nil
}

// wordpressPageURL matches the /page/N/ pattern the jeg-theme sites use.
func wordpressPageURL(base string, page int) string {
	return strings.TrimRight(base, "/") + fmt.Sprintf("/page/%d/", page)
}

package extract

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"cryptonews/internal/browser"
	"cryptonews/internal/domain"
	"cryptonews/internal/sites"
)

// Metrics is the slice of instrumentation the engine emits. Satisfied
// by *monitoring.Metrics; nil disables instrumentation.
type Metrics interface {
	RecordsExtracted(site string, n int)
	ExtractionError(site, stage string)
	ObserveExtraction(site string, d time.Duration)
}

type constructor func(deps strategyDeps) (Strategy, error)

func standard(id string) constructor {
	return func(deps strategyDeps) (Strategy, error) {
		cfg, ok := sites.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: no selector config for %q", ErrStrategyInit, id)
		}
		return newSiteStrategy(cfg, deps), nil
	}
}

func paged(id string, pages int, pageURL func(string, int) string) constructor {
	return func(deps strategyDeps) (Strategy, error) {
		cfg, ok := sites.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: no selector config for %q", ErrStrategyInit, id)
		}
		return &pagedStrategy{
			siteStrategy: newSiteStrategy(cfg, deps),
			pages:        pages,
			pageURL:      pageURL,
		}, nil
	}
}

// The fixed site set. No dynamic plugin loading; adding a site means
// adding its SelectorConfig and a row here.
var constructors = map[string]constructor{
	"ambcrypto":       standard("ambcrypto"),
	"beincrypto":      standard("beincrypto"),
	"bitcoinmagazine": standard("bitcoinmagazine"),
	"blockworks":      standard("blockworks"),
	"coindesk":        standard("coindesk"),
	"cointelegraph":   standard("cointelegraph"),
	"cryptonews":      standard("cryptonews"),
	"cryptoslate":     paged("cryptoslate", 2, wordpressPageURL),
	"decrypt":         standard("decrypt"),
	"newsbtc":         paged("newsbtc", 2, wordpressPageURL),
	"theblock":        standard("theblock"),
}

// Factory resolves site identifiers to strategies, supplies shared
// resources and isolates per-site failures.
type Factory struct {
	browserOpts browser.Options
	workers     int
	seen        SeenCache
	metrics     Metrics
	logger      *zap.Logger

	// newSession opens an engine-owned session; swapped in tests.
	newSession func() (nav Navigator, release func() error, err error)
}

// Option tunes a Factory beyond the required dependencies.
type Option func(*Factory)

// WithSessionFactory overrides how engine-owned sessions are opened,
// for callers that supply their own automation backend.
func WithSessionFactory(fn func() (Navigator, func() error, error)) Option {
	return func(f *Factory) { f.newSession = fn }
}

func NewFactory(browserOpts browser.Options, workers int, seen SeenCache, metrics Metrics, logger *zap.Logger, opts ...Option) *Factory {
	if workers < 1 {
		workers = 1
	}
	f := &Factory{
		browserOpts: browserOpts,
		workers:     workers,
		seen:        seen,
		metrics:     metrics,
		logger:      logger.With(zap.String("component", "factory")),
	}
	f.newSession = func() (Navigator, func() error, error) {
		sess, err := browser.New(f.browserOpts, f.logger)
		if err != nil {
			return nil, nil, err
		}
		return sess, sess.Close, nil
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RunOptions tunes one RunSite call.
type RunOptions struct {
	// Session is a caller-owned navigator reused across calls. When
	// nil the factory opens an engine-owned session and closes it
	// before returning.
	Session Navigator
}

// RunSite extracts one site. Unknown identifiers and strategy
// construction failures are logged and returned to the caller;
// batch-level callers swallow them per site.
func (f *Factory) RunSite(ctx context.Context, siteID string, opts RunOptions) ([]domain.NewsRecord, error) {
	ctor, ok := constructors[siteID]
	if !ok {
		f.logger.Error("unknown site requested", zap.String("site", siteID))
		f.countError(siteID, "resolve")
		return nil, fmt.Errorf("%w: %q", ErrUnknownSite, siteID)
	}

	nav := opts.Session
	if nav == nil {
		sess, release, err := f.newSession()
		if err != nil {
			f.countError(siteID, "session")
			return nil, fmt.Errorf("open browser session for %s: %w", siteID, err)
		}
		defer func() {
			if cerr := release(); cerr != nil {
				f.logger.Warn("session close failed",
					zap.String("site", siteID), zap.Error(cerr))
			}
		}()
		nav = sess
	}

	strat, err := ctor(strategyDeps{nav: nav, seen: f.seen, logger: f.logger})
	if err != nil {
		f.logger.Error("strategy construction failed",
			zap.String("site", siteID), zap.Error(err))
		f.countError(siteID, "init")
		return nil, err
	}

	f.logger.Info("extraction running", zap.String("site", siteID))
	start := time.Now()
	records, err := strat.Extract(ctx)
	f.observe(siteID, time.Since(start))
	if err != nil {
		f.logger.Error("extraction failed",
			zap.String("site", siteID),
			zap.String("stage", "listing"),
			zap.Error(err))
		f.countError(siteID, "listing")
		return nil, err
	}

	f.logger.Info("extraction succeeded",
		zap.String("site", siteID),
		zap.Int("records", len(records)),
		zap.Duration("took", time.Since(start)))
	if f.metrics != nil {
		f.metrics.RecordsExtracted(siteID, len(records))
	}
	return records, nil
}

func (f *Factory) countError(site, stage string) {
	if f.metrics != nil {
		f.metrics.ExtractionError(site, stage)
	}
}

func (f *Factory) observe(site string, d time.Duration) {
	if f.metrics != nil {
		f.metrics.ObserveExtraction(site, d)
	}
}

// BatchResult is the outcome of one batch: all successfully extracted
// records plus the per-site terminal states.
type BatchResult struct {
	Records  []domain.NewsRecord
	Sites    []domain.SiteResult
	Failures int
}

// ExpandSites resolves the "all" shorthand to every registered site.
func ExpandSites(ids []string) []string {
	for _, id := range ids {
		if id == "all" {
			return sites.IDs()
		}
	}
	return ids
}

// RunBatch extracts the given sites with a bounded worker pool, one
// browser session per worker shared sequentially across that worker's
// sites. A site failing never aborts its siblings; failures are logged
// and counted, never raised.
func (f *Factory) RunBatch(ctx context.Context, siteIDs []string) BatchResult {
	ids := ExpandSites(siteIDs)
	if len(ids) == 0 {
		return BatchResult{}
	}

	workers := f.workers
	if workers > len(ids) {
		workers = len(ids)
	}

	jobs := make(chan string)
	var mu sync.Mutex
	var res BatchResult
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// One session per concurrent task; strategies on this
			// worker share it sequentially. If the session cannot be
			// opened, RunSite falls back to per-site sessions.
			var nav Navigator
			if sess, release, err := f.newSession(); err == nil {
				nav = sess
				defer func() {
					if cerr := release(); cerr != nil {
						f.logger.Warn("worker session close failed", zap.Error(cerr))
					}
				}()
			} else {
				f.logger.Warn("worker session unavailable", zap.Error(err))
			}

			for id := range jobs {
				if err := ctx.Err(); err != nil {
					mu.Lock()
					res.Sites = append(res.Sites, domain.SiteResult{Site: id, Err: err.Error()})
					res.Failures++
					mu.Unlock()
					continue
				}
				records, err := f.RunSite(ctx, id, RunOptions{Session: nav})
				mu.Lock()
				if err != nil {
					res.Sites = append(res.Sites, domain.SiteResult{Site: id, Err: err.Error()})
					res.Failures++
				} else {
					res.Records = append(res.Records, records...)
					res.Sites = append(res.Sites, domain.SiteResult{Site: id, Records: len(records)})
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	f.logger.Info("batch finished",
		zap.Int("sites", len(ids)),
		zap.Int("records", len(res.Records)),
		zap.Int("failures", res.Failures))
	return res
}

// Handle is a running batch the caller may await, poll or abandon.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	result BatchResult
}

// Start kicks off a batch detached from the caller's request lifetime
// and returns immediately. Cancelling the handle aborts in-flight
// navigation; worker sessions are released on every path.
func (f *Factory) Start(ctx context.Context, siteIDs []string) *Handle {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		defer cancel()
		h.result = f.RunBatch(runCtx, siteIDs)
	}()
	return h
}

// Done is closed when the batch has finished or been cancelled.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Cancel aborts the batch. In-flight sites finish as failures; the
// result remains readable once Done closes.
func (h *Handle) Cancel() { h.cancel() }

// Result returns the batch outcome; ok is false while still running.
func (h *Handle) Result() (BatchResult, bool) {
	select {
	case <-h.done:
		return h.result, true
	default:
		return BatchResult{}, false
	}
}

// Package browser owns the chromedp automation session used by the
// extraction strategies.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/security"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Options configures a browser session.
type Options struct {
	Headless          bool
	UserAgent         string
	ViewportWidth     int
	ViewportHeight    int
	IgnoreHTTPSErrors bool
	NavTimeout        time.Duration
	Retries           int
}

// DefaultOptions mirrors the shared automation defaults.
func DefaultOptions() Options {
	return Options{
		Headless:          true,
		UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		ViewportWidth:     1280,
		ViewportHeight:    720,
		IgnoreHTTPSErrors: true,
		NavTimeout:        30 * time.Second,
		Retries:           3,
	}
}

// PageActions are the per-fetch steps run inside the tab between
// navigation and HTML capture.
type PageActions struct {
	WaitSelector    string // defaults to "body"
	ConsentSelector string // dismiss button, clicked if present
	ScrollRounds    int    // scroll-to-bottom nudges for lazy listings
}

type runnerFunc func(ctx context.Context, actions ...chromedp.Action) error

// Session wraps one chromedp browser context. A session created with
// New is engine-owned and torn down by Close; a session created with
// Attach belongs to the caller and Close leaves the browser alone.
// Either way Close is safe to call exactly once per exit path.
type Session struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
	opts          Options
	owned         bool
	closeOnce     sync.Once
	logger        *zap.Logger
	run           runnerFunc
	closeFn       func() error
}

// New launches an engine-owned browser session. The underlying Chrome
// process starts lazily on the first fetch.
func New(opts Options, logger *zap.Logger) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.WindowSize(opts.ViewportWidth, opts.ViewportHeight),
	)
	if opts.IgnoreHTTPSErrors {
		allocOpts = append(allocOpts, chromedp.Flag("ignore-certificate-errors", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
		opts:          opts,
		owned:         true,
		logger:        logger.With(zap.String("component", "browser")),
		run:           chromedp.Run,
	}
	s.closeFn = func() error {
		err := chromedp.Cancel(s.browserCtx)
		s.browserCancel()
		s.allocCancel()
		return err
	}
	return s, nil
}

// Attach wraps a caller-owned chromedp context. Close releases nothing;
// the caller keeps responsibility for the browser's lifetime.
func Attach(browserCtx context.Context, opts Options, logger *zap.Logger) *Session {
	return &Session{
		browserCtx: browserCtx,
		opts:       opts,
		owned:      false,
		logger:     logger.With(zap.String("component", "browser")),
		run:        chromedp.Run,
	}
}

// FetchPage navigates a fresh tab to url, performs the page actions and
// returns the rendered HTML. Navigation is retried up to Retries times;
// the final error is returned once the attempts are exhausted. The
// caller's ctx cancels an in-flight attempt.
func (s *Session) FetchPage(ctx context.Context, url string, act PageActions) (string, error) {
	attempts := s.opts.Retries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		html, err := s.fetchOnce(ctx, url, act)
		if err == nil {
			return html, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", lastErr
		}
		s.logger.Warn("navigation attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return "", fmt.Errorf("fetch %s after %d attempts: %w", url, attempts, lastErr)
}

func (s *Session) fetchOnce(ctx context.Context, url string, act PageActions) (string, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	defer tabCancel()

	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, s.opts.NavTimeout)
	defer timeoutCancel()

	// Tie the tab to the caller's ctx so batch cancellation aborts
	// an in-flight navigation promptly.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	wait := act.WaitSelector
	if wait == "" {
		wait = "body"
	}

	actions := []chromedp.Action{
		emulation.SetUserAgentOverride(s.opts.UserAgent),
	}
	if s.opts.IgnoreHTTPSErrors {
		actions = append(actions, security.SetIgnoreCertificateErrors(true))
	}
	actions = append(actions,
		chromedp.EmulateViewport(int64(s.opts.ViewportWidth), int64(s.opts.ViewportHeight)),
		chromedp.Navigate(url),
		chromedp.WaitReady(wait, chromedp.ByQuery),
	)
	if act.ConsentSelector != "" {
		// Click through JS so a missing banner is a no-op instead of a
		// wait-until-timeout.
		js := fmt.Sprintf(`(() => { const el = document.querySelector(%q); if (el) el.click(); })()`, act.ConsentSelector)
		actions = append(actions, chromedp.Evaluate(js, nil))
	}
	for i := 0; i < act.ScrollRounds; i++ {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(700*time.Millisecond),
		)
	}

	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := s.run(tabCtx, actions...); err != nil {
		return "", err
	}
	return html, nil
}

// Close releases an engine-owned session. It is idempotent and a
// failure to close never masks the run result; callers log it.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if !s.owned || s.closeFn == nil {
			return
		}
		err = s.closeFn()
	})
	return err
}

package extract

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cryptonews/internal/browser"
)

const coindeskListing = `<html><body>
<div data-module-name="latest-news">
  <div class="articleTextSection">
    <h2><a href="/markets/2026/02/01/btc-breaks-out">BTC breaks out</a></h2>
    <p class="content-text">Bitcoin pushed higher overnight.</p>
  </div>
  <div class="articleTextSection">
    <h3><a href="/policy/2026/02/01/etf-ruling">ETF ruling lands</a></h3>
    <p class="content-text">Regulators published the decision.</p>
  </div>
</div>
</body></html>`

const theblockListing = `<html><body>
<div class="collection__articles">
  <article class="articleCard">
    <a class="appLink" href="/post/stablecoin-bill">
      <h2><span>Stablecoin bill advances</span></h2>
    </a>
    <p class="articleCard__deck">Committee vote passed.</p>
  </article>
</div>
</body></html>`

func testFactory(nav Navigator, workers int) (*Factory, *atomic.Int32) {
	releases := &atomic.Int32{}
	f := NewFactory(browser.DefaultOptions(), workers, nil, nil, zap.NewNop())
	f.newSession = func() (Navigator, func() error, error) {
		return nav, func() error {
			releases.Add(1)
			return nil
		}, nil
	}
	return f, releases
}

func TestRunSiteUnknown(t *testing.T) {
	f, _ := testFactory(newFakeNav(), 1)
	_, err := f.RunSite(context.Background(), "not-a-site", RunOptions{})
	assert.ErrorIs(t, err, ErrUnknownSite)
}

func TestRunSiteReleasesSessionOnFailure(t *testing.T) {
	nav := newFakeNav()
	nav.errs["https://www.coindesk.com/latest-crypto-news"] = errors.New("net::ERR_TIMED_OUT")
	f, releases := testFactory(nav, 1)

	_, err := f.RunSite(context.Background(), "coindesk", RunOptions{})
	var lfe *ListingFetchError
	require.ErrorAs(t, err, &lfe)
	assert.Equal(t, int32(1), releases.Load(), "session released exactly once on the failure path")
}

func TestRunSiteCallerOwnedSessionNotReleased(t *testing.T) {
	nav := newFakeNav()
	nav.pages["https://www.coindesk.com/latest-crypto-news"] = coindeskListing
	f, releases := testFactory(nil, 1)

	records, err := f.RunSite(context.Background(), "coindesk", RunOptions{Session: nav})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(0), releases.Load())
}

func TestRunSiteRecordsWellFormed(t *testing.T) {
	nav := newFakeNav()
	nav.pages["https://www.coindesk.com/latest-crypto-news"] = coindeskListing

	f, _ := testFactory(nav, 1)
	start := time.Now()
	records, err := f.RunSite(context.Background(), "coindesk", RunOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	urls := map[string]struct{}{}
	for _, rec := range records {
		assert.Equal(t, "coindesk", rec.Source)
		assert.NotEmpty(t, rec.URL)
		assert.False(t, rec.FetchedAt.Before(start))
		urls[rec.URL] = struct{}{}
	}
	assert.Len(t, urls, 2, "urls unique within a run")
	assert.Equal(t, "https://www.coindesk.com/markets/2026/02/01/btc-breaks-out", records[0].URL)
	// article pages unavailable in this fixture: preview-only records
	assert.Nil(t, records[0].FullContent)
	assert.Equal(t, "Bitcoin pushed higher overnight.", records[0].PreviewContent)
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	nav := newFakeNav()
	nav.pages["https://www.coindesk.com/latest-crypto-news"] = coindeskListing
	nav.pages["https://www.theblock.co/latest"] = theblockListing

	f, releases := testFactory(nav, 2)
	res := f.RunBatch(context.Background(), []string{"coindesk", "unknown-site", "theblock"})

	assert.Len(t, res.Records, 3, "records from both valid sites")
	assert.Equal(t, 1, res.Failures)
	require.Len(t, res.Sites, 3)

	bySite := map[string]int{}
	var failed string
	for _, sr := range res.Sites {
		bySite[sr.Site] = sr.Records
		if sr.Err != "" {
			failed = sr.Site
		}
	}
	assert.Equal(t, 2, bySite["coindesk"])
	assert.Equal(t, 1, bySite["theblock"])
	assert.Equal(t, "unknown-site", failed)
	assert.Equal(t, int32(2), releases.Load(), "one session per worker, each released")
}

func TestRunBatchSiteFailureDoesNotAbortSiblings(t *testing.T) {
	nav := newFakeNav()
	nav.pages["https://www.coindesk.com/latest-crypto-news"] = coindeskListing
	nav.errs["https://www.theblock.co/latest"] = errors.New("net::ERR_CONNECTION_REFUSED")

	f, _ := testFactory(nav, 1)
	res := f.RunBatch(context.Background(), []string{"theblock", "coindesk"})

	assert.Equal(t, 1, res.Failures)
	assert.Len(t, res.Records, 2, "sibling still returns its normal result")
}

func TestRunBatchExpandsAll(t *testing.T) {
	// Every page errors; the point is that "all" fans out to the full
	// registry and every failure stays contained.
	nav := newFakeNav()
	f, _ := testFactory(nav, 3)
	res := f.RunBatch(context.Background(), []string{"all"})

	assert.Empty(t, res.Records)
	assert.Equal(t, 11, res.Failures)
	assert.Len(t, res.Sites, 11)
}

func TestHandleCancellation(t *testing.T) {
	nav := newFakeNav() // every fetch fails fast; enough to exercise the lifecycle
	f, releases := testFactory(nav, 1)

	h := f.Start(context.Background(), []string{"coindesk", "theblock"})
	h.Cancel()

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not finish after cancellation")
	}

	res, ok := h.Result()
	require.True(t, ok)
	assert.Equal(t, 2, res.Failures)
	assert.Equal(t, int32(1), releases.Load(), "worker session released after cancel")
}

func TestHandleResultBeforeDone(t *testing.T) {
	f, _ := testFactory(newFakeNav(), 1)
	h := f.Start(context.Background(), []string{"coindesk"})
	// may or may not have finished yet; after Done it must be readable
	<-h.Done()
	_, ok := h.Result()
	assert.True(t, ok)
}

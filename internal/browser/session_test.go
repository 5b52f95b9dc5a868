package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stubSession(run runnerFunc) *Session {
	opts := DefaultOptions()
	opts.NavTimeout = time.Second
	return &Session{
		browserCtx: context.Background(),
		opts:       opts,
		owned:      true,
		logger:     zap.NewNop(),
		run:        run,
	}
}

func TestFetchPageRetriesUntilSuccess(t *testing.T) {
	calls := 0
	s := stubSession(func(ctx context.Context, actions ...chromedp.Action) error {
		calls++
		if calls < 3 {
			return errors.New("net::ERR_CONNECTION_RESET")
		}
		return nil
	})

	_, err := s.FetchPage(context.Background(), "https://example.com", PageActions{})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestFetchPageExhaustsRetries(t *testing.T) {
	calls := 0
	navErr := errors.New("net::ERR_TIMED_OUT")
	s := stubSession(func(ctx context.Context, actions ...chromedp.Action) error {
		calls++
		return navErr
	})

	_, err := s.FetchPage(context.Background(), "https://example.com", PageActions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, navErr)
	assert.Equal(t, 3, calls)
}

func TestFetchPageHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	s := stubSession(func(ctx context.Context, actions ...chromedp.Action) error {
		calls++
		cancel()
		return errors.New("aborted")
	})

	_, err := s.FetchPage(ctx, "https://example.com", PageActions{})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "no retry after cancellation")
}

func TestCloseExactlyOnce(t *testing.T) {
	closes := 0
	s := stubSession(nil)
	s.closeFn = func() error {
		closes++
		return nil
	}

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, closes)
}

func TestCloseCallerOwnedIsNoop(t *testing.T) {
	closes := 0
	s := Attach(context.Background(), DefaultOptions(), zap.NewNop())
	s.closeFn = func() error {
		closes++
		return nil
	}

	require.NoError(t, s.Close())
	assert.Equal(t, 0, closes)
}

package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSite means the requested identifier has no registered
	// strategy. Single-site callers see it; batch runs log and skip.
	ErrUnknownSite = errors.New("unknown site")

	// ErrStrategyInit means a strategy could not be constructed from
	// its configuration.
	ErrStrategyInit = errors.New("strategy initialization failed")
)

// ListingFetchError is fatal for one site's run: the listing page could
// not be fetched or parsed, so the run produced no records. Sibling
// sites in the same batch are unaffected.
type ListingFetchError struct {
	Site string
	Err  error
}

func (e *ListingFetchError) Error() string {
	return fmt.Sprintf("listing fetch failed for %s: %v", e.Site, e.Err)
}

func (e *ListingFetchError) Unwrap() error { return e.Err }

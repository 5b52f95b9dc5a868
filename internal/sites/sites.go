// Package sites holds the declarative per-site selector configuration.
// It is the single source of truth for where listing items and article
// fields live on each supported site; strategies must not carry
// selector strings of their own.
package sites

import "sort"

// ListingSelectors locate candidate article stubs on a listing page.
// Title and Link are mandatory at extraction time; the rest are
// best-effort.
type ListingSelectors struct {
	Container   string
	Item        string
	Title       string
	Description string
	Category    string
	Author      string
	Date        string
	Link        string
	Image       string
}

// ArticleSelectors locate fields on an individual article page.
type ArticleSelectors struct {
	Content  string
	Title    string
	Subtitle string
	Author   string
	Date     string
	Tags     string
}

// SelectorConfig is the immutable per-site descriptor. One config maps
// to exactly one site identifier.
type SelectorConfig struct {
	ID      string
	BaseURL string
	Listing ListingSelectors
	Article ArticleSelectors

	// Bounded-traversal knobs. MaxItems caps how many stubs one run
	// emits; ScrollRounds is how many times an infinite-scroll listing
	// is nudged before enumeration; ConsentSelector, when set, is a
	// dismiss button clicked once after the listing loads.
	MaxItems        int
	ScrollRounds    int
	ConsentSelector string
}

// Lookup resolves a site identifier to its config.
func Lookup(id string) (SelectorConfig, bool) {
	cfg, ok := registry[id]
	return cfg, ok
}

// IDs returns all registered site identifiers, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

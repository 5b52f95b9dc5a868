package domain

import "time"

// NewsRecord is the canonical unit produced by every site strategy.
// (Source, URL) is the natural identity; the storage layer enforces
// uniqueness on that pair and silently skips duplicates.
type NewsRecord struct {
	Source         string    `json:"source"`
	URL            string    `json:"url"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PublishedAt    time.Time `json:"published_at"`
	FetchedAt      time.Time `json:"fetched_at"`
	Category       string    `json:"category"`
	Author         string    `json:"author,omitempty"`
	ContentType    *string   `json:"content_type,omitempty"`
	FullContent    *string   `json:"full_content,omitempty"`
	PreviewContent string    `json:"preview_content,omitempty"`
}

// RawRecord holds scraped field values keyed by field name, before
// sanitization. Strategies fill it from listing and article selectors.
type RawRecord map[string]string

// Canonical RawRecord keys. Anything else is dropped by FromRaw.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldAuthor      = "author"
	FieldDate        = "date"
	FieldLink        = "link"
	FieldImage       = "image"
	FieldContent     = "content"
	FieldContentType = "content_type"
)

// BatchRequest is the payload for the extraction trigger API.
type BatchRequest struct {
	Sites []string `json:"sites"`
}

// SiteResult is the terminal state of one site's run within a batch.
type SiteResult struct {
	Site    string `json:"site"`
	Records int    `json:"records"`
	Err     string `json:"error,omitempty"`
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRawBuildsRecord(t *testing.T) {
	fetched := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	raw := RawRecord{
		FieldTitle:       "  Bitcoin ETF inflows hit record  ",
		FieldDescription: "Spot ETFs saw $1.2B of inflows",
		FieldLink:        "https://example.com/news/etf-inflows",
		FieldCategory:    "Markets",
		FieldAuthor:      "Jane Doe",
		FieldDate:        "2026-03-14",
	}

	rec := FromRaw("coindesk", raw, fetched)

	assert.Equal(t, "coindesk", rec.Source)
	assert.Equal(t, "https://example.com/news/etf-inflows", rec.URL)
	assert.Equal(t, "Bitcoin ETF inflows hit record", rec.Title)
	assert.Equal(t, "Markets", rec.Category)
	assert.Equal(t, "Jane Doe", rec.Author)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), rec.PublishedAt)
	assert.Equal(t, fetched, rec.FetchedAt)
	assert.Nil(t, rec.FullContent)
	assert.Nil(t, rec.ContentType)
	assert.Equal(t, "Spot ETFs saw $1.2B of inflows", rec.PreviewContent)
}

func TestFromRawDropsUnknownFields(t *testing.T) {
	raw := RawRecord{
		FieldTitle:   "Some headline",
		FieldLink:    "https://example.com/a",
		"tracking_id": "abc-123",
		"ad_slot":     "banner",
	}
	rec := FromRaw("decrypt", raw, time.Now())

	assert.Equal(t, "Some headline", rec.Title)
	assert.Empty(t, rec.Category)
	assert.Empty(t, rec.Author)
}

func TestFromRawFullContent(t *testing.T) {
	raw := RawRecord{
		FieldTitle:       "Headline",
		FieldLink:        "https://example.com/a",
		FieldDescription: "preview text",
		FieldContent:     "the full article body",
		FieldContentType: "Article",
	}
	rec := FromRaw("theblock", raw, time.Now())

	require.NotNil(t, rec.FullContent)
	assert.Equal(t, "the full article body", *rec.FullContent)
	require.NotNil(t, rec.ContentType)
	assert.Equal(t, "article", *rec.ContentType)
	// listing description kept off the preview when full content exists
	assert.Empty(t, rec.PreviewContent)
}

func TestNormalizeIdempotent(t *testing.T) {
	content := "  body   text \n"
	ct := " Video "
	rec := NewsRecord{
		Source:      " newsbtc ",
		URL:         " https://example.com/x ",
		Title:       "title\twith   gaps",
		Description: "desc",
		FetchedAt:   time.Now(),
		FullContent: &content,
		ContentType: &ct,
	}

	once := Normalize(rec)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "title with gaps", once.Title)
	assert.Equal(t, "video", *once.ContentType)
}

func TestNormalizeCollapsesEmptyPointers(t *testing.T) {
	empty := "   "
	rec := Normalize(NewsRecord{
		Description: "fallback preview",
		FullContent: &empty,
		ContentType: &empty,
	})
	assert.Nil(t, rec.FullContent)
	assert.Nil(t, rec.ContentType)
	assert.Equal(t, "fallback preview", rec.PreviewContent)
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-01-09T08:30:00Z", time.Date(2026, 1, 9, 8, 30, 0, 0, time.UTC)},
		{"Jan 9, 2026", time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)},
		{"09 Jan 2026", time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)},
		{"3 hours ago", fallback.Add(-3 * time.Hour)},
		{"45 minutes ago", fallback.Add(-45 * time.Minute)},
		{"2 days ago", fallback.Add(-48 * time.Hour)},
		{"", fallback},
		{"not a date", fallback},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseDate(tc.in, fallback), "input %q", tc.in)
	}
}

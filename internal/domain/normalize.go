package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layouts seen across the supported sites, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"02 Jan 2006",
	"2 January 2006",
}

var relativeDate = regexp.MustCompile(`(?i)^(\d+)\s+(second|minute|min|hour|hr|day|week|month)s?\s+ago$`)

// FromRaw builds a sanitized NewsRecord from scraped fields. Unknown
// keys are ignored, missing optional fields default to empty, and the
// date string is coerced to a timestamp with fetchedAt as the fallback.
// It never fails; malformed input yields a best-effort record.
func FromRaw(source string, raw RawRecord, fetchedAt time.Time) NewsRecord {
	rec := NewsRecord{
		Source:      source,
		URL:         raw[FieldLink],
		Title:       raw[FieldTitle],
		Description: raw[FieldDescription],
		Category:    raw[FieldCategory],
		Author:      raw[FieldAuthor],
		PublishedAt: ParseDate(raw[FieldDate], fetchedAt),
		FetchedAt:   fetchedAt,
	}
	if v, ok := raw[FieldContent]; ok && strings.TrimSpace(v) != "" {
		content := v
		rec.FullContent = &content
	}
	if v, ok := raw[FieldContentType]; ok && strings.TrimSpace(v) != "" {
		ct := v
		rec.ContentType = &ct
	}
	if rec.FullContent == nil {
		rec.PreviewContent = raw[FieldDescription]
	}
	return Normalize(rec)
}

// Normalize applies the output contract to a record: whitespace is
// trimmed, empty pointer fields collapse to nil, and previewContent is
// derived from the description when full content is absent. Normalize
// is idempotent.
func Normalize(rec NewsRecord) NewsRecord {
	rec.Source = strings.TrimSpace(rec.Source)
	rec.URL = strings.TrimSpace(rec.URL)
	rec.Title = collapseSpace(rec.Title)
	rec.Description = collapseSpace(rec.Description)
	rec.Category = collapseSpace(rec.Category)
	rec.Author = collapseSpace(rec.Author)
	rec.PreviewContent = collapseSpace(rec.PreviewContent)

	if rec.FullContent != nil {
		content := strings.TrimSpace(*rec.FullContent)
		if content == "" {
			rec.FullContent = nil
		} else {
			rec.FullContent = &content
		}
	}
	if rec.ContentType != nil {
		ct := strings.ToLower(strings.TrimSpace(*rec.ContentType))
		if ct == "" {
			rec.ContentType = nil
		} else {
			rec.ContentType = &ct
		}
	}
	if rec.FullContent == nil && rec.PreviewContent == "" {
		rec.PreviewContent = rec.Description
	}
	if rec.PublishedAt.IsZero() {
		rec.PublishedAt = rec.FetchedAt
	}
	return rec
}

// ParseDate coerces a scraped date string to a timestamp. Absolute
// layouts are tried first, then relative phrasing ("3 hours ago")
// resolved against the fallback. Unparseable input yields the fallback.
func ParseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if m := relativeDate.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return fallback
		}
		var unit time.Duration
		switch strings.ToLower(m[2]) {
		case "second":
			unit = time.Second
		case "minute", "min":
			unit = time.Minute
		case "hour", "hr":
			unit = time.Hour
		case "day":
			unit = 24 * time.Hour
		case "week":
			unit = 7 * 24 * time.Hour
		case "month":
			unit = 30 * 24 * time.Hour
		}
		return fallback.Add(-time.Duration(n) * unit)
	}
	return fallback
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

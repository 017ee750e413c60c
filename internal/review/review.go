// Package review defines the review record model shared by every pipeline
// stage, plus rating and date normalization.
package review

import (
	"strings"
	"time"
)

// Source identifies the review platform a record came from.
type Source string

// Review sources.
const (
	SourceGoogle     Source = "google"
	SourceTrustpilot Source = "trustpilot"
)

// Review is a single review record. It is created from a source export,
// enriched by the scoring engine with a product match (or left unmatched),
// and never mutated after merging.
type Review struct {
	Source   Source `json:"source" parquet:"source"`
	Reviewer string `json:"reviewer" parquet:"reviewer"`
	Title    string `json:"title,omitempty" parquet:"title"`
	Body     string `json:"body" parquet:"body"`

	// RawRating holds the rating as exported by the platform ("5", "FIVE",
	// "4.0"). Rating is the normalized 1-5 value; 0 means unparseable.
	RawRating string `json:"raw_rating,omitempty" parquet:"raw_rating"`
	Rating    int    `json:"rating,omitempty" parquet:"rating"`

	// RawDate holds the date string as exported; Date is the parsed value
	// and is zero when RawDate could not be parsed. An unparseable date
	// only makes the review ineligible for date-based matching.
	RawDate string    `json:"raw_date,omitempty" parquet:"raw_date"`
	Date    time.Time `json:"date,omitempty" parquet:"-"`

	// Match results. ProductSlug is empty while unmatched; once assigned it
	// must reference a slug present in the product catalog.
	ProductSlug string `json:"product_slug,omitempty" parquet:"product_slug"`
	ProductName string `json:"product_name,omitempty" parquet:"product_name"`
}

// Text returns the case-folded combined title and body, the input to every
// text-based matching strategy.
func (r *Review) Text() string {
	if r.Title == "" {
		return strings.ToLower(r.Body)
	}
	return strings.ToLower(r.Title + " " + r.Body)
}

// Matched reports whether the review has been assigned a product.
func (r *Review) Matched() bool {
	return r.ProductSlug != ""
}

// HasDate reports whether the review carries a usable date.
func (r *Review) HasDate() bool {
	return !r.Date.IsZero()
}

// dateLayouts covers the formats observed across both review platform
// exports and the event export.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2 January 2006",
	"January 2, 2006",
}

// ParseDate parses a raw date string against the known export layouts.
// A zero time is returned when nothing matches; that is graceful
// degradation, not an error.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

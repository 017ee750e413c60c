package dataset

import (
	"github.com/shutterline/schemapipe/internal/calendar"
	"github.com/shutterline/schemapipe/internal/catalog"
	"github.com/shutterline/schemapipe/internal/review"
)

// ProductRecord is one row of the product catalog export. Field names
// follow the store export columns.
type ProductRecord struct {
	Name       string `json:"name" parquet:"name"`
	URL        string `json:"url" parquet:"url"`
	Category   string `json:"category" parquet:"category"`
	PriceRange string `json:"price_range" parquet:"price_range"`
}

// ToProduct converts an export row to a catalog product. The slug is
// derived from the URL by the catalog index.
func (r ProductRecord) ToProduct() catalog.Product {
	return catalog.Product{
		Name:       r.Name,
		URL:        r.URL,
		Category:   r.Category,
		PriceRange: r.PriceRange,
	}
}

// ReviewRecord is one raw review as exported from a source platform.
// Rating and date stay raw strings here; normalization happens in the
// review package so a malformed value degrades instead of failing the
// load.
type ReviewRecord struct {
	Reviewer string `json:"reviewer" parquet:"reviewer"`
	Title    string `json:"title" parquet:"title"`
	Body     string `json:"body" parquet:"body"`
	Rating   string `json:"rating" parquet:"rating"`
	Date     string `json:"date" parquet:"date"`
}

// ToReview converts a raw record to a domain review for the given source.
func (r ReviewRecord) ToReview(source review.Source) review.Review {
	rating, _ := review.NormalizeRating(r.Rating)
	return review.Review{
		Source:    source,
		Reviewer:  r.Reviewer,
		Title:     r.Title,
		Body:      r.Body,
		RawRating: r.Rating,
		Rating:    rating,
		RawDate:   r.Date,
		Date:      review.ParseDate(r.Date),
	}
}

// EventRecord is one row of the event calendar export.
type EventRecord struct {
	Title    string `json:"title" parquet:"title"`
	URL      string `json:"url" parquet:"url"`
	Start    string `json:"start" parquet:"start"`
	State    string `json:"state" parquet:"state"`
	Location string `json:"location" parquet:"location"`
}

// ToEvent converts an export row to a calendar event.
func (r EventRecord) ToEvent() calendar.Event {
	return calendar.Event{
		Title:    r.Title,
		URL:      r.URL,
		StartRaw: r.Start,
		State:    r.State,
		Location: r.Location,
	}
}

// Package calendar indexes scheduled workshop and lesson events for
// date-proximity matching.
package calendar

import (
	"log/slog"
	"time"

	"github.com/shutterline/schemapipe/internal/catalog"
	"github.com/shutterline/schemapipe/internal/review"
)

// Event is a raw event record from the workshop/lesson export.
type Event struct {
	Title    string `json:"title" parquet:"title"`
	URL      string `json:"url" parquet:"url"`
	StartRaw string `json:"start_date" parquet:"start_date"`
	State    string `json:"workflow_state" parquet:"workflow_state"`
	Location string `json:"location_name,omitempty" parquet:"location_name"`
}

// ScheduledEvent is an event with a parsed start date, eligible for
// temporal matching.
type ScheduledEvent struct {
	Title    string
	Slug     string
	Start    time.Time
	Location string
}

// Index holds all temporally matchable events plus the derived
// event-to-product association. Read-only for the duration of a run.
type Index struct {
	events    []ScheduledEvent
	byProduct map[string][]ScheduledEvent
}

// NewIndex filters events to those with a parseable start date and
// intersects their URL slugs against the product catalog. Events whose slug
// is not a catalog product are still kept in the event list (their titles
// may match review text) but carry no product association.
func NewIndex(events []Event, products *catalog.Index) *Index {
	idx := &Index{
		byProduct: make(map[string][]ScheduledEvent),
	}

	for _, e := range events {
		start := review.ParseDate(e.StartRaw)
		if start.IsZero() {
			slog.Debug("Skipping event without a parseable start date", "title", e.Title, "start", e.StartRaw)
			continue
		}

		slug := catalog.SlugFromURL(e.URL)
		se := ScheduledEvent{
			Title:    e.Title,
			Slug:     slug,
			Start:    start,
			Location: e.Location,
		}
		idx.events = append(idx.events, se)

		if slug != "" && products != nil && products.Contains(slug) {
			idx.byProduct[slug] = append(idx.byProduct[slug], se)
		}
	}

	return idx
}

// Events returns all temporally matchable events.
func (i *Index) Events() []ScheduledEvent {
	return i.events
}

// Within returns the events whose start date falls within the window around
// a reference date.
func (i *Index) Within(date time.Time, window time.Duration) []ScheduledEvent {
	var out []ScheduledEvent
	for _, e := range i.events {
		diff := date.Sub(e.Start)
		if diff < 0 {
			diff = -diff
		}
		if diff <= window {
			out = append(out, e)
		}
	}
	return out
}

// ProductEvents returns the scheduled events associated with a catalog
// product slug.
func (i *Index) ProductEvents(slug string) []ScheduledEvent {
	return i.byProduct[slug]
}

// Len returns the number of temporally matchable events.
func (i *Index) Len() int {
	return len(i.events)
}

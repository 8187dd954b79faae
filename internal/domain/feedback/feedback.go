package feedback

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used in datasets and query strings.
const DateLayout = "2006-01-02"

// Source is the origin category of a feedback record.
type Source string

// Known feedback sources.
const (
	SourceCustomerSurvey Source = "Customer Survey"
	SourceServiceLog     Source = "Service Log"
	SourceSocialMedia    Source = "Social Media"
	SourceDealerReport   Source = "Dealer Report"
	SourceCallCenter     Source = "Call Center"
)

// Sources lists every known source in display order.
func Sources() []Source {
	return []Source{
		SourceCustomerSurvey, SourceServiceLog, SourceSocialMedia,
		SourceDealerReport, SourceCallCenter,
	}
}

// IsValid reports whether s is a known source.
func (s Source) IsValid() bool {
	for _, known := range Sources() {
		if s == known {
			return true
		}
	}
	return false
}

// Bucket classifies a numeric sentiment.
type Bucket string

// Sentiment buckets.
const (
	Positive Bucket = "positive"
	Neutral  Bucket = "neutral"
	Negative Bucket = "negative"
)

// IsValid reports whether b is one of the three buckets.
func (b Bucket) IsValid() bool {
	return b == Positive || b == Neutral || b == Negative
}

// BucketOf maps a sentiment value to its bucket: >0 positive, ==0 neutral, <0 negative.
func BucketOf(sentiment float64) Bucket {
	switch {
	case sentiment > 0:
		return Positive
	case sentiment < 0:
		return Negative
	default:
		return Neutral
	}
}

// Record is a single immutable piece of customer feedback.
type Record struct {
	id        int64
	source    Source
	date      time.Time
	vehicle   string
	component string
	issue     string
	sentiment float64
	text      string
}

// New validates and creates a Record. The date is truncated to a UTC calendar day.
func New(
	id int64, source Source, date time.Time,
	vehicle, component, issue string,
	sentiment float64, text string,
) (Record, error) {
	if id <= 0 {
		return Record{}, fmt.Errorf("record id must be positive, got %d", id)
	}
	if !source.IsValid() {
		return Record{}, fmt.Errorf("record %d: unknown source %q", id, source)
	}
	if date.IsZero() {
		return Record{}, fmt.Errorf("record %d: date is required", id)
	}
	if math.IsNaN(sentiment) || sentiment < -1 || sentiment > 1 {
		return Record{}, fmt.Errorf("record %d: sentiment %v outside [-1, 1]", id, sentiment)
	}
	if strings.TrimSpace(text) == "" {
		return Record{}, fmt.Errorf("record %d: text is required", id)
	}
	y, m, d := date.Date()
	return Record{
		id:        id,
		source:    source,
		date:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		vehicle:   vehicle,
		component: component,
		issue:     issue,
		sentiment: sentiment,
		text:      text,
	}, nil
}

// ID returns the stable record identifier.
func (r Record) ID() int64 { return r.id }

// Source returns the origin category.
func (r Record) Source() Source { return r.source }

// Date returns the calendar date (UTC midnight).
func (r Record) Date() time.Time { return r.date }

// Vehicle returns the vehicle model name.
func (r Record) Vehicle() string { return r.vehicle }

// Component returns the vehicle component the feedback concerns.
func (r Record) Component() string { return r.component }

// Issue returns the issue label.
func (r Record) Issue() string { return r.issue }

// Sentiment returns the sentiment in [-1, 1].
func (r Record) Sentiment() float64 { return r.sentiment }

// Bucket returns the sentiment bucket.
func (r Record) Bucket() Bucket { return BucketOf(r.sentiment) }

// Text returns the free-text body.
func (r Record) Text() string { return r.text }

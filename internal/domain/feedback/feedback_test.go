package feedback

import (
	"math"
	"testing"
	"time"
)

func TestNew_Valid(t *testing.T) {
	date := time.Date(2025, 5, 1, 15, 30, 0, 0, time.FixedZone("X", 3600))
	r, err := New(1, SourceCustomerSurvey, date, "SUV X3", "Infotainment System",
		"Touchscreen responsiveness", -0.8, "The touchscreen is slow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID() != 1 {
		t.Errorf("ID = %d", r.ID())
	}
	if got := r.Date().Format(DateLayout); got != "2025-05-01" {
		t.Errorf("Date = %s", got)
	}
	if r.Date().Hour() != 0 || r.Date().Location() != time.UTC {
		t.Errorf("date not truncated to UTC day: %v", r.Date())
	}
	if r.Bucket() != Negative {
		t.Errorf("Bucket = %s", r.Bucket())
	}
}

func TestNew_Invalid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		id        int64
		source    Source
		date      time.Time
		sentiment float64
		text      string
	}{
		{"zero id", 0, SourceServiceLog, now, 0, "t"},
		{"unknown source", 1, Source("Carrier Pigeon"), now, 0, "t"},
		{"zero date", 1, SourceServiceLog, time.Time{}, 0, "t"},
		{"sentiment too high", 1, SourceServiceLog, now, 1.5, "t"},
		{"sentiment too low", 1, SourceServiceLog, now, -1.01, "t"},
		{"sentiment NaN", 1, SourceServiceLog, now, math.NaN(), "t"},
		{"blank text", 1, SourceServiceLog, now, 0, "   "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.source, tc.date, "v", "c", "i", tc.sentiment, tc.text); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		in   float64
		want Bucket
	}{
		{0.01, Positive},
		{0, Neutral},
		{-0.01, Negative},
		{1, Positive},
		{-1, Negative},
	}
	for _, tc := range tests {
		if got := BucketOf(tc.in); got != tc.want {
			t.Errorf("BucketOf(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestBucket_IsValid(t *testing.T) {
	for _, b := range []Bucket{Positive, Neutral, Negative} {
		if !b.IsValid() {
			t.Errorf("%s should be valid", b)
		}
	}
	if Bucket("mixed").IsValid() {
		t.Error("mixed should be invalid")
	}
}

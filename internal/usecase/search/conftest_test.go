package search

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	"github.com/kailas-cloud/feedlens/internal/domain/search/mode"
	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
	"github.com/kailas-cloud/feedlens/internal/usecase/similarity"
)

// --- Mocks ---

type mockRecords struct {
	records []feedback.Record
	err     error
}

func (m *mockRecords) Snapshot(_ context.Context) ([]feedback.Record, error) {
	return m.records, m.err
}

type mockSimilarity struct {
	value  float64
	err    error
	called bool
}

func (m *mockSimilarity) ForQuery(_ context.Context, _ string) (similarity.Func, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	return func(feedback.Record) float64 { return m.value }, nil
}

// --- Fixtures ---

type recSpec struct {
	id        int64
	source    feedback.Source
	date      string
	vehicle   string
	component string
	issue     string
	sentiment float64
	text      string
}

func makeRecord(t *testing.T, s recSpec) feedback.Record {
	t.Helper()
	if s.source == "" {
		s.source = feedback.SourceCustomerSurvey
	}
	if s.date == "" {
		s.date = "2025-05-01"
	}
	d, err := time.Parse(feedback.DateLayout, s.date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	r, err := feedback.New(s.id, s.source, d, s.vehicle, s.component, s.issue, s.sentiment, s.text)
	if err != nil {
		t.Fatalf("feedback.New: %v", err)
	}
	return r
}

// sampleRecords is the dashboard's default dataset.
func sampleRecords(t *testing.T) []feedback.Record {
	t.Helper()
	specs := []recSpec{
		{1, feedback.SourceCustomerSurvey, "2025-05-01", "SUV X3", "Infotainment System", "Touchscreen responsiveness", -0.8,
			"The touchscreen is extremely slow to respond and freezes regularly during use."},
		{2, feedback.SourceServiceLog, "2025-05-02", "Sedan E5", "Climate Control", "Temperature regulation", -0.5,
			"AC doesn't maintain consistent temperature. Fluctuates between too cold and too warm."},
		{3, feedback.SourceSocialMedia, "2025-05-03", "SUV X3", "Driver Assistance", "Collision warning", 0.7,
			"The collision warning system worked perfectly and potentially saved me from an accident today!"},
		{4, feedback.SourceDealerReport, "2025-05-04", "Coupe S2", "Engine", "Start-stop function", -0.6,
			"The auto start-stop feature is too aggressive and creates a jerky driving experience in traffic."},
		{5, feedback.SourceCustomerSurvey, "2025-05-05", "Sedan E5", "Infotainment System", "Navigation accuracy", -0.3,
			"The built-in navigation often suggests longer routes than necessary and misses recent road changes."},
		{6, feedback.SourceCallCenter, "2025-05-06", "Hatchback H1", "Interior Materials", "Seat fabric", 0,
			"Seat fabric looks fine so far."},
	}
	out := make([]feedback.Record, len(specs))
	for i, s := range specs {
		out[i] = makeRecord(t, s)
	}
	return out
}

func mustFilters(t *testing.T, sel filter.Selection) filter.State {
	t.Helper()
	fs, err := filter.New(sel)
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	return fs
}

func makeRequest(
	t *testing.T, query string, fs filter.State, s request.Sort, m mode.Mode, page, size int,
) *request.Request {
	t.Helper()
	r, err := request.New(query, fs, s, m, page, size)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

func ids(recs []feedback.Record) []int64 {
	out := make([]int64, len(recs))
	for i, r := range recs {
		out[i] = r.ID()
	}
	return out
}

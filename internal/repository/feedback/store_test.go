package feedback

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/feedlens/internal/domain"
	domfb "github.com/kailas-cloud/feedlens/internal/domain/feedback"
)

func rec(t *testing.T, id int64) domfb.Record {
	t.Helper()
	r, err := domfb.New(id, domfb.SourceCallCenter, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		"SUV X3", "Engine", "Noise", 0.1, "engine hum")
	if err != nil {
		t.Fatalf("feedback.New: %v", err)
	}
	return r
}

func TestStore_AppendAndSnapshot(t *testing.T) {
	s, err := NewStore(rec(t, 1), rec(t, 2))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	snap, _ := s.Snapshot(context.Background())

	if err := s.Append(context.Background(), rec(t, 3)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if len(snap) != 2 {
		t.Errorf("earlier snapshot changed: len=%d", len(snap))
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d", s.Len())
	}

	now, _ := s.Snapshot(context.Background())
	for i, r := range now {
		if r.ID() != int64(i+1) {
			t.Errorf("snapshot[%d].ID = %d", i, r.ID())
		}
	}
}

func TestStore_SnapshotAppendDoesNotLeak(t *testing.T) {
	s, _ := NewStore(rec(t, 1), rec(t, 2))
	snap, _ := s.Snapshot(context.Background())
	_ = append(snap, rec(t, 99))
	if s.Len() != 2 {
		t.Errorf("store changed through snapshot: Len = %d", s.Len())
	}
}

func TestStore_RejectsDuplicateIDs(t *testing.T) {
	s, _ := NewStore(rec(t, 1))
	err := s.Append(context.Background(), rec(t, 2), rec(t, 1))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if s.Len() != 1 {
		t.Errorf("partial batch applied: Len = %d", s.Len())
	}

	if _, err := NewStore(rec(t, 5), rec(t, 5)); err == nil {
		t.Error("expected duplicate-in-batch error")
	}
}

func TestDefaultRecords(t *testing.T) {
	recs, err := DefaultRecords()
	if err != nil {
		t.Fatalf("DefaultRecords: %v", err)
	}
	if len(recs) != 5 {
		t.Fatalf("len = %d, want 5", len(recs))
	}
	first := recs[0]
	if first.ID() != 1 || first.Component() != "Infotainment System" || first.Sentiment() != -0.8 {
		t.Errorf("first = %d %q %v", first.ID(), first.Component(), first.Sentiment())
	}
	if got := recs[1].Text(); !strings.HasPrefix(got, "AC doesn't") {
		t.Errorf("apostrophe lost: %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feedback.yaml")
	content := `records:
  - id: 10
    source: Social Media
    date: "2025-06-01"
    vehicle: Electric EV4
    component: Exterior Design
    issue: Paint
    sentiment: 0.9
    text: Love the new paint.
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(recs) != 1 || recs[0].Bucket() != domfb.Positive {
		t.Errorf("recs = %+v", recs)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"bad yaml", "records: [", "parse yaml"},
		{"bad date", "records:\n  - {id: 1, source: Call Center, date: 05/01/2025, text: x}", "invalid date"},
		{"unknown source", "records:\n  - {id: 1, source: Fax, date: \"2025-05-01\", text: x}", "unknown source"},
		{"sentiment range", "records:\n  - {id: 1, source: Call Center, date: \"2025-05-01\", sentiment: 2, text: x}", "outside"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

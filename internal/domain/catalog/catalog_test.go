package catalog

import (
	"testing"
	"time"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
)

func mustRecord(t *testing.T, component string, sentiment float64) feedback.Record {
	t.Helper()
	r, err := feedback.New(1, feedback.SourceServiceLog, time.Now(), "SUV X3", component, "x", sentiment, "text")
	if err != nil {
		t.Fatalf("feedback.New: %v", err)
	}
	return r
}

func TestCluster_Contains(t *testing.T) {
	infotainment, ok := ClusterByID("1")
	if !ok {
		t.Fatal("cluster 1 missing")
	}

	tests := []struct {
		name      string
		component string
		sentiment float64
		want      bool
	}{
		{"matching negative", "Infotainment System", -0.8, true},
		{"case insensitive", "INFOTAINMENT system", -0.1, true},
		{"wrong polarity", "Infotainment System", 0.5, false},
		{"other component", "Engine", -0.5, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := infotainment.Contains(mustRecord(t, tc.component, tc.sentiment)); got != tc.want {
				t.Errorf("Contains = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClusterByID_Unknown(t *testing.T) {
	if _, ok := ClusterByID("99"); ok {
		t.Error("expected unknown cluster")
	}
}

func TestClusters_ReturnsCopy(t *testing.T) {
	cs := Clusters()
	cs[0].Name = "mutated"
	if Clusters()[0].Name == "mutated" {
		t.Error("Clusters must return a copy")
	}
}

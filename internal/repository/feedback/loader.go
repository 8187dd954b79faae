package feedback

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domfb "github.com/kailas-cloud/feedlens/internal/domain/feedback"
)

//go:embed dataset.yaml
var defaultDataset []byte

// recordRow is the YAML representation of one feedback record.
type recordRow struct {
	ID        int64   `yaml:"id"`
	Source    string  `yaml:"source"`
	Date      string  `yaml:"date"`
	Vehicle   string  `yaml:"vehicle"`
	Component string  `yaml:"component"`
	Issue     string  `yaml:"issue"`
	Sentiment float64 `yaml:"sentiment"`
	Text      string  `yaml:"text"`
}

type datasetFile struct {
	Records []recordRow `yaml:"records"`
}

// DefaultRecords returns the bundled sample dataset.
func DefaultRecords() ([]domfb.Record, error) {
	return Parse(defaultDataset)
}

// LoadFile reads a YAML dataset from disk.
func LoadFile(path string) ([]domfb.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	recs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return recs, nil
}

// Parse decodes a YAML dataset. Every record is validated; the first bad one fails the load.
func Parse(data []byte) ([]domfb.Record, error) {
	var f datasetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	out := make([]domfb.Record, 0, len(f.Records))
	for i, row := range f.Records {
		date, err := time.Parse(domfb.DateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("record #%d: invalid date %q: %w", i, row.Date, err)
		}
		rec, err := domfb.New(row.ID, domfb.Source(row.Source), date,
			row.Vehicle, row.Component, row.Issue, row.Sentiment, row.Text)
		if err != nil {
			return nil, fmt.Errorf("record #%d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

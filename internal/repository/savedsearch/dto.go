package savedsearch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
)

// filtersRow is the JSON-serializable representation of a facet selection for HSET.
type filtersRow struct {
	Components []string `json:"components,omitempty"`
	Vehicles   []string `json:"vehicles,omitempty"`
	Sentiment  []string `json:"sentiment,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`
	Cluster    string   `json:"cluster,omitempty"`
}

func filtersToRow(fs filter.State) filtersRow {
	sel := fs.Selection()
	row := filtersRow{
		Components: sel.Components,
		Vehicles:   sel.Vehicles,
		Sentiment:  sel.Sentiment,
		Sources:    sel.Sources,
		Cluster:    sel.Cluster,
	}
	if from, ok := sel.Dates.From(); ok {
		row.From = from.Format(feedback.DateLayout)
	}
	if to, ok := sel.Dates.To(); ok {
		row.To = to.Format(feedback.DateLayout)
	}
	return row
}

func filtersFromRow(row filtersRow) (filter.State, error) {
	var from, to time.Time
	var err error
	if row.From != "" {
		if from, err = time.Parse(feedback.DateLayout, row.From); err != nil {
			return filter.State{}, fmt.Errorf("invalid from date: %w", err)
		}
	}
	if row.To != "" {
		if to, err = time.Parse(feedback.DateLayout, row.To); err != nil {
			return filter.State{}, fmt.Errorf("invalid to date: %w", err)
		}
	}
	dates, err := filter.NewDateRange(from, to)
	if err != nil {
		return filter.State{}, err
	}
	return filter.New(filter.Selection{
		Components: row.Components,
		Vehicles:   row.Vehicles,
		Sentiment:  row.Sentiment,
		Sources:    row.Sources,
		Dates:      dates,
		Cluster:    row.Cluster,
	})
}

// savedToHash converts a domain SavedSearch to a map for HSET.
func savedToHash(s domsaved.SavedSearch) (map[string]string, error) {
	filtersJSON, err := json.Marshal(filtersToRow(s.Filters()))
	if err != nil {
		return nil, fmt.Errorf("marshal filters: %w", err)
	}
	return map[string]string{
		"id":           strconv.FormatInt(s.ID(), 10),
		"name":         s.Name(),
		"query":        s.Query(),
		"filters_json": string(filtersJSON),
		"created_at":   strconv.FormatInt(s.CreatedAt().UnixMilli(), 10),
	}, nil
}

// savedFromHash hydrates a domain SavedSearch from an HGETALL result map.
func savedFromHash(m map[string]string) (domsaved.SavedSearch, error) {
	id, err := strconv.ParseInt(m["id"], 10, 64)
	if err != nil {
		return domsaved.SavedSearch{}, fmt.Errorf("invalid id: %w", err)
	}
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domsaved.SavedSearch{}, fmt.Errorf("invalid created_at: %w", err)
	}

	var row filtersRow
	if raw := m["filters_json"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return domsaved.SavedSearch{}, fmt.Errorf("unmarshal filters: %w", err)
		}
	}
	fs, err := filtersFromRow(row)
	if err != nil {
		return domsaved.SavedSearch{}, fmt.Errorf("filters: %w", err)
	}

	return domsaved.New(id, m["name"], m["query"], fs, time.UnixMilli(createdAt))
}

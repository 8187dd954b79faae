package feedlens

import (
	"fmt"

	"github.com/kailas-cloud/feedlens/internal/domain/feedback"
	"github.com/kailas-cloud/feedlens/internal/domain/search/filter"
	"github.com/kailas-cloud/feedlens/internal/domain/search/mode"
	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
	"github.com/kailas-cloud/feedlens/internal/domain/search/result"
	domsaved "github.com/kailas-cloud/feedlens/internal/domain/search/savedsearch"
)

func toInternalRecords(records []Record) ([]feedback.Record, error) {
	out := make([]feedback.Record, 0, len(records))
	for _, r := range records {
		rec, err := feedback.New(r.ID, feedback.Source(r.Source), r.Date,
			r.Vehicle, r.Component, r.Issue, r.Sentiment, r.Text)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", r.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func fromInternalRecord(r feedback.Record) Record {
	return Record{
		ID:        r.ID(),
		Source:    string(r.Source()),
		Date:      r.Date(),
		Vehicle:   r.Vehicle(),
		Component: r.Component(),
		Issue:     r.Issue(),
		Sentiment: r.Sentiment(),
		Text:      r.Text(),
	}
}

func toInternalFilters(f Filters) (filter.State, error) {
	dates, err := filter.NewDateRange(f.From, f.To)
	if err != nil {
		return filter.State{}, fmt.Errorf("date range: %w", err)
	}
	fs, err := filter.New(filter.Selection{
		Components: f.Components,
		Vehicles:   f.Vehicles,
		Sentiment:  f.Sentiment,
		Sources:    f.Sources,
		Cluster:    f.Cluster,
		Dates:      dates,
	})
	if err != nil {
		return filter.State{}, fmt.Errorf("filters: %w", err)
	}
	return fs, nil
}

func fromInternalFilters(fs filter.State) Filters {
	sel := fs.Selection()
	out := Filters{
		Components: sel.Components,
		Vehicles:   sel.Vehicles,
		Sentiment:  sel.Sentiment,
		Sources:    sel.Sources,
		Cluster:    sel.Cluster,
	}
	out.From, _ = sel.Dates.From()
	out.To, _ = sel.Dates.To()
	return out
}

func toInternalRequest(req SearchRequest) (request.Request, error) {
	fs, err := toInternalFilters(req.Filters)
	if err != nil {
		return request.Request{}, err
	}
	r, err := request.New(req.Query, fs, request.Sort(req.Sort), mode.Mode(req.Mode), req.Page, req.PageSize)
	if err != nil {
		return request.Request{}, fmt.Errorf("search request: %w", err)
	}
	return r, nil
}

func fromInternalPage(p result.Page) Page {
	items := make([]SearchResult, len(p.Items))
	for i, it := range p.Items {
		items[i] = SearchResult{Record: fromInternalRecord(it.Record()), Score: it.Score()}
	}
	return Page{
		Items:        items,
		TotalMatches: p.TotalMatches,
		TotalPages:   p.TotalPages,
		Page:         p.Page,
	}
}

func fromInternalSaved(s domsaved.SavedSearch) SavedSearch {
	return SavedSearch{
		ID:        s.ID(),
		Name:      s.Name(),
		Query:     s.Query(),
		Filters:   fromInternalFilters(s.Filters()),
		CreatedAt: s.CreatedAt(),
	}
}

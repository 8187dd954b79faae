package feedlens

import (
	"context"
	"errors"
)

// Pager walks the pages of one search. Changing the page size or the
// request resets it to the first page; navigation never leaves [1, TotalPages].
type Pager struct {
	client     *Client
	req        SearchRequest
	totalPages int
}

// Pager creates a Pager positioned at req.Page (or 1).
func (c *Client) Pager(req SearchRequest) *Pager {
	if req.Page < 1 {
		req.Page = 1
	}
	return &Pager{client: c, req: req}
}

// Request returns the request the next Fetch will run.
func (p *Pager) Request() SearchRequest { return p.req }

// SetRequest replaces query, filters, sort and mode and goes back to page 1.
// The page size is kept when req does not set one.
func (p *Pager) SetRequest(req SearchRequest) {
	if req.PageSize == 0 {
		req.PageSize = p.req.PageSize
	}
	req.Page = 1
	p.req = req
	p.totalPages = 0
}

// SetPageSize changes the page size and goes back to page 1.
func (p *Pager) SetPageSize(n int) {
	p.req.PageSize = n
	p.req.Page = 1
	p.totalPages = 0
}

// Fetch runs the search for the current page. When the result set shrank
// below the current page, it clamps to the last page and retries once.
func (p *Pager) Fetch(ctx context.Context) (Page, error) {
	page, err := p.client.Search(ctx, p.req)
	var oor *OutOfRangeError
	if errors.As(err, &oor) {
		p.req.Page = oor.TotalPages
		page, err = p.client.Search(ctx, p.req)
	}
	if err != nil {
		return Page{}, err
	}
	p.totalPages = page.TotalPages
	return page, nil
}

// Next advances one page. It reports false on the last page or before the first Fetch.
func (p *Pager) Next() bool {
	if p.totalPages == 0 || p.req.Page >= p.totalPages {
		return false
	}
	p.req.Page++
	return true
}

// Prev goes back one page. It reports false on the first page.
func (p *Pager) Prev() bool {
	if p.req.Page <= 1 {
		return false
	}
	p.req.Page--
	return true
}

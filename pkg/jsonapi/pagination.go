package jsonapi

import (
	"net/url"
	"strconv"
)

// Page size limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination describes one page of a collection.
type Pagination struct {
	Total   int    // total number of items
	Page    int    // 1-based
	PerPage int    // items per page
	BaseURL string // used to build links; empty disables links
}

// NewPagination creates a Pagination, clamping page and perPage.
func NewPagination(total, page, perPage int, baseURL string) *Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	return &Pagination{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		BaseURL: baseURL,
	}
}

// ParsePage reads page[number] and page[size] from query. Values that are
// missing, non-numeric or below one fall back to defaults.
func ParsePage(query url.Values) (page, perPage int) {
	page = positiveInt(query.Get("page[number]"), 1)
	perPage = positiveInt(query.Get("page[size]"), DefaultPageSize)
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}
	return page, perPage
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// TotalPages returns the number of pages, at least one.
func (p *Pagination) TotalPages() int {
	pages := (p.Total + p.PerPage - 1) / p.PerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Offset returns the number of items before this page.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the page size.
func (p *Pagination) Limit() int {
	return p.PerPage
}

// Meta returns pagination metadata.
func (p *Pagination) Meta() Meta {
	return Meta{
		"total":    p.Total,
		"page":     p.Page,
		"per_page": p.PerPage,
		"pages":    p.TotalPages(),
	}
}

// Links returns self, first, last and, where they exist, prev and next.
// It returns nil when BaseURL is empty.
func (p *Pagination) Links() *Links {
	if p.BaseURL == "" {
		return nil
	}

	last := p.TotalPages()
	links := &Links{
		Self:  p.url(p.Page),
		First: p.url(1),
		Last:  p.url(last),
	}
	if p.Page > 1 {
		links.Prev = p.url(p.Page - 1)
	}
	if p.Page < last {
		links.Next = p.url(p.Page + 1)
	}
	return links
}

func (p *Pagination) url(page int) string {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return p.BaseURL
	}
	q := u.Query()
	q.Set("page[number]", strconv.Itoa(page))
	q.Set("page[size]", strconv.Itoa(p.PerPage))
	u.RawQuery = q.Encode()
	return u.String()
}

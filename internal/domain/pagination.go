package domain

import (
	"errors"
	"slices"
)

const DefaultPageSize = 50

var SupportedPageSizes = []int{50, 100, 200, 500}

var ErrUnsupportedPageSize = errors.New("unsupported page size")

// Paginate returns the 1-indexed page of view and the total page count.
// An empty view has zero pages. Pages outside [1, totalPages] are empty.
func Paginate(view []Record, pageSize, page int) ([]Record, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalPages := len(view) / pageSize
	if len(view)%pageSize != 0 {
		totalPages++
	}
	if page < 1 || page > totalPages {
		return []Record{}, totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(view))
	return view[start:end:end], totalPages
}

// ViewState is the query and paging state owned by a presentation surface.
// Changing the query or page size always returns to the first page.
type ViewState struct {
	Query    Query
	PageSize int
	Page     int
}

func NewViewState() ViewState {
	return ViewState{
		Query:    DefaultQuery(),
		PageSize: DefaultPageSize,
		Page:     1,
	}
}

func (s ViewState) WithQuery(q Query) ViewState {
	s.Query = q
	s.Page = 1
	return s
}

func (s ViewState) WithPageSize(pageSize int) (ViewState, error) {
	if !slices.Contains(SupportedPageSizes, pageSize) {
		return s, ErrUnsupportedPageSize
	}

	s.PageSize = pageSize
	s.Page = 1
	return s, nil
}

func (s ViewState) WithPage(page int) ViewState {
	s.Page = page
	return s
}

// pageWindow is how many pages either side of the current one get a link.
const pageWindow = 2

type PageControls struct {
	Visible      bool       `json:"visible"`
	Current      int        `json:"current"`
	Total        int        `json:"total"`
	FirstEnabled bool       `json:"first_enabled"`
	PrevEnabled  bool       `json:"prev_enabled"`
	NextEnabled  bool       `json:"next_enabled"`
	LastEnabled  bool       `json:"last_enabled"`
	Links        []PageLink `json:"links"`
}

type PageLink struct {
	Page    int  `json:"page"`
	Current bool `json:"current"`
	// GapBefore marks that pages were skipped between this link and the previous one.
	GapBefore bool `json:"gap_before"`
}

// NewPageControls lays out the pager for the given position. Controls are
// hidden when there is at most one page.
func NewPageControls(current, total int) PageControls {
	controls := PageControls{
		Current: current,
		Total:   total,
		Links:   []PageLink{},
	}
	if total <= 1 {
		return controls
	}

	controls.Visible = true
	controls.FirstEnabled = current > 1
	controls.PrevEnabled = current > 1
	controls.NextEnabled = current < total
	controls.LastEnabled = current < total

	prev := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && (p < current-pageWindow || p > current+pageWindow) {
			continue
		}

		controls.Links = append(controls.Links, PageLink{
			Page:      p,
			Current:   p == current,
			GapBefore: prev != 0 && p != prev+1,
		})
		prev = p
	}

	return controls
}

package controller

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/jbeshir/xlike-feed/internal/domain"
)

const defaultPage = 1

func parsePagination(q url.Values) (page, pageSize int, err error) {
	page = defaultPage
	pageSize = domain.DefaultPageSize

	if q.Has("page") {
		p, err := strconv.ParseInt(q.Get("page"), 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("unable to parse page from query: %w", err)
		}
		if p < 1 {
			return 0, 0, fmt.Errorf("invalid page value [%d]", p)
		}
		page = int(p)
	}

	if q.Has("page_size") {
		ps, err := strconv.ParseInt(q.Get("page_size"), 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("unable to parse page size from query: %w", err)
		}
		if !slices.Contains(domain.SupportedPageSizes, int(ps)) {
			return 0, 0, fmt.Errorf("page size [%d]: %w", ps, domain.ErrUnsupportedPageSize)
		}
		pageSize = int(ps)
	}

	return page, pageSize, nil
}

// viewStateFromQuery never fails on filter parameters; only paging is validated.
func viewStateFromQuery(q url.Values) (domain.ViewState, error) {
	page, pageSize, err := parsePagination(q)
	if err != nil {
		return domain.ViewState{}, err
	}

	state := domain.NewViewState().WithQuery(domain.ParseQuery(q))
	if state, err = state.WithPageSize(pageSize); err != nil {
		return domain.ViewState{}, err
	}
	return state.WithPage(page), nil
}

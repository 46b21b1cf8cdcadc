package command

import (
	"context"
	"fmt"
	"time"

	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/jbeshir/xlike-feed/internal/metrics"
)

type BrowseRecordsRequest struct {
	State domain.ViewState
}

type BrowseRecordsResponse struct {
	Records    []domain.Record
	TotalRows  int
	TotalPages int
	Page       int
	PageSize   int
	Controls   domain.PageControls
}

// BrowseRecords computes one page of the filtered and sorted view.
type BrowseRecords struct {
	Lister datasources.RecordLister
}

func NewBrowseRecords(lister datasources.RecordLister) *BrowseRecords {
	return &BrowseRecords{Lister: lister}
}

func (c *BrowseRecords) Execute(ctx context.Context, req BrowseRecordsRequest) (BrowseRecordsResponse, error) {
	records, err := c.Lister.ListRecords(ctx)
	if err != nil {
		return BrowseRecordsResponse{}, fmt.Errorf("listing records: %w", err)
	}

	pageSize := req.State.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	start := time.Now()
	view := domain.ComputeView(records, req.State.Query)
	page, totalPages := domain.Paginate(view, pageSize, req.State.Page)
	metrics.ViewComputeSeconds.Observe(time.Since(start).Seconds())

	return BrowseRecordsResponse{
		Records:    page,
		TotalRows:  len(view),
		TotalPages: totalPages,
		Page:       req.State.Page,
		PageSize:   pageSize,
		Controls:   domain.NewPageControls(req.State.Page, totalPages),
	}, nil
}

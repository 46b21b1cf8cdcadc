package command

import (
	"context"

	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/datasources/memory"
	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/jbeshir/xlike-feed/internal/metrics"
)

type LoadDatasetResponse struct {
	Store *memory.Store
}

// LoadDataset builds the in-memory dataset served for the life of the process.
// A failed load is logged and yields an empty dataset rather than an error.
type LoadDataset struct {
	Source  datasources.RecordSource
	Avatars datasources.AvatarSource
}

func NewLoadDataset(source datasources.RecordSource, avatars datasources.AvatarSource) *LoadDataset {
	if avatars == nil {
		avatars = datasources.NullAvatarSource{}
	}
	return &LoadDataset{
		Source:  source,
		Avatars: avatars,
	}
}

func (c *LoadDataset) Execute(ctx context.Context, _ Empty) (LoadDatasetResponse, error) {
	logger := domain.LoggerFromContext(ctx)

	records, err := c.Source.LoadRecords(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "loading records failed, serving an empty dataset", "error", err)
		metrics.DatasetLoadFailures.Inc()
		records = nil
	}

	overlay, err := c.Avatars.LoadAvatars(ctx)
	if err != nil {
		logger.WarnContext(ctx, "loading avatar overlay failed, using record avatars only", "error", err)
		overlay = nil
	}

	store := memory.NewStore(records, overlay)
	metrics.RecordsLoaded.Set(float64(store.Len()))
	logger.InfoContext(ctx, "dataset ready", "records", store.Len(), "avatar_overrides", len(overlay))

	return LoadDatasetResponse{Store: store}, nil
}

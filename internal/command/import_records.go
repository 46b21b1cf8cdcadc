package command

import (
	"context"
	"fmt"

	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

type ImportRecordsResponse struct {
	Imported int
}

// ImportRecords copies every record from a source into a sink.
type ImportRecords struct {
	Source datasources.RecordSource
	Sink   datasources.RecordSink
}

func NewImportRecords(source datasources.RecordSource, sink datasources.RecordSink) *ImportRecords {
	return &ImportRecords{
		Source: source,
		Sink:   sink,
	}
}

func (c *ImportRecords) Execute(ctx context.Context, _ Empty) (ImportRecordsResponse, error) {
	records, err := c.Source.LoadRecords(ctx)
	if err != nil {
		return ImportRecordsResponse{}, fmt.Errorf("loading records: %w", err)
	}

	if err := c.Sink.SaveRecords(ctx, records); err != nil {
		return ImportRecordsResponse{}, fmt.Errorf("saving records: %w", err)
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "imported records", "count", len(records))
	return ImportRecordsResponse{Imported: len(records)}, nil
}

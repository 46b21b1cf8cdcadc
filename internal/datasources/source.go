package datasources

import (
	"context"

	"github.com/jbeshir/xlike-feed/internal/domain"
)

// RecordSource loads a complete record set, sorted by date descending.
type RecordSource interface {
	LoadRecords(ctx context.Context) ([]domain.Record, error)
}

// RecordSink persists records.
type RecordSink interface {
	SaveRecords(ctx context.Context, records []domain.Record) error
}

// AvatarSource loads handle to avatar URL overrides.
type AvatarSource interface {
	LoadAvatars(ctx context.Context) (map[string]string, error)
}

// NullAvatarSource is used when no avatar overlay is configured.
type NullAvatarSource struct{}

var _ AvatarSource = NullAvatarSource{}

func (NullAvatarSource) LoadAvatars(_ context.Context) (map[string]string, error) {
	return nil, nil
}

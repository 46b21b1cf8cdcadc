package datasources

import (
	"context"

	"github.com/jbeshir/xlike-feed/internal/domain"
)

// DatasetRepository combines the read operations over the loaded record set.
type DatasetRepository interface {
	RecordLister
	RecordFetcher
	AuthorLister
	AvatarFetcher
}

// RecordLister returns the full record set in its default order.
type RecordLister interface {
	ListRecords(ctx context.Context) ([]domain.Record, error)
}

// RecordFetcher looks up a single record by URL.
type RecordFetcher interface {
	FetchRecordByURL(ctx context.Context, url string) (domain.Record, bool, error)
}

// AuthorLister lists the most frequent authors over the full record set.
type AuthorLister interface {
	ListTopAuthors(ctx context.Context, limit int) ([]domain.AuthorSummary, error)
}

// AvatarFetcher resolves an author handle to an avatar URL.
type AvatarFetcher interface {
	FetchAvatar(ctx context.Context, handle string) (string, bool, error)
}

// Package memory holds the loaded record set for the lifetime of the process.
//
// A Store is built once and never modified afterwards, so it is safe for
// any number of concurrent readers without locking.
package memory

import (
	"context"

	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

var _ datasources.DatasetRepository = (*Store)(nil)

type Store struct {
	records    []domain.Record
	topAuthors []domain.AuthorSummary
	avatars    map[string]string
	byURL      map[string]int
}

// NewStore takes ownership of records; callers must not modify the slice
// afterwards. avatarOverlay may be nil.
func NewStore(records []domain.Record, avatarOverlay map[string]string) *Store {
	if records == nil {
		records = []domain.Record{}
	}

	byURL := make(map[string]int, len(records))
	for i, r := range records {
		if _, seen := byURL[r.URL]; !seen {
			byURL[r.URL] = i
		}
	}

	return &Store{
		records:    records,
		topAuthors: domain.TopAuthors(records, domain.DefaultTopAuthorsLimit),
		avatars:    domain.AvatarMap(records, avatarOverlay),
		byURL:      byURL,
	}
}

// ListRecords returns the shared backing slice. It must be treated as read-only.
func (s *Store) ListRecords(_ context.Context) ([]domain.Record, error) {
	return s.records, nil
}

// FetchRecordByURL returns the first record loaded with the given URL.
func (s *Store) FetchRecordByURL(_ context.Context, url string) (domain.Record, bool, error) {
	i, ok := s.byURL[url]
	if !ok {
		return domain.Record{}, false, nil
	}
	return s.records[i], true, nil
}

// ListTopAuthors serves limits up to the default from the precomputed table
// and recounts for anything larger.
func (s *Store) ListTopAuthors(_ context.Context, limit int) ([]domain.AuthorSummary, error) {
	if limit <= 0 {
		limit = domain.DefaultTopAuthorsLimit
	}
	if limit > domain.DefaultTopAuthorsLimit {
		return domain.TopAuthors(s.records, limit), nil
	}

	n := min(limit, len(s.topAuthors))
	return s.topAuthors[:n:n], nil
}

func (s *Store) FetchAvatar(_ context.Context, handle string) (string, bool, error) {
	avatar, ok := s.avatars[handle]
	return avatar, ok, nil
}

func (s *Store) Len() int {
	return len(s.records)
}

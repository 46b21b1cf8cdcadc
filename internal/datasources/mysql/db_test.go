package mysql

import (
	"context"
	"os"
	"testing"

	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MySQL integration tests in short mode")
	}
	uri := os.Getenv("MYSQL_URI")
	if uri == "" {
		t.Skip("MYSQL_URI not set")
	}

	ctx := context.Background()
	db, err := Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := New(db)
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = db.ExecContext(ctx, "DELETE FROM tweets")
	require.NoError(t, err)

	rec := domain.Record{
		URL:          "https://x.com/someone/status/1",
		Text:         "utf8mb4 check 🚀",
		AuthorHandle: "@someone",
		AuthorName:   "Someone",
		MediaType:    domain.MediaTypeImage,
		ImagesURLs:   []string{"https://pbs.twimg.com/media/1.jpg"},
		NumLike:      42,
	}
	rec.SetDate("2024-04-27T11:13:06Z")

	require.NoError(t, repo.SaveRecords(ctx, []domain.Record{rec}))

	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	loaded, err := repo.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, rec, loaded[0])
}

func TestConnect_InvalidDSN(t *testing.T) {
	_, err := Connect(context.Background(), "not a dsn")
	assert.Error(t, err)
}

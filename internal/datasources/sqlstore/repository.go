// Package sqlstore keeps records in a SQL table. Queries are built with
// go-sqlbuilder so the same repository serves MySQL and SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

const tableName = "tweets"

// insertBatchSize keeps multi-row inserts well under placeholder limits.
const insertBatchSize = 500

var recordColumns = []string{
	"url",
	"text",
	"author_handle",
	"author_name",
	"author_avatar",
	"date",
	"lang",
	"media_type",
	"images_urls",
	"media_urls",
	"mentioned_urls",
	"is_retweet",
	"num_like",
	"num_retweet",
	"num_reply",
	"num_views",
}

var _ datasources.RecordSource = (*Repository)(nil)
var _ datasources.RecordSink = (*Repository)(nil)

type Repository struct {
	db     *sql.DB
	flavor sqlbuilder.Flavor
}

func New(db *sql.DB, flavor sqlbuilder.Flavor) *Repository {
	return &Repository{db: db, flavor: flavor}
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	ctb := r.flavor.NewCreateTableBuilder()
	ctb.CreateTable(tableName).IfNotExists()

	switch r.flavor {
	case sqlbuilder.MySQL:
		ctb.Define("id", "BIGINT", "NOT NULL", "AUTO_INCREMENT", "PRIMARY KEY")
		ctb.Option("DEFAULT CHARACTER SET utf8mb4")
	case sqlbuilder.SQLite:
		ctb.Define("id", "INTEGER", "PRIMARY KEY", "AUTOINCREMENT")
	default:
		return fmt.Errorf("unsupported SQL flavor [%s]", r.flavor)
	}

	ctb.Define("url", "TEXT", "NOT NULL")
	ctb.Define("text", "TEXT", "NOT NULL")
	ctb.Define("author_handle", "VARCHAR(255)", "NOT NULL")
	ctb.Define("author_name", "TEXT", "NOT NULL")
	ctb.Define("author_avatar", "TEXT", "NOT NULL")
	ctb.Define("date", "VARCHAR(64)", "NOT NULL")
	ctb.Define("lang", "VARCHAR(32)", "NOT NULL")
	ctb.Define("media_type", "VARCHAR(32)", "NOT NULL")
	ctb.Define("images_urls", "TEXT", "NOT NULL")
	ctb.Define("media_urls", "TEXT", "NOT NULL")
	ctb.Define("mentioned_urls", "TEXT", "NOT NULL")
	ctb.Define("is_retweet", "BOOLEAN", "NOT NULL")
	ctb.Define("num_like", "BIGINT", "NOT NULL")
	ctb.Define("num_retweet", "BIGINT", "NOT NULL")
	ctb.Define("num_reply", "BIGINT", "NOT NULL")
	ctb.Define("num_views", "BIGINT", "NOT NULL")

	query, args := ctb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("creating %s table: %w", tableName, err)
	}
	return nil
}

// LoadRecords reads every row, sorted by date descending with insertion
// order breaking ties.
func (r *Repository) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(recordColumns...)
	sb.From(tableName)
	sb.OrderBy("id").Asc()

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running records query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	domain.SortRecords(records, domain.SortFieldDate, domain.SortOrderDesc)
	return records, nil
}

func scanRecord(rows *sql.Rows) (domain.Record, error) {
	var (
		rec                         domain.Record
		date, mediaType             string
		images, media, mentioned    string
		like, retweet, reply, views int64
	)

	if err := rows.Scan(
		&rec.URL,
		&rec.Text,
		&rec.AuthorHandle,
		&rec.AuthorName,
		&rec.AuthorAvatar,
		&date,
		&rec.Lang,
		&mediaType,
		&images,
		&media,
		&mentioned,
		&rec.IsRetweet,
		&like,
		&retweet,
		&reply,
		&views,
	); err != nil {
		return domain.Record{}, fmt.Errorf("scanning record row: %w", err)
	}

	rec.SetDate(date)
	rec.MediaType = domain.MediaType(mediaType)
	rec.NumLike = domain.Count(like)
	rec.NumRetweet = domain.Count(retweet)
	rec.NumReply = domain.Count(reply)
	rec.NumViews = domain.Count(views)

	var err error
	if rec.ImagesURLs, err = decodeList(images); err != nil {
		return domain.Record{}, fmt.Errorf("decoding images_urls for [%s]: %w", rec.URL, err)
	}
	if rec.MediaURLs, err = decodeList(media); err != nil {
		return domain.Record{}, fmt.Errorf("decoding media_urls for [%s]: %w", rec.URL, err)
	}
	if rec.MentionedURLs, err = decodeList(mentioned); err != nil {
		return domain.Record{}, fmt.Errorf("decoding mentioned_urls for [%s]: %w", rec.URL, err)
	}

	return rec, nil
}

// SaveRecords appends records in batches inside one transaction. Duplicate
// URLs are stored as separate rows, matching the JSONL input.
func (r *Repository) SaveRecords(ctx context.Context, records []domain.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(records); start += insertBatchSize {
		batch := records[start:min(start+insertBatchSize, len(records))]

		query, args, err := r.buildInsert(batch)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting records %d-%d: %w", start, start+len(batch)-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (r *Repository) buildInsert(batch []domain.Record) (string, []interface{}, error) {
	ib := r.flavor.NewInsertBuilder()
	ib.InsertInto(tableName)
	ib.Cols(recordColumns...)

	for _, rec := range batch {
		images, err := encodeList(rec.ImagesURLs)
		if err != nil {
			return "", nil, err
		}
		media, err := encodeList(rec.MediaURLs)
		if err != nil {
			return "", nil, err
		}
		mentioned, err := encodeList(rec.MentionedURLs)
		if err != nil {
			return "", nil, err
		}

		ib.Values(
			rec.URL,
			rec.Text,
			rec.AuthorHandle,
			rec.AuthorName,
			rec.AuthorAvatar,
			rec.Date,
			rec.Lang,
			string(rec.MediaType),
			images,
			media,
			mentioned,
			rec.IsRetweet,
			int64(rec.NumLike),
			int64(rec.NumRetweet),
			int64(rec.NumReply),
			int64(rec.NumViews),
		)
	}

	query, args := ib.Build()
	return query, args, nil
}

func (r *Repository) CountRecords(ctx context.Context) (int64, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

func encodeList(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encoding list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, err
	}
	return values, nil
}

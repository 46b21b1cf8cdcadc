package jsonl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

var _ datasources.RecordSource = (*Source)(nil)

// Source loads records from a file path or an http(s) URL.
type Source struct {
	Location   string
	HTTPClient *http.Client
}

func NewSource(location string) *Source {
	return &Source{
		Location: location,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *Source) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	body, err := open(ctx, s.HTTPClient, s.Location)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	records, stats, err := Decode(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("decoding records from [%s]: %w", s.Location, err)
	}

	logger := domain.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "loaded records",
		"location", s.Location,
		"lines", stats.Lines,
		"records", stats.Records,
		"skipped", stats.Skipped,
	)

	return records, nil
}

func open(ctx context.Context, client *http.Client, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("opening [%s]: %w", location, err)
		}
		return f, nil
	}

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for [%s]: %w", location, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching [%s]: %w", location, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetching [%s]: unexpected status %d", location, resp.StatusCode)
	}

	return resp.Body, nil
}

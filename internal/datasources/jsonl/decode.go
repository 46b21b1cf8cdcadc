// Package jsonl reads newline-delimited JSON feeds: one record or avatar
// entry per line, from a local file or over HTTP.
package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/jbeshir/xlike-feed/internal/metrics"
)

const maxLineSize = 16 << 20

var errNotObject = errors.New("line is not a JSON object")

var utf8BOM = []byte("\xef\xbb\xbf")

type LoadStats struct {
	Lines   int
	Records int
	Skipped int
}

// Decode parses one record per non-blank line. Lines that fail to parse are
// logged and skipped. The result is sorted by date descending. An error is
// only returned when r itself fails.
func Decode(ctx context.Context, r io.Reader) ([]domain.Record, LoadStats, error) {
	records := []domain.Record{}

	stats, err := decodeLines(ctx, r, func(line []byte) error {
		var rec domain.Record
		if err := unmarshalObject(line, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	stats.Records = len(records)
	domain.SortRecords(records, domain.SortFieldDate, domain.SortOrderDesc)
	return records, stats, nil
}

func decodeLines(ctx context.Context, r io.Reader, handle func(line []byte) error) (LoadStats, error) {
	logger := domain.LoggerFromContext(ctx)

	var stats LoadStats
	reader := bufio.NewReaderSize(r, 64*1024)

	for {
		line, tooLong, err := readLine(reader, maxLineSize)
		if err != nil && !errors.Is(err, io.EOF) {
			return stats, fmt.Errorf("reading line %d: %w", stats.Lines+1, err)
		}
		if err != nil && len(line) == 0 && !tooLong {
			return stats, nil
		}
		stats.Lines++

		if tooLong {
			stats.Skipped++
			metrics.LinesSkipped.Inc()
			logger.WarnContext(ctx, "skipping oversized line", "line", stats.Lines, "limit_bytes", maxLineSize)
		} else {
			if stats.Lines == 1 {
				line = bytes.TrimPrefix(line, utf8BOM)
			}
			line = bytes.TrimSpace(line)
			if len(line) > 0 {
				if err := handle(line); err != nil {
					stats.Skipped++
					metrics.LinesSkipped.Inc()
					logger.WarnContext(ctx, "skipping malformed line", "line", stats.Lines, "error", err)
				}
			}
		}

		if err != nil {
			return stats, nil
		}
	}
}

// readLine reads up to and including the next newline. A line longer than
// limit is consumed and discarded, and reported with tooLong set.
func readLine(reader *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, readErr := reader.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(bytes.TrimRight(chunk, "\r\n")) > limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(readErr, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, readErr
	}
}

// unmarshalObject rejects valid JSON that is not an object, such as null,
// which would otherwise decode to an empty value.
func unmarshalObject(line []byte, v any) error {
	if line[0] != '{' {
		return errNotObject
	}
	return json.Unmarshal(line, v)
}

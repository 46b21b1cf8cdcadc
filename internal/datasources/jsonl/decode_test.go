package jsonl

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

const sampleFeed = `{"url":"u1","text":"first","author_handle":"@a","date":"2024-01-01","num_like":5}

{"url":"u2","text":"second","author_handle":"@b","date":"2024-02-01","num_like":1}
this is not json
{"url":"u3","text":"broken",
null
["an","array"]
{"url":"u4","text":"undated","date":"unknown"}` + "\r\n" + `   ` + "\n"

func recordURLs(records []domain.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.URL)
	}
	return out
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name        string
		input       string
		wantURLs    []string
		wantLines   int
		wantSkipped int
	}{
		{
			name:        "skips_blank_and_malformed_lines",
			input:       sampleFeed,
			wantURLs:    []string{"u2", "u1", "u4"},
			wantLines:   9,
			wantSkipped: 4,
		},
		{
			name:     "empty_input",
			input:    "",
			wantURLs: []string{},
		},
		{
			name:      "only_blank_lines",
			input:     "\n \n\t\n",
			wantURLs:  []string{},
			wantLines: 3,
		},
		{
			name:      "byte_order_mark",
			input:     "\xef\xbb\xbf" + `{"url":"u1","date":"2024-01-01"}`,
			wantURLs:  []string{"u1"},
			wantLines: 1,
		},
		{
			name:      "no_trailing_newline",
			input:     `{"url":"u1"}` + "\n" + `{"url":"u2"}`,
			wantURLs:  []string{"u1", "u2"},
			wantLines: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, stats, err := Decode(testContext(), strings.NewReader(tc.input))
			require.NoError(t, err)

			assert.Equal(t, tc.wantURLs, recordURLs(records))
			assert.Equal(t, tc.wantLines, stats.Lines)
			assert.Equal(t, tc.wantSkipped, stats.Skipped)
			assert.Equal(t, len(tc.wantURLs), stats.Records)
		})
	}
}

func TestDecode_ParsesFields(t *testing.T) {
	records, _, err := Decode(testContext(), strings.NewReader(sampleFeed))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "second", records[0].Text)
	assert.Equal(t, domain.Count(1), records[0].NumLike)
	assert.True(t, records[0].HasDate)
	assert.False(t, records[2].HasDate)
}

func TestDecode_LongLine(t *testing.T) {
	text := strings.Repeat("x", 512*1024)
	input := `{"url":"long","text":"` + text + `"}`

	records, _, err := Decode(testContext(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Text, len(text))
}

func TestDecode_OversizedLineSkipped(t *testing.T) {
	input := `{"url":"u1","date":"2024-01-01"}` + "\n" +
		`{"url":"huge","text":"` + strings.Repeat("x", maxLineSize) + `"}` + "\n" +
		`{"url":"u2","date":"2024-02-01"}` + "\n"

	records, stats, err := Decode(testContext(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"u2", "u1"}, recordURLs(records))
	assert.Equal(t, LoadStats{Lines: 3, Records: 2, Skipped: 1}, stats)
}

func TestReadLine(t *testing.T) {
	cases := []struct {
		name        string
		input       string
		limit       int
		wantLines   []string
		wantTooLong []bool
	}{
		{
			name:        "within_limit",
			input:       "abc\nde\n",
			limit:       3,
			wantLines:   []string{"abc\n", "de\n", ""},
			wantTooLong: []bool{false, false, false},
		},
		{
			name:        "crlf_not_counted",
			input:       "abc\r\n",
			limit:       3,
			wantLines:   []string{"abc\r\n", ""},
			wantTooLong: []bool{false, false},
		},
		{
			name:        "over_limit_discarded",
			input:       "abcd\nok\n",
			limit:       3,
			wantLines:   []string{"", "ok\n", ""},
			wantTooLong: []bool{true, false, false},
		},
		{
			name:        "over_limit_at_eof",
			input:       "abcd",
			limit:       3,
			wantLines:   []string{""},
			wantTooLong: []bool{true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bufio.NewReaderSize(strings.NewReader(tc.input), 16)

			for i := range tc.wantLines {
				line, tooLong, err := readLine(reader, tc.limit)
				assert.Equal(t, tc.wantLines[i], string(line), "line %d", i)
				assert.Equal(t, tc.wantTooLong[i], tooLong, "line %d", i)
				if i == len(tc.wantLines)-1 {
					assert.ErrorIs(t, err, io.EOF)
				} else {
					require.NoError(t, err)
				}
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestDecode_ReadError(t *testing.T) {
	_, _, err := Decode(testContext(), failingReader{})
	assert.ErrorContains(t, err, "disk on fire")
}

func TestSource_LoadRecords_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sampleFeed), 0o600))

	records, err := NewSource(path).LoadRecords(testContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u1", "u4"}, recordURLs(records))
}

func TestSource_LoadRecords_MissingFile(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "absent.jsonl")).LoadRecords(testContext())
	assert.Error(t, err)
}

func TestSource_LoadRecords_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/x.jsonl" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	records, err := NewSource(srv.URL + "/data/x.jsonl").LoadRecords(testContext())
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = NewSource(srv.URL + "/data/missing.jsonl").LoadRecords(testContext())
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestAvatarSource_LoadAvatars(t *testing.T) {
	input := `{"author_handle":"@a","avatar_url":"https://img/a.png"}
{"author_handle":"@b","avatar_url":"` + domain.DefaultAvatarURL + `"}
{"author_handle":"","avatar_url":"https://img/none.png"}
garbage
{"author_handle":"@a","avatar_url":"https://img/a2.png"}
`
	path := filepath.Join(t.TempDir(), "author_avatar.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

	avatars, err := NewAvatarSource(path).LoadAvatars(testContext())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"@a": "https://img/a2.png"}, avatars)
}

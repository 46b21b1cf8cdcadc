package domain

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		check func(t *testing.T, q Query)
	}{
		{
			name: "empty_is_default",
			raw:  "",
			check: func(t *testing.T, q Query) {
				assert.Equal(t, DefaultQuery(), q)
			},
		},
		{
			name: "all_fields",
			raw: "search=llm&sort_by=views&sort_order=asc&min_likes=10&min_retweets=2" +
				"&date_start=2024-01-01&date_end=2024-01-31&media_type=video&author=%40alice",
			check: func(t *testing.T, q Query) {
				assert.Equal(t, "llm", q.SearchTerm)
				assert.Equal(t, SortFieldViews, q.SortBy)
				assert.Equal(t, SortOrderAsc, q.SortOrder)
				require.NotNil(t, q.MinLikes)
				assert.Equal(t, int64(10), *q.MinLikes)
				require.NotNil(t, q.MinRetweets)
				assert.Equal(t, int64(2), *q.MinRetweets)
				require.True(t, q.DateRange.Active())
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *q.DateRange.Start)
				assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *q.DateRange.End)
				assert.Equal(t, MediaFilterVideo, q.MediaType)
				assert.Equal(t, "@alice", q.Author)
			},
		},
		{
			name: "non_numeric_thresholds_unset",
			raw:  "min_likes=lots&min_retweets=",
			check: func(t *testing.T, q Query) {
				assert.Nil(t, q.MinLikes)
				assert.Nil(t, q.MinRetweets)
			},
		},
		{
			name: "negative_threshold_unset",
			raw:  "min_likes=-5",
			check: func(t *testing.T, q Query) {
				assert.Nil(t, q.MinLikes)
			},
		},
		{
			name: "unknown_enums_fall_back",
			raw:  "sort_by=bookmarks&sort_order=sideways&media_type=audio",
			check: func(t *testing.T, q Query) {
				assert.Equal(t, SortFieldDate, q.SortBy)
				assert.Equal(t, SortOrderDesc, q.SortOrder)
				assert.Equal(t, MediaFilterAll, q.MediaType)
			},
		},
		{
			name: "malformed_date_disables_range",
			raw:  "date_start=2024-01-01&date_end=soon",
			check: func(t *testing.T, q Query) {
				assert.False(t, q.DateRange.Active())
			},
		},
		{
			name: "single_date_bound_ignored",
			raw:  "date_start=2024-01-01",
			check: func(t *testing.T, q Query) {
				assert.False(t, q.DateRange.Active())
			},
		},
		{
			name: "timestamp_end_kept_exact",
			raw:  "date_start=2024-01-01T00:00:00Z&date_end=2024-01-02T12:00:00Z",
			check: func(t *testing.T, q Query) {
				require.True(t, q.DateRange.Active())
				assert.Equal(t, time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), *q.DateRange.End)
			},
		},
		{
			name: "blank_author_is_all",
			raw:  "author=%20",
			check: func(t *testing.T, q Query) {
				assert.Equal(t, AllAuthors, q.Author)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.raw)
			require.NoError(t, err)
			tc.check(t, ParseQuery(values))
		})
	}
}

func TestQuery_ValuesRoundTrip(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	likes := int64(7)

	q := Query{
		SearchTerm: "agents",
		SortBy:     SortFieldReplies,
		SortOrder:  SortOrderAsc,
		MinLikes:   &likes,
		DateRange:  DateRange{Start: &start, End: &end},
		MediaType:  MediaFilterImage,
		Author:     "@bob",
	}

	back := ParseQuery(q.Values())

	assert.Equal(t, q.SearchTerm, back.SearchTerm)
	assert.Equal(t, q.SortBy, back.SortBy)
	assert.Equal(t, q.SortOrder, back.SortOrder)
	require.NotNil(t, back.MinLikes)
	assert.Equal(t, likes, *back.MinLikes)
	assert.Nil(t, back.MinRetweets)
	require.True(t, back.DateRange.Active())
	assert.True(t, start.Equal(*back.DateRange.Start))
	assert.True(t, end.Equal(*back.DateRange.End))
	assert.Equal(t, q.MediaType, back.MediaType)
	assert.Equal(t, q.Author, back.Author)
}

package domain

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

type SortField string

const SortFieldDate SortField = "date"
const SortFieldLikes SortField = "likes"
const SortFieldRetweets SortField = "retweets"
const SortFieldReplies SortField = "replies"
const SortFieldViews SortField = "views"

var ValidSortFields = []SortField{
	SortFieldDate,
	SortFieldLikes,
	SortFieldRetweets,
	SortFieldReplies,
	SortFieldViews,
}

type SortOrder string

const SortOrderDesc SortOrder = "desc"
const SortOrderAsc SortOrder = "asc"

type MediaFilter string

const MediaFilterAll MediaFilter = "all"
const MediaFilterText MediaFilter = "text"
const MediaFilterImage MediaFilter = "image"
const MediaFilterVideo MediaFilter = "video"

var ValidMediaFilters = []MediaFilter{
	MediaFilterAll,
	MediaFilterText,
	MediaFilterImage,
	MediaFilterVideo,
}

// AllAuthors disables the author filter.
const AllAuthors = "all"

// DateRange is inclusive at both ends and only applies when both are set.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (d DateRange) Active() bool {
	return d.Start != nil && d.End != nil
}

// Query is the complete filter, sort and search state for a view. The zero
// value, like DefaultQuery, sorts by date descending with no filters.
type Query struct {
	SearchTerm  string
	SortBy      SortField
	SortOrder   SortOrder
	MinLikes    *int64
	MinRetweets *int64
	DateRange   DateRange
	MediaType   MediaFilter
	Author      string
}

func DefaultQuery() Query {
	return Query{
		SortBy:    SortFieldDate,
		SortOrder: SortOrderDesc,
		MediaType: MediaFilterAll,
		Author:    AllAuthors,
	}
}

// ParseQuery reads a Query from query string parameters. It never fails:
// unknown or malformed values leave the corresponding setting at its default.
func ParseQuery(q url.Values) Query {
	query := DefaultQuery()

	query.SearchTerm = q.Get("search")

	if f := SortField(q.Get("sort_by")); slices.Contains(ValidSortFields, f) {
		query.SortBy = f
	}

	if o := SortOrder(q.Get("sort_order")); o == SortOrderAsc || o == SortOrderDesc {
		query.SortOrder = o
	}

	query.MinLikes = parseThreshold(q.Get("min_likes"))
	query.MinRetweets = parseThreshold(q.Get("min_retweets"))

	start, startOK := parseRangeBound(q.Get("date_start"), false)
	end, endOK := parseRangeBound(q.Get("date_end"), true)
	if startOK && endOK {
		query.DateRange = DateRange{Start: &start, End: &end}
	}

	if m := MediaFilter(q.Get("media_type")); slices.Contains(ValidMediaFilters, m) {
		query.MediaType = m
	}

	if a := strings.TrimSpace(q.Get("author")); a != "" {
		query.Author = a
	}

	return query
}

// Values encodes the query using the parameter names ParseQuery reads.
func (q Query) Values() url.Values {
	v := url.Values{}

	if q.SearchTerm != "" {
		v.Set("search", q.SearchTerm)
	}
	if q.SortBy != "" {
		v.Set("sort_by", string(q.SortBy))
	}
	if q.SortOrder != "" {
		v.Set("sort_order", string(q.SortOrder))
	}
	if q.MinLikes != nil {
		v.Set("min_likes", strconv.FormatInt(*q.MinLikes, 10))
	}
	if q.MinRetweets != nil {
		v.Set("min_retweets", strconv.FormatInt(*q.MinRetweets, 10))
	}
	if q.DateRange.Active() {
		v.Set("date_start", q.DateRange.Start.Format(time.RFC3339Nano))
		v.Set("date_end", q.DateRange.End.Format(time.RFC3339Nano))
	}
	if q.MediaType != "" {
		v.Set("media_type", string(q.MediaType))
	}
	if q.Author != "" {
		v.Set("author", q.Author)
	}

	return v
}

func parseThreshold(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// parseRangeBound parses a date range bound. A date-only end bound covers
// the whole of that day.
func parseRangeBound(s string, end bool) (time.Time, bool) {
	t, layout, ok := parseDate(s)
	if !ok {
		return time.Time{}, false
	}

	if end && (layout == layoutDateOnly || layout == layoutDayFirst) {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, true
}

package domain

import (
	"cmp"
	"slices"
	"strings"
)

// ComputeView returns the records matching every active filter of q, sorted
// by q's sort key. The result is a new slice; records is never modified.
// Records with equal sort keys keep their relative input order.
func ComputeView(records []Record, q Query) []Record {
	search := strings.ToLower(q.SearchTerm)

	view := make([]Record, 0, len(records))
	for _, r := range records {
		if q.matches(r, search) {
			view = append(view, r)
		}
	}

	SortRecords(view, q.SortBy, q.SortOrder)
	return view
}

// SortRecords stable-sorts records in place. Fields sort descending unless
// order is SortOrderAsc; an empty field sorts by date.
func SortRecords(records []Record, field SortField, order SortOrder) {
	compare := compareFunc(field)
	if order == SortOrderAsc {
		slices.SortStableFunc(records, compare)
		return
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		return compare(b, a)
	})
}

func (q Query) matches(r Record, search string) bool {
	if search != "" && !strings.Contains(strings.ToLower(r.Text), search) {
		return false
	}

	if !matchesMediaFilter(r.MediaType, q.MediaType) {
		return false
	}

	if q.Author != "" && q.Author != AllAuthors && r.AuthorHandle != q.Author {
		return false
	}

	if q.MinLikes != nil && int64(r.NumLike) < *q.MinLikes {
		return false
	}

	if q.MinRetweets != nil && int64(r.NumRetweet) < *q.MinRetweets {
		return false
	}

	if q.DateRange.Active() {
		// Undated records cannot be placed in a range.
		if !r.HasDate {
			return false
		}
		if r.PublishedAt.Before(*q.DateRange.Start) || r.PublishedAt.After(*q.DateRange.End) {
			return false
		}
	}

	return true
}

func matchesMediaFilter(m MediaType, f MediaFilter) bool {
	switch f {
	case MediaFilterText:
		return m == MediaTypeNone
	case MediaFilterImage:
		return m == MediaTypeImage
	case MediaFilterVideo:
		return m == MediaTypeVideo
	default:
		return true
	}
}

// compareFunc returns an ascending comparator for field.
func compareFunc(field SortField) func(a, b Record) int {
	switch field {
	case SortFieldLikes:
		return func(a, b Record) int { return cmp.Compare(a.NumLike, b.NumLike) }
	case SortFieldRetweets:
		return func(a, b Record) int { return cmp.Compare(a.NumRetweet, b.NumRetweet) }
	case SortFieldReplies:
		return func(a, b Record) int { return cmp.Compare(a.NumReply, b.NumReply) }
	case SortFieldViews:
		return func(a, b Record) int { return cmp.Compare(a.NumViews, b.NumViews) }
	default:
		return compareDates
	}
}

// compareDates orders undated records before every dated one.
func compareDates(a, b Record) int {
	switch {
	case !a.HasDate && !b.HasDate:
		return 0
	case !a.HasDate:
		return -1
	case !b.HasDate:
		return 1
	default:
		return a.PublishedAt.Compare(b.PublishedAt)
	}
}

package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type MediaType string

const MediaTypeNone MediaType = "No media"
const MediaTypeImage MediaType = "Image"
const MediaTypeVideo MediaType = "Video"

// Known reports whether m is one of the media types the collector emits.
// Unknown values are kept as-is so filters see exactly what was loaded.
func (m MediaType) Known() bool {
	switch m {
	case MediaTypeNone, MediaTypeImage, MediaTypeVideo:
		return true
	default:
		return false
	}
}

// Record is a single collected tweet. Records are not modified after load.
type Record struct {
	URL           string    `json:"url"`
	Text          string    `json:"text"`
	AuthorHandle  string    `json:"author_handle"`
	AuthorName    string    `json:"author_name"`
	AuthorAvatar  string    `json:"author_avatar,omitempty"`
	Date          string    `json:"date"`
	Lang          string    `json:"lang,omitempty"`
	MediaType     MediaType `json:"media_type"`
	ImagesURLs    []string  `json:"images_urls,omitempty"`
	MediaURLs     []string  `json:"media_urls,omitempty"`
	MentionedURLs []string  `json:"mentioned_urls,omitempty"`
	IsRetweet     bool      `json:"is_retweet,omitempty"`
	NumLike       Count     `json:"num_like"`
	NumRetweet    Count     `json:"num_retweet"`
	NumReply      Count     `json:"num_reply"`
	NumViews      Count     `json:"num_views"`

	// PublishedAt is only meaningful when HasDate is set.
	PublishedAt time.Time `json:"-"`
	HasDate     bool      `json:"-"`
}

func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	*r = Record(p)
	r.SetDate(r.Date)
	return nil
}

// SetDate stores the raw date string and its parsed instant.
func (r *Record) SetDate(s string) {
	r.Date = s
	r.PublishedAt, r.HasDate = ParseDate(s)
}

// PreviewImage returns the first image, falling back to the first media URL.
func (r Record) PreviewImage() string {
	if len(r.ImagesURLs) > 0 {
		return r.ImagesURLs[0]
	}
	if len(r.MediaURLs) > 0 {
		return r.MediaURLs[0]
	}
	return ""
}

// Count is an engagement counter. It decodes leniently: numbers, numeric
// strings, null and anything unreadable all end up as a non-negative value.
type Count int64

func (c *Count) UnmarshalJSON(b []byte) error {
	*c = 0

	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*c = Count(max(n, 0))
		return nil
	}

	// json.Valid rejects the Inf, NaN and hex forms ParseFloat accepts.
	if !json.Valid([]byte(s)) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return nil
	}
	if f >= math.MaxInt64 {
		*c = math.MaxInt64
		return nil
	}

	*c = Count(f)
	return nil
}

const (
	layoutDateOnly  = "2006-01-02"
	layoutDayFirst  = "02/01/2006"
	layoutLocalTime = "2006-01-02T15:04:05"
	layoutSpaced    = "2006-01-02 15:04:05"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	layoutLocalTime,
	layoutSpaced,
	layoutDateOnly,
	layoutDayFirst,
}

// ParseDate parses the date formats found in collected feeds. Layouts
// without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	t, _, ok := parseDate(s)
	return t, ok
}

func parseDate(s string) (time.Time, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}

package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/jbeshir/xlike-feed/internal/command"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

// rssTitleLength is how much of the tweet text is used as the item title.
const rssTitleLength = 80

type RSS struct {
	FeedBaseURL string
	FeedPath    string
	FeedTitle   string
	Browser     command.Command[command.BrowseRecordsRequest, command.BrowseRecordsResponse]
	CacheMaxAge time.Duration
}

func (c RSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := viewStateFromQuery(r.URL.Query())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "unable to parse pagination in query string", "error", err)

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	res, err := c.Browser.Execute(r.Context(), command.BrowseRecordsRequest{State: state})
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to compute tweets for feed", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	link := c.FeedBaseURL + c.FeedPath
	if params := state.Query.Values(); len(params) > 0 {
		link += "?" + params.Encode()
	}

	feed := &feeds.Feed{
		Title:       c.FeedTitle,
		Link:        &feeds.Link{Href: link},
		Description: "Liked tweets matching the current filters",
		Created:     time.Now(),
	}

	for _, rec := range res.Records {
		item := &feeds.Item{
			Id:          rec.URL,
			IsPermaLink: "true",
			Title:       rssItemTitle(rec),
			Link:        &feeds.Link{Href: rec.URL},
			Description: rec.Text,
			Author:      &feeds.Author{Name: rssAuthorName(rec)},
		}
		if rec.HasDate {
			item.Created = rec.PublishedAt
		}
		if preview := rec.PreviewImage(); preview != "" && rec.MediaType == domain.MediaTypeImage {
			item.Enclosure = &feeds.Enclosure{Url: preview, Type: "image/jpeg", Length: "0"}
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

func rssItemTitle(rec domain.Record) string {
	text := []rune(rec.Text)
	if len(text) <= rssTitleLength {
		return string(text)
	}
	return string(text[:rssTitleLength]) + "…"
}

func rssAuthorName(rec domain.Record) string {
	switch {
	case rec.AuthorName != "" && rec.AuthorHandle != "":
		return fmt.Sprintf("%s (%s)", rec.AuthorName, rec.AuthorHandle)
	case rec.AuthorName != "":
		return rec.AuthorName
	default:
		return rec.AuthorHandle
	}
}

package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

type TweetLookup struct {
	Fetcher     datasources.RecordFetcher
	CacheMaxAge time.Duration
}

func (c TweetLookup) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tweetURL := r.URL.Query().Get("url")
	if tweetURL == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	record, ok, err := c.Fetcher.FetchRecordByURL(r.Context(), tweetURL)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch tweet", "error", err, "url", tweetURL)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(record); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write tweet to response", "error", err)
	}
}

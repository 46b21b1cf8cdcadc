package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jbeshir/xlike-feed/internal/command"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

type TweetsList struct {
	Browser     command.Command[command.BrowseRecordsRequest, command.BrowseRecordsResponse]
	CacheMaxAge time.Duration
}

type TweetsListResponse struct {
	Data     []domain.Record    `json:"data"`
	Metadata TweetsListMetadata `json:"metadata"`
}

type TweetsListMetadata struct {
	TotalRows  int                 `json:"total_rows"`
	TotalPages int                 `json:"total_pages"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	Controls   domain.PageControls `json:"controls"`
}

func (c TweetsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
		logger.ErrorContext(ctx, "unable to compute tweet view", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(TweetsListResponse{
		Data: res.Records,
		Metadata: TweetsListMetadata{
			TotalRows:  res.TotalRows,
			TotalPages: res.TotalPages,
			Page:       res.Page,
			PageSize:   res.PageSize,
			Controls:   res.Controls,
		},
	}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write tweets to response", "error", err)
	}
}

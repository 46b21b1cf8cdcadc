package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

const maxTopAuthorsLimit = 100

type AuthorsTop struct {
	Lister      datasources.AuthorLister
	CacheMaxAge time.Duration
}

type AuthorsTopResponse struct {
	Data []domain.AuthorSummary `json:"data"`
}

func (c AuthorsTop) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query())
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "unable to parse limit in query string", "error", err)

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	authors, err := c.Lister.ListTopAuthors(r.Context(), limit)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to list top authors", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(AuthorsTopResponse{Data: authors}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write authors to response", "error", err)
	}
}

func parseLimit(q url.Values) (int, error) {
	if !q.Has("limit") {
		return domain.DefaultTopAuthorsLimit, nil
	}

	limit, err := strconv.ParseInt(q.Get("limit"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unable to parse limit from query: %w", err)
	}
	if limit < 1 {
		return 0, fmt.Errorf("invalid limit value [%d]", limit)
	}
	if limit > maxTopAuthorsLimit {
		return 0, fmt.Errorf("limit [%d] exceeds maximum [%d]", limit, maxTopAuthorsLimit)
	}
	return int(limit), nil
}

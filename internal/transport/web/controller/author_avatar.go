package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

type AuthorAvatar struct {
	Fetcher     datasources.AvatarFetcher
	CacheMaxAge time.Duration
}

type AuthorAvatarResponse struct {
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
}

func (c AuthorAvatar) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]

	avatar, ok, err := c.Fetcher.FetchAvatar(r.Context(), handle)
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch avatar", "error", err, "handle", handle)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(AuthorAvatarResponse{
		Handle:    handle,
		AvatarURL: avatar,
	}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write avatar to response", "error", err)
	}
}

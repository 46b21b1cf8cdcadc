package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jbeshir/xlike-feed/internal/command"
	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/transport/web/controller"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func MakeRouter(
	logger *slog.Logger,
	dataset datasources.DatasetRepository,
	browser command.Command[command.BrowseRecordsRequest, command.BrowseRecordsResponse],
	rssFeedBaseURL, rssFeedTitle string,
	cacheMaxAge time.Duration,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(requestLoggerMiddleware(logger))
	r.Use(metricsMiddleware)

	r.Handle("/v1/tweets", controller.TweetsList{
		Browser:     browser,
		CacheMaxAge: cacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/tweets/lookup", controller.TweetLookup{
		Fetcher:     dataset,
		CacheMaxAge: cacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/authors/top", controller.AuthorsTop{
		Lister:      dataset,
		CacheMaxAge: cacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/authors/{handle}/avatar", controller.AuthorAvatar{
		Fetcher:     dataset,
		CacheMaxAge: cacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	rssFeeds := []controller.RSS{
		{
			FeedBaseURL: rssFeedBaseURL,
			FeedPath:    "/rss",
			FeedTitle:   rssFeedTitle,
			Browser:     browser,
			CacheMaxAge: cacheMaxAge,
		},
	}

	for _, feed := range rssFeeds {
		r.Handle(feed.FeedPath, feed).Methods(http.MethodGet, http.MethodOptions)
	}

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r, nil
}

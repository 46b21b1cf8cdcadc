package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jbeshir/xlike-feed/internal/command"
	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/stretchr/testify/mock"
)

func testContext() func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.DiscardHandler))
		return r.WithContext(ctx)
	}
}

type mockBrowser struct {
	mock.Mock
}

func (m *mockBrowser) Execute(ctx context.Context, req command.BrowseRecordsRequest) (command.BrowseRecordsResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(command.BrowseRecordsResponse)
	return res, args.Error(1)
}

type mockRecordFetcher struct {
	mock.Mock
}

func (m *mockRecordFetcher) FetchRecordByURL(ctx context.Context, url string) (domain.Record, bool, error) {
	args := m.Called(ctx, url)
	rec, _ := args.Get(0).(domain.Record)
	return rec, args.Bool(1), args.Error(2)
}

type mockAuthorLister struct {
	mock.Mock
}

func (m *mockAuthorLister) ListTopAuthors(ctx context.Context, limit int) ([]domain.AuthorSummary, error) {
	args := m.Called(ctx, limit)
	authors, _ := args.Get(0).([]domain.AuthorSummary)
	return authors, args.Error(1)
}

type mockAvatarFetcher struct {
	mock.Mock
}

func (m *mockAvatarFetcher) FetchAvatar(ctx context.Context, handle string) (string, bool, error) {
	args := m.Called(ctx, handle)
	return args.String(0), args.Bool(1), args.Error(2)
}

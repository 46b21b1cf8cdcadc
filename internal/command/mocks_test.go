package command

import (
	"context"
	"log/slog"

	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/stretchr/testify/mock"
)

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

type mockRecordSource struct {
	mock.Mock
}

func (m *mockRecordSource) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]domain.Record)
	return records, args.Error(1)
}

type mockRecordSink struct {
	mock.Mock
}

func (m *mockRecordSink) SaveRecords(ctx context.Context, records []domain.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

type mockAvatarSource struct {
	mock.Mock
}

func (m *mockAvatarSource) LoadAvatars(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	avatars, _ := args.Get(0).(map[string]string)
	return avatars, args.Error(1)
}

type mockRecordLister struct {
	mock.Mock
}

func (m *mockRecordLister) ListRecords(ctx context.Context) ([]domain.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]domain.Record)
	return records, args.Error(1)
}

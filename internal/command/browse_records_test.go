package command

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jbeshir/xlike-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func numberedRecords(n int) []domain.Record {
	records := make([]domain.Record, n)
	for i := range records {
		records[i] = domain.Record{
			URL:     fmt.Sprintf("u%03d", i),
			Text:    fmt.Sprintf("tweet number %d", i),
			NumLike: domain.Count(i),
		}
		records[i].SetDate(fmt.Sprintf("2024-01-01T00:%02d:%02dZ", i/60, i%60))
	}
	return records
}

func TestBrowseRecords_Execute(t *testing.T) {
	cases := []struct {
		name         string
		state        func() domain.ViewState
		wantRows     int
		wantPages    int
		wantPageLen  int
		wantFirstURL string
		wantVisible  bool
		wantPageSize int
	}{
		{
			name:         "default_state",
			state:        domain.NewViewState,
			wantRows:     125,
			wantPages:    3,
			wantPageLen:  50,
			wantFirstURL: "u124",
			wantVisible:  true,
			wantPageSize: 50,
		},
		{
			name: "last_partial_page",
			state: func() domain.ViewState {
				return domain.NewViewState().WithPage(3)
			},
			wantRows:     125,
			wantPages:    3,
			wantPageLen:  25,
			wantFirstURL: "u024",
			wantVisible:  true,
			wantPageSize: 50,
		},
		{
			name: "filtered_single_page",
			state: func() domain.ViewState {
				q := domain.DefaultQuery()
				q.SearchTerm = "NUMBER 12"
				return domain.NewViewState().WithQuery(q)
			},
			wantRows:     6,
			wantPages:    1,
			wantPageLen:  6,
			wantFirstURL: "u124",
			wantPageSize: 50,
		},
		{
			name: "no_matches",
			state: func() domain.ViewState {
				q := domain.DefaultQuery()
				q.SearchTerm = "absent"
				return domain.NewViewState().WithQuery(q)
			},
			wantRows:     0,
			wantPages:    0,
			wantPageLen:  0,
			wantPageSize: 50,
		},
		{
			name: "page_beyond_end",
			state: func() domain.ViewState {
				return domain.NewViewState().WithPage(9)
			},
			wantRows:     125,
			wantPages:    3,
			wantPageLen:  0,
			wantVisible:  true,
			wantPageSize: 50,
		},
		{
			name: "zero_page_size_uses_default",
			state: func() domain.ViewState {
				s := domain.NewViewState()
				s.PageSize = 0
				return s
			},
			wantRows:     125,
			wantPages:    3,
			wantPageLen:  50,
			wantFirstURL: "u124",
			wantVisible:  true,
			wantPageSize: 50,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lister := &mockRecordLister{}
			lister.On("ListRecords", mock.Anything).Return(numberedRecords(125), nil)

			res, err := NewBrowseRecords(lister).Execute(testContext(), BrowseRecordsRequest{State: tc.state()})
			require.NoError(t, err)

			assert.Equal(t, tc.wantRows, res.TotalRows)
			assert.Equal(t, tc.wantPages, res.TotalPages)
			assert.Equal(t, tc.wantPageSize, res.PageSize)
			assert.Equal(t, tc.wantVisible, res.Controls.Visible)
			assert.NotNil(t, res.Records)
			require.Len(t, res.Records, tc.wantPageLen)
			if tc.wantPageLen > 0 {
				assert.Equal(t, tc.wantFirstURL, res.Records[0].URL)
			}
		})
	}
}

func TestBrowseRecords_ListError(t *testing.T) {
	lister := &mockRecordLister{}
	lister.On("ListRecords", mock.Anything).Return(nil, errors.New("backend down"))

	_, err := NewBrowseRecords(lister).Execute(testContext(), BrowseRecordsRequest{State: domain.NewViewState()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing records")
}

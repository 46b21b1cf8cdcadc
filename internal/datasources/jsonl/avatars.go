package jsonl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jbeshir/xlike-feed/internal/datasources"
	"github.com/jbeshir/xlike-feed/internal/domain"
)

var _ datasources.AvatarSource = (*AvatarSource)(nil)

// AvatarSource reads avatar overrides written by the avatar collector, one
// {"author_handle", "avatar_url"} object per line.
type AvatarSource struct {
	Location   string
	HTTPClient *http.Client
}

func NewAvatarSource(location string) *AvatarSource {
	return &AvatarSource{
		Location: location,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type avatarEntry struct {
	AuthorHandle string `json:"author_handle"`
	AvatarURL    string `json:"avatar_url"`
}

// LoadAvatars skips entries that point at the platform's default avatar.
func (s *AvatarSource) LoadAvatars(ctx context.Context) (map[string]string, error) {
	body, err := open(ctx, s.HTTPClient, s.Location)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	avatars := make(map[string]string)
	_, err = decodeLines(ctx, body, func(line []byte) error {
		var entry avatarEntry
		if err := unmarshalObject(line, &entry); err != nil {
			return err
		}
		if entry.AuthorHandle != "" && entry.AvatarURL != "" && entry.AvatarURL != domain.DefaultAvatarURL {
			avatars[entry.AuthorHandle] = entry.AvatarURL
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decoding avatars from [%s]: %w", s.Location, err)
	}

	return avatars, nil
}

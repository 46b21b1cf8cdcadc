package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const tweetURIScheme = "tweet://"

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			tweetURIScheme+"{url}",
			"Individual liked tweet",
			mcp.WithTemplateDescription(
				"Fetch a specific liked tweet by its URL (query-escaped). Returns the "+
					"text, author, media and engagement counts."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleTweetResource,
	)
}

func (s *Server) handleTweetResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {
	tweetURL, err := tweetURLFromURI(request.Params.URI)
	if err != nil {
		return nil, err
	}

	tweet, err := s.client.GetTweet(ctx, tweetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tweet %s: %w", tweetURL, err)
	}

	data, err := json.MarshalIndent(tweet, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tweet: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func tweetURLFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, tweetURIScheme) {
		return "", fmt.Errorf("invalid tweet URI format: %s", uri)
	}

	tweetURL, err := url.QueryUnescape(strings.TrimPrefix(uri, tweetURIScheme))
	if err != nil {
		return "", fmt.Errorf("invalid escaping in tweet URI %s: %w", uri, err)
	}
	if tweetURL == "" {
		return "", fmt.Errorf("missing url in URI: %s", uri)
	}
	return tweetURL, nil
}

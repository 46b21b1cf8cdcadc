package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jbeshir/xlike-feed/cmd/mcp/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const maxTopAuthors = 100

func (s *Server) handleSearchTweets(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	filters := parseSearchFilters(request.GetArguments())

	res, err := s.client.SearchTweets(ctx, filters)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to search tweets: %v", err)), nil
	}

	return formatTweetsResult(res)
}

func parseSearchFilters(args map[string]any) client.SearchFilters {
	var filters client.SearchFilters

	filters.Search = stringArg(args, "search")
	filters.SortBy = stringArg(args, "sort_by")
	filters.SortOrder = stringArg(args, "sort_order")
	filters.DateStart = stringArg(args, "date_start")
	filters.DateEnd = stringArg(args, "date_end")
	filters.MediaType = stringArg(args, "media_type")
	filters.Author = stringArg(args, "author")

	if v, ok := args["min_likes"].(float64); ok && v >= 0 {
		n := int64(v)
		filters.MinLikes = &n
	}
	if v, ok := args["min_retweets"].(float64); ok && v >= 0 {
		n := int64(v)
		filters.MinRetweets = &n
	}

	filters.Page, filters.PageSize = parsePagination(args)
	return filters
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func parsePagination(args map[string]any) (page, pageSize int) {
	page = 1
	pageSize = 50

	if p, ok := args["page"].(float64); ok && p > 0 {
		page = int(p)
	}
	if ps, ok := args["page_size"].(float64); ok && ps > 0 {
		pageSize = int(ps)
	}
	return page, pageSize
}

func (s *Server) handleGetTweet(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	tweetURL := stringArg(request.GetArguments(), "url")
	if tweetURL == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	tweet, err := s.client.GetTweet(ctx, tweetURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get tweet: %v", err)), nil
	}

	return formatJSONResult(tweet)
}

func (s *Server) handleTopAuthors(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	limit := 20
	if l, ok := request.GetArguments()["limit"].(float64); ok && l > 0 {
		limit = min(int(l), maxTopAuthors)
	}

	authors, err := s.client.TopAuthors(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list top authors: %v", err)), nil
	}
	if len(authors) == 0 {
		return mcp.NewToolResultText("No authors found."), nil
	}

	return formatJSONResult(authors)
}

func formatTweetsResult(res *client.TweetsResponse) (*mcp.CallToolResult, error) {
	if len(res.Data) == 0 {
		return mcp.NewToolResultText("No tweets found."), nil
	}

	data, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format tweets: %v", err)), nil
	}

	msg := fmt.Sprintf("Page %d of %d (%d matching tweet(s)):\n\n%s",
		res.Metadata.Page, res.Metadata.TotalPages, res.Metadata.TotalRows, string(data))
	return mcp.NewToolResultText(msg), nil
}

func formatJSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

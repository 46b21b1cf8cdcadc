// Package server provides the MCP server implementation.
package server

import (
	"github.com/jbeshir/xlike-feed/cmd/mcp/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the liked tweets feed.
type Server struct {
	client    *client.Client
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server with the given API client.
func NewServer(apiClient *client.Client) *Server {
	s := &Server{
		client: apiClient,
	}

	s.mcpServer = server.NewMCPServer(
		"xlike-feed",
		"1.0.0",
		server.WithResourceCapabilities(true, false),
		server.WithLogging(),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("search_tweets",
		mcp.WithDescription(
			"Search liked tweets by text, author, media type, engagement or date range. "+
				"Returns one page of matching tweets, newest first by default."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive substring to match in the tweet text"),
		),
		mcp.WithString("sort_by",
			mcp.Description("Field to sort by"),
			mcp.Enum("date", "likes", "retweets", "replies", "views"),
		),
		mcp.WithString("sort_order",
			mcp.Description("Sort direction (default: desc)"),
			mcp.Enum("desc", "asc"),
		),
		mcp.WithNumber("min_likes",
			mcp.Description("Only include tweets with at least this many likes"),
		),
		mcp.WithNumber("min_retweets",
			mcp.Description("Only include tweets with at least this many retweets"),
		),
		mcp.WithString("date_start",
			mcp.Description("Start of the date range (YYYY-MM-DD or RFC3339); needs date_end too"),
		),
		mcp.WithString("date_end",
			mcp.Description("End of the date range, inclusive (YYYY-MM-DD or RFC3339)"),
		),
		mcp.WithString("media_type",
			mcp.Description("Restrict to a kind of media"),
			mcp.Enum("all", "text", "image", "video"),
		),
		mcp.WithString("author",
			mcp.Description("Exact author handle, e.g. '@someone'"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (1-indexed, default: 1)"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Tweets per page: 50, 100, 200 or 500 (default: 50)"),
		),
	), s.handleSearchTweets)

	s.mcpServer.AddTool(mcp.NewTool("get_tweet",
		mcp.WithDescription("Get full details of a specific liked tweet by its URL."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The tweet URL, e.g. 'https://x.com/someone/status/123'"),
		),
	), s.handleGetTweet)

	s.mcpServer.AddTool(mcp.NewTool("top_authors",
		mcp.WithDescription("List the authors with the most liked tweets across the whole dataset."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of authors to return (default: 20, max: 100)"),
		),
	), s.handleTopAuthors)
}

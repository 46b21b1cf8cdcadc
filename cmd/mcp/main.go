// Package main provides the entry point for the liked tweets feed MCP server.
//
// The server lets AI agents search and read the liked tweets dataset through
// the feed's HTTP API.
//
// Configuration:
//
//	XLIKE_FEED_API_URL - Base URL of the API (default: http://localhost:8080)
package main

import (
	"log"
	"os"

	"github.com/jbeshir/xlike-feed/cmd/mcp/client"
	"github.com/jbeshir/xlike-feed/cmd/mcp/server"
)

func main() {
	apiURL := os.Getenv("XLIKE_FEED_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	srv := server.NewServer(client.NewClient(apiURL))

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}

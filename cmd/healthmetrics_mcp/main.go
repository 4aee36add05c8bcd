// Package main runs the health calculators MCP server over stdio (for local Cursor use).
// The same MCP server is also mounted on the main backend at /mcp over HTTP,
// so you can use either: stdio (this cmd) or the backend URL (no extra deploy).
package main

import (
	"context"
	"flag"
	"log"

	"github.com/2beens/healthmetrics/internal/config"
	healthmcp "github.com/2beens/healthmetrics/internal/mcp"
	"github.com/2beens/healthmetrics/internal/tips"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	tipsManager, err := tips.NewManagerFromFile(cfg.TipsCsvPath)
	if err != nil {
		log.Fatalf("tips manager: %v", err)
	}

	server := healthmcp.NewServer(tipsManager)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}

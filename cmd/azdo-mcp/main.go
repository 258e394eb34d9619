// azdo-mcp: Azure DevOps MCP Server
//
// An MCP server that gives AI coding tools (Claude Code, Cursor, VS Code
// Copilot, ...) safe access to Azure DevOps wikis, work items, and
// repositories over stdio.
//
// Usage:
//
//	azdo-mcp serve     # Start MCP server (stdio transport)
//	azdo-mcp version   # Print the version
//
// Configuration is taken from the environment:
//
//	AZURE_DEVOPS_ORG_URL   https://dev.azure.com/<org>
//	AZURE_DEVOPS_PAT       personal access token
//	AZURE_DEVOPS_PROJECT   optional default project
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	azdoserver "github.com/dromward/azdo-mcp/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("azdo-mcp v%s\n", azdoserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	s, err := azdoserver.New(ctx)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// stdio transport: MCP traffic on stdout, logs on stderr.
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Println(`azdo-mcp - Azure DevOps MCP Server

Usage:
  azdo-mcp serve      Start the MCP server (stdio transport)
  azdo-mcp version    Print the version
  azdo-mcp help       Show this help

Environment:
  AZURE_DEVOPS_ORG_URL   Organization URL, e.g. https://dev.azure.com/fabrikam
  AZURE_DEVOPS_PAT       Personal access token with wiki/work item/code scopes
  AZURE_DEVOPS_PROJECT   Optional default project`)
}

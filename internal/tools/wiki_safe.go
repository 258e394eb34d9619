package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dromward/azdo-mcp/internal/pages"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── SafeUpdateTool ─────────────────────────────────────────────────────────

// SafeUpdateTool handles update_wiki_page_safe: the conflict-retrying update.
type SafeUpdateTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewSafeUpdateTool creates a SafeUpdateTool.
func NewSafeUpdateTool(svc *pages.Service, scopes *ScopeResolver) *SafeUpdateTool {
	return &SafeUpdateTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for update_wiki_page_safe.
func (t *SafeUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("update_wiki_page_safe",
		withScopeArgs(
			mcp.WithDescription(
				"Overwrite a wiki page with automatic retry on version conflicts. Each attempt "+
					"re-reads the page for a fresh version token before writing.",
			),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Page path"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("New markdown content"),
			),
			mcp.WithNumber("max_retries",
				mcp.Description(fmt.Sprintf("Total attempt budget (default: %d)", pages.DefaultMaxRetries)),
			),
		)...,
	)
}

// Handle processes the update_wiki_page_safe tool call.
func (t *SafeUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	content := req.GetString("content", "")
	maxRetries := intArg(req, "max_retries", pages.DefaultMaxRetries)

	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	page, err := t.svc.SafeUpdate(ctx, scope, path, content, maxRetries)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(page), nil
}

// ─── SmartCreateTool ────────────────────────────────────────────────────────

// SmartCreateTool handles create_or_update_wiki_page_smart.
type SmartCreateTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewSmartCreateTool creates a SmartCreateTool.
func NewSmartCreateTool(svc *pages.Service, scopes *ScopeResolver) *SmartCreateTool {
	return &SmartCreateTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for create_or_update_wiki_page_smart.
func (t *SmartCreateTool) Definition() mcp.Tool {
	return mcp.NewTool("create_or_update_wiki_page_smart",
		withScopeArgs(
			mcp.WithDescription(
				"Make a wiki page exist with the given content, creating it if absent and "+
					"updating it (conflict-safely) if present. Safe to call repeatedly.",
			),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Page path"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("Markdown content"),
			),
		)...,
	)
}

// Handle processes the create_or_update_wiki_page_smart tool call.
func (t *SmartCreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	content := req.GetString("content", "")

	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	page, err := t.svc.CreateOrUpdate(ctx, scope, path, content)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(page), nil
}

// ─── BatchCreateTool ────────────────────────────────────────────────────────

// BatchCreateTool handles create_wiki_pages_batch.
type BatchCreateTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewBatchCreateTool creates a BatchCreateTool.
func NewBatchCreateTool(svc *pages.Service, scopes *ScopeResolver) *BatchCreateTool {
	return &BatchCreateTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for create_wiki_pages_batch.
func (t *BatchCreateTool) Definition() mcp.Tool {
	return mcp.NewTool("create_wiki_pages_batch",
		withScopeArgs(
			mcp.WithDescription(
				"Create or update several wiki pages in one call. Entries are processed "+
					"independently in order; one failure never aborts the rest. Returns a "+
					"per-entry success/failure report.",
			),
			mcp.WithString("pages_data",
				mcp.Required(),
				mcp.Description(`JSON array of pages: [{"path": "/Docs/A", "content": "..."}, ...]`),
			),
		)...,
	)
}

// Handle processes the create_wiki_pages_batch tool call.
func (t *BatchCreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("pages_data", "")
	if raw == "" {
		return mcp.NewToolResultError("'pages_data' is required"), nil
	}
	var entries []pages.BatchEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'pages_data' is not a valid JSON page array: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultError("'pages_data' contains no pages"), nil
	}
	for i, e := range entries {
		if e.Path == "" {
			return mcp.NewToolResultError(fmt.Sprintf("pages_data[%d] has no 'path'", i)), nil
		}
	}

	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}

	results := t.svc.CreateBatch(ctx, scope, entries)
	succeeded := 0
	for _, r := range results {
		if r.Status == "success" {
			succeeded++
		}
	}
	return jsonResult(map[string]any{
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
		"results":   results,
	}), nil
}

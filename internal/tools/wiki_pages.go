package tools

import (
	"context"

	"github.com/dromward/azdo-mcp/internal/pages"
	"github.com/mark3labs/mcp-go/mcp"
)

// Shared schema fragments: every page tool takes the page path plus the
// optional project (defaults to the active context) and wiki (defaults to
// the project's only wiki).
func withScopeArgs(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("project",
			mcp.Description("Project name; defaults to the active project context"),
		),
		mcp.WithString("wiki",
			mcp.Description("Wiki name or ID; defaults to the project's only wiki"),
		),
	)
}

// ─── CreatePageTool ─────────────────────────────────────────────────────────

// CreatePageTool handles create_wiki_page.
type CreatePageTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewCreatePageTool creates a CreatePageTool.
func NewCreatePageTool(svc *pages.Service, scopes *ScopeResolver) *CreatePageTool {
	return &CreatePageTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for create_wiki_page.
func (t *CreatePageTool) Definition() mcp.Tool {
	return mcp.NewTool("create_wiki_page",
		withScopeArgs(
			mcp.WithDescription(
				"Create a new wiki page at the given path. Fails if a page already exists there; "+
					"use create_or_update_wiki_page_smart when you don't know.",
			),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Page path, e.g. /Docs/Getting-Started"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("Markdown content of the page"),
			),
		)...,
	)
}

// Handle processes the create_wiki_page tool call.
func (t *CreatePageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	content := req.GetString("content", "")

	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	page, err := t.svc.Create(ctx, scope, path, content)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(page), nil
}

// ─── GetPageTool ────────────────────────────────────────────────────────────

// GetPageTool handles get_wiki_page.
type GetPageTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewGetPageTool creates a GetPageTool.
func NewGetPageTool(svc *pages.Service, scopes *ScopeResolver) *GetPageTool {
	return &GetPageTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for get_wiki_page.
func (t *GetPageTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wiki_page",
		withScopeArgs(
			mcp.WithDescription("Get a wiki page by path, including its content and version token."),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Page path"),
			),
		)...,
	)
}

// Handle processes the get_wiki_page tool call.
func (t *GetPageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	page, err := t.svc.Get(ctx, scope, path)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(page), nil
}

// ─── UpdatePageTool ─────────────────────────────────────────────────────────

// UpdatePageTool handles update_wiki_page: a plain read-then-write that
// surfaces concurrent edits as conflicts.
type UpdatePageTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewUpdatePageTool creates an UpdatePageTool.
func NewUpdatePageTool(svc *pages.Service, scopes *ScopeResolver) *UpdatePageTool {
	return &UpdatePageTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for update_wiki_page.
func (t *UpdatePageTool) Definition() mcp.Tool {
	return mcp.NewTool("update_wiki_page",
		withScopeArgs(
			mcp.WithDescription(
				"Overwrite an existing wiki page. A concurrent edit fails with a version conflict; "+
					"use update_wiki_page_safe for automatic retry.",
			),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Page path"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("New markdown content"),
			),
		)...,
	)
}

// Handle processes the update_wiki_page tool call.
func (t *UpdatePageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	content := req.GetString("content", "")

	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	page, err := t.svc.Update(ctx, scope, path, content)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(page), nil
}

// ─── DeletePageTool ─────────────────────────────────────────────────────────

// DeletePageTool handles delete_wiki_page.
type DeletePageTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewDeletePageTool creates a DeletePageTool.
func NewDeletePageTool(svc *pages.Service, scopes *ScopeResolver) *DeletePageTool {
	return &DeletePageTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for delete_wiki_page.
func (t *DeletePageTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_wiki_page",
		withScopeArgs(
			mcp.WithDescription("Delete a wiki page by path."),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Page path to delete"),
			),
		)...,
	)
}

// Handle processes the delete_wiki_page tool call.
func (t *DeletePageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	if err := t.svc.Delete(ctx, scope, path); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText("Deleted " + path), nil
}

// ─── ListPagesTool ──────────────────────────────────────────────────────────

// ListPagesTool handles list_wiki_pages.
type ListPagesTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewListPagesTool creates a ListPagesTool.
func NewListPagesTool(svc *pages.Service, scopes *ScopeResolver) *ListPagesTool {
	return &ListPagesTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for list_wiki_pages.
func (t *ListPagesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_wiki_pages",
		withScopeArgs(
			mcp.WithDescription("List every page in a wiki: path, URL, and last activity."),
		)...,
	)
}

// Handle processes the list_wiki_pages tool call.
func (t *ListPagesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	infos, err := t.svc.List(ctx, scope)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(infos), nil
}

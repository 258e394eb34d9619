package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/dromward/azdo-mcp/internal/pages"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── SearchPagesTool ────────────────────────────────────────────────────────

// SearchPagesTool handles search_wiki_pages.
type SearchPagesTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewSearchPagesTool creates a SearchPagesTool.
func NewSearchPagesTool(svc *pages.Service, scopes *ScopeResolver) *SearchPagesTool {
	return &SearchPagesTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for search_wiki_pages.
func (t *SearchPagesTool) Definition() mcp.Tool {
	return mcp.NewTool("search_wiki_pages",
		withScopeArgs(
			mcp.WithDescription(
				"Search wiki pages by title and content. Returns matching pages with a short "+
					"content preview around the first match.",
			),
			mcp.WithString("search_term",
				mcp.Required(),
				mcp.Description("Text to look for (case-insensitive)"),
			),
		)...,
	)
}

// Handle processes the search_wiki_pages tool call.
func (t *SearchPagesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term := req.GetString("search_term", "")
	if term == "" {
		return mcp.NewToolResultError("'search_term' is required"), nil
	}
	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	hits, err := t.svc.Search(ctx, scope, term)
	if err != nil {
		return toolError(err), nil
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No pages in %s match %q.", scope, term)), nil
	}
	return jsonResult(hits), nil
}

// ─── PageTreeTool ───────────────────────────────────────────────────────────

// PageTreeTool handles get_wiki_page_tree.
type PageTreeTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewPageTreeTool creates a PageTreeTool.
func NewPageTreeTool(svc *pages.Service, scopes *ScopeResolver) *PageTreeTool {
	return &PageTreeTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for get_wiki_page_tree.
func (t *PageTreeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wiki_page_tree",
		withScopeArgs(
			mcp.WithDescription(
				"Return the wiki's pages as a nested tree keyed by path segment. Intermediate "+
					"nodes that are not pages themselves carry no page info.",
			),
		)...,
	)
}

// Handle processes the get_wiki_page_tree tool call.
func (t *PageTreeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	tree, err := t.svc.PageTree(ctx, scope)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(tree), nil
}

// ─── PageByTitleTool ────────────────────────────────────────────────────────

// PageByTitleTool handles get_wiki_page_by_title.
type PageByTitleTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewPageByTitleTool creates a PageByTitleTool.
func NewPageByTitleTool(svc *pages.Service, scopes *ScopeResolver) *PageByTitleTool {
	return &PageByTitleTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for get_wiki_page_by_title.
func (t *PageByTitleTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wiki_page_by_title",
		withScopeArgs(
			mcp.WithDescription(
				"Fetch a wiki page by its human title instead of its path. Exact title matches "+
					"win over substring matches; a miss reports the closest candidates.",
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Page title, e.g. \"API Guide\""),
			),
		)...,
	)
}

// Handle processes the get_wiki_page_by_title tool call.
func (t *PageByTitleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	page, err := t.svc.FindByTitle(ctx, scope, title)
	if err != nil {
		var miss *pages.TitleNotFoundError
		if errors.As(err, &miss) {
			return jsonResult(map[string]any{
				"found":       false,
				"title":       miss.Title,
				"suggestions": miss.Suggestions,
			}), nil
		}
		return toolError(err), nil
	}
	return jsonResult(page), nil
}

// ─── SuggestionsTool ────────────────────────────────────────────────────────

// SuggestionsTool handles get_wiki_page_suggestions.
type SuggestionsTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewSuggestionsTool creates a SuggestionsTool.
func NewSuggestionsTool(svc *pages.Service, scopes *ScopeResolver) *SuggestionsTool {
	return &SuggestionsTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for get_wiki_page_suggestions.
func (t *SuggestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wiki_page_suggestions",
		withScopeArgs(
			mcp.WithDescription(
				"Suggest wiki pages whose titles match a partial input, ranked by match score "+
					"(exact title 100, substring scored by coverage).",
			),
			mcp.WithString("partial_input",
				mcp.Required(),
				mcp.Description("Partial page title"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum suggestions to return (default: 10)"),
			),
		)...,
	)
}

// Handle processes the get_wiki_page_suggestions tool call.
func (t *SuggestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	partial := req.GetString("partial_input", "")
	if partial == "" {
		return mcp.NewToolResultError("'partial_input' is required"), nil
	}
	limit := intArg(req, "limit", 10)
	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	suggestions, err := t.svc.Suggest(ctx, scope, partial, limit)
	if err != nil {
		return toolError(err), nil
	}
	if len(suggestions) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No page titles in %s match %q.", scope, partial)), nil
	}
	return jsonResult(suggestions), nil
}

// ─── RecentPagesTool ────────────────────────────────────────────────────────

// RecentPagesTool handles get_recent_wiki_pages.
type RecentPagesTool struct {
	svc    *pages.Service
	scopes *ScopeResolver
}

// NewRecentPagesTool creates a RecentPagesTool.
func NewRecentPagesTool(svc *pages.Service, scopes *ScopeResolver) *RecentPagesTool {
	return &RecentPagesTool{svc: svc, scopes: scopes}
}

// Definition returns the MCP tool definition for get_recent_wiki_pages.
func (t *RecentPagesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_recent_wiki_pages",
		withScopeArgs(
			mcp.WithDescription(
				"List wiki pages ordered by most recent activity. Pages without recorded "+
					"activity sort last.",
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum pages to return (default: 10)"),
			),
		)...,
	)
}

// Handle processes the get_recent_wiki_pages tool call.
func (t *RecentPagesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", 10)
	scope, err := t.scopes.Resolve(ctx, req.GetString("project", ""), req.GetString("wiki", ""))
	if err != nil {
		return toolError(err), nil
	}
	recent, err := t.svc.Recent(ctx, scope, limit)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(recent), nil
}

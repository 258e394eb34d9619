package tools

import (
	"context"

	"github.com/dromward/azdo-mcp/internal/config"
	"github.com/dromward/azdo-mcp/internal/org"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── ListWikisTool ──────────────────────────────────────────────────────────

// ListWikisTool handles get_wikis.
type ListWikisTool struct {
	wikis    WikiDirectory
	projects *config.ProjectContext
}

// NewListWikisTool creates a ListWikisTool.
func NewListWikisTool(wikis WikiDirectory, projects *config.ProjectContext) *ListWikisTool {
	return &ListWikisTool{wikis: wikis, projects: projects}
}

// Definition returns the MCP tool definition for get_wikis.
func (t *ListWikisTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wikis",
		mcp.WithDescription("List the wikis in a project."),
		mcp.WithString("project",
			mcp.Description("Project name; defaults to the active project context"),
		),
	)
}

// Handle processes the get_wikis tool call.
func (t *ListWikisTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := t.projects.Resolve(req.GetString("project", ""))
	if err != nil {
		return toolError(err), nil
	}
	wikis, err := t.wikis.ListWikis(ctx, project)
	if err != nil {
		return toolError(err), nil
	}
	if len(wikis) == 0 {
		return mcp.NewToolResultText("Project " + project + " has no wikis. Use create_wiki to add one."), nil
	}
	return jsonResult(wikis), nil
}

// ─── CreateWikiTool ─────────────────────────────────────────────────────────

// CreateWikiTool handles create_wiki.
type CreateWikiTool struct {
	wikis    WikiDirectory
	projects *config.ProjectContext
}

// NewCreateWikiTool creates a CreateWikiTool.
func NewCreateWikiTool(wikis WikiDirectory, projects *config.ProjectContext) *CreateWikiTool {
	return &CreateWikiTool{wikis: wikis, projects: projects}
}

// Definition returns the MCP tool definition for create_wiki.
func (t *CreateWikiTool) Definition() mcp.Tool {
	return mcp.NewTool("create_wiki",
		mcp.WithDescription("Create a new project wiki."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name for the new wiki"),
		),
		mcp.WithString("project",
			mcp.Description("Project name; defaults to the active project context"),
		),
	)
}

// Handle processes the create_wiki tool call.
func (t *CreateWikiTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	project, err := t.projects.Resolve(req.GetString("project", ""))
	if err != nil {
		return toolError(err), nil
	}
	wiki, err := t.wikis.CreateWiki(ctx, project, name)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(wiki), nil
}

// ─── FindWikiTool ───────────────────────────────────────────────────────────

// FindWikiTool handles find_wiki_by_name.
type FindWikiTool struct {
	agg *org.Aggregator
}

// NewFindWikiTool creates a FindWikiTool.
func NewFindWikiTool(agg *org.Aggregator) *FindWikiTool {
	return &FindWikiTool{agg: agg}
}

// Definition returns the MCP tool definition for find_wiki_by_name.
func (t *FindWikiTool) Definition() mcp.Tool {
	return mcp.NewTool("find_wiki_by_name",
		mcp.WithDescription(
			"Find wikis across every project in the organization whose name contains the "+
				"given text (case-insensitive). Projects that fail to answer are reported "+
				"alongside the matches.",
		),
		mcp.WithString("partial_name",
			mcp.Required(),
			mcp.Description("Full or partial wiki name"),
		),
	)
}

// Handle processes the find_wiki_by_name tool call.
func (t *FindWikiTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	partial := req.GetString("partial_name", "")
	if partial == "" {
		return mcp.NewToolResultError("'partial_name' is required"), nil
	}
	list, err := t.agg.FindWikiByName(ctx, partial)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(list), nil
}

// ─── AllWikisTool ───────────────────────────────────────────────────────────

// AllWikisTool handles list_all_wikis_in_organization.
type AllWikisTool struct {
	agg *org.Aggregator
}

// NewAllWikisTool creates an AllWikisTool.
func NewAllWikisTool(agg *org.Aggregator) *AllWikisTool {
	return &AllWikisTool{agg: agg}
}

// Definition returns the MCP tool definition for list_all_wikis_in_organization.
func (t *AllWikisTool) Definition() mcp.Tool {
	return mcp.NewTool("list_all_wikis_in_organization",
		mcp.WithDescription(
			"List every wiki in every project of the organization. Projects are queried "+
				"concurrently; per-project failures are reported without hiding the rest.",
		),
	)
}

// Handle processes the list_all_wikis_in_organization tool call.
func (t *AllWikisTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := t.agg.ListAllWikis(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(list), nil
}

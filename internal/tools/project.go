package tools

import (
	"context"

	"github.com/dromward/azdo-mcp/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── ListProjectsTool ───────────────────────────────────────────────────────

// ListProjectsTool handles list_projects.
type ListProjectsTool struct {
	projects ProjectLister
}

// NewListProjectsTool creates a ListProjectsTool.
func NewListProjectsTool(projects ProjectLister) *ListProjectsTool {
	return &ListProjectsTool{projects: projects}
}

// Definition returns the MCP tool definition for list_projects.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List every project in the organization."),
	)
}

// Handle processes the list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.projects.ListProjects(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(projects), nil
}

// ─── SetProjectTool ─────────────────────────────────────────────────────────

// SetProjectTool handles set_project_context.
type SetProjectTool struct {
	projects *config.ProjectContext
}

// NewSetProjectTool creates a SetProjectTool.
func NewSetProjectTool(projects *config.ProjectContext) *SetProjectTool {
	return &SetProjectTool{projects: projects}
}

// Definition returns the MCP tool definition for set_project_context.
func (t *SetProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("set_project_context",
		mcp.WithDescription(
			"Set the active project. Tools that take an optional 'project' argument use "+
				"this project when the argument is omitted.",
		),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name to make active"),
		),
	)
}

// Handle processes the set_project_context tool call.
func (t *SetProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project := req.GetString("project", "")
	if project == "" {
		return mcp.NewToolResultError("'project' is required"), nil
	}
	t.projects.Set(project)
	return mcp.NewToolResultText("Active project set to " + project + "."), nil
}

// ─── ClearProjectTool ───────────────────────────────────────────────────────

// ClearProjectTool handles clear_project_context.
type ClearProjectTool struct {
	projects *config.ProjectContext
}

// NewClearProjectTool creates a ClearProjectTool.
func NewClearProjectTool(projects *config.ProjectContext) *ClearProjectTool {
	return &ClearProjectTool{projects: projects}
}

// Definition returns the MCP tool definition for clear_project_context.
func (t *ClearProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("clear_project_context",
		mcp.WithDescription(
			"Clear the active project. Tools will require an explicit 'project' argument "+
				"until a new one is set.",
		),
	)
}

// Handle processes the clear_project_context tool call.
func (t *ClearProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.projects.Clear()
	return mcp.NewToolResultText("Active project cleared."), nil
}

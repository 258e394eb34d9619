package tools

import (
	"context"
	"fmt"

	"github.com/dromward/azdo-mcp/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── CreateWorkItemTool ─────────────────────────────────────────────────────

// CreateWorkItemTool handles create_work_item.
type CreateWorkItemTool struct {
	items    WorkItemClient
	projects *config.ProjectContext
}

// NewCreateWorkItemTool creates a CreateWorkItemTool.
func NewCreateWorkItemTool(items WorkItemClient, projects *config.ProjectContext) *CreateWorkItemTool {
	return &CreateWorkItemTool{items: items, projects: projects}
}

// Definition returns the MCP tool definition for create_work_item.
func (t *CreateWorkItemTool) Definition() mcp.Tool {
	return mcp.NewTool("create_work_item",
		mcp.WithDescription("Create a work item (Task, Bug, User Story, ...) in a project."),
		mcp.WithString("work_item_type",
			mcp.Required(),
			mcp.Description("Work item type, e.g. \"Task\" or \"Bug\""),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Work item title"),
		),
		mcp.WithString("description",
			mcp.Description("Work item description"),
		),
		mcp.WithString("project",
			mcp.Description("Project name; defaults to the active project context"),
		),
	)
}

// Handle processes the create_work_item tool call.
func (t *CreateWorkItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	itemType := req.GetString("work_item_type", "")
	if itemType == "" {
		return mcp.NewToolResultError("'work_item_type' is required"), nil
	}
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	project, err := t.projects.Resolve(req.GetString("project", ""))
	if err != nil {
		return toolError(err), nil
	}
	item, err := t.items.CreateWorkItem(ctx, project, itemType, title, req.GetString("description", ""))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(item), nil
}

// ─── GetWorkItemTool ────────────────────────────────────────────────────────

// GetWorkItemTool handles get_work_item.
type GetWorkItemTool struct {
	items WorkItemClient
}

// NewGetWorkItemTool creates a GetWorkItemTool.
func NewGetWorkItemTool(items WorkItemClient) *GetWorkItemTool {
	return &GetWorkItemTool{items: items}
}

// Definition returns the MCP tool definition for get_work_item.
func (t *GetWorkItemTool) Definition() mcp.Tool {
	return mcp.NewTool("get_work_item",
		mcp.WithDescription("Fetch a work item by ID."),
		mcp.WithNumber("work_item_id",
			mcp.Required(),
			mcp.Description("Work item ID"),
		),
	)
}

// Handle processes the get_work_item tool call.
func (t *GetWorkItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "work_item_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'work_item_id' must be a positive integer"), nil
	}
	item, err := t.items.GetWorkItem(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(item), nil
}

// ─── UpdateWorkItemTool ─────────────────────────────────────────────────────

// UpdateWorkItemTool handles update_work_item.
type UpdateWorkItemTool struct {
	items WorkItemClient
}

// NewUpdateWorkItemTool creates an UpdateWorkItemTool.
func NewUpdateWorkItemTool(items WorkItemClient) *UpdateWorkItemTool {
	return &UpdateWorkItemTool{items: items}
}

// Definition returns the MCP tool definition for update_work_item.
func (t *UpdateWorkItemTool) Definition() mcp.Tool {
	return mcp.NewTool("update_work_item",
		mcp.WithDescription(
			"Update fields on a work item. Keys are field reference names "+
				"(System.Title, System.State, ...) or plain names (Title, State).",
		),
		mcp.WithNumber("work_item_id",
			mcp.Required(),
			mcp.Description("Work item ID"),
		),
		mcp.WithObject("updates",
			mcp.Required(),
			mcp.Description(`Field updates, e.g. {"System.State": "Active"}`),
		),
	)
}

// Handle processes the update_work_item tool call.
func (t *UpdateWorkItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "work_item_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'work_item_id' must be a positive integer"), nil
	}
	raw, ok := req.GetArguments()["updates"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("'updates' must be a non-empty object of field values"), nil
	}
	updates := make(map[string]string, len(raw))
	for field, value := range raw {
		s, ok := value.(string)
		if !ok {
			s = fmt.Sprintf("%v", value)
		}
		updates[field] = s
	}
	item, err := t.items.UpdateWorkItem(ctx, id, updates)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(item), nil
}

// ─── DeleteWorkItemTool ─────────────────────────────────────────────────────

// DeleteWorkItemTool handles delete_work_item.
type DeleteWorkItemTool struct {
	items WorkItemClient
}

// NewDeleteWorkItemTool creates a DeleteWorkItemTool.
func NewDeleteWorkItemTool(items WorkItemClient) *DeleteWorkItemTool {
	return &DeleteWorkItemTool{items: items}
}

// Definition returns the MCP tool definition for delete_work_item.
func (t *DeleteWorkItemTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_work_item",
		mcp.WithDescription("Delete a work item by ID."),
		mcp.WithNumber("work_item_id",
			mcp.Required(),
			mcp.Description("Work item ID"),
		),
	)
}

// Handle processes the delete_work_item tool call.
func (t *DeleteWorkItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "work_item_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'work_item_id' must be a positive integer"), nil
	}
	if err := t.items.DeleteWorkItem(ctx, id); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted work item %d.", id)), nil
}

// ─── SearchWorkItemsTool ────────────────────────────────────────────────────

// SearchWorkItemsTool handles search_work_items.
type SearchWorkItemsTool struct {
	items    WorkItemClient
	projects *config.ProjectContext
}

// NewSearchWorkItemsTool creates a SearchWorkItemsTool.
func NewSearchWorkItemsTool(items WorkItemClient, projects *config.ProjectContext) *SearchWorkItemsTool {
	return &SearchWorkItemsTool{items: items, projects: projects}
}

// Definition returns the MCP tool definition for search_work_items.
func (t *SearchWorkItemsTool) Definition() mcp.Tool {
	return mcp.NewTool("search_work_items",
		mcp.WithDescription("Run a WIQL query and return the matching work items."),
		mcp.WithString("wiql_query",
			mcp.Required(),
			mcp.Description("WIQL query, e.g. \"SELECT [System.Id] FROM WorkItems WHERE [System.State] = 'Active'\""),
		),
		mcp.WithString("project",
			mcp.Description("Project name; defaults to the active project context"),
		),
	)
}

// Handle processes the search_work_items tool call.
func (t *SearchWorkItemsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("wiql_query", "")
	if query == "" {
		return mcp.NewToolResultError("'wiql_query' is required"), nil
	}
	project, err := t.projects.Resolve(req.GetString("project", ""))
	if err != nil {
		return toolError(err), nil
	}
	items, err := t.items.QueryWorkItems(ctx, project, query)
	if err != nil {
		return toolError(err), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("The query matched no work items."), nil
	}
	return jsonResult(items), nil
}

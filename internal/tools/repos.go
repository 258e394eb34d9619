package tools

import (
	"context"

	"github.com/dromward/azdo-mcp/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── ListRepositoriesTool ───────────────────────────────────────────────────

// ListRepositoriesTool handles list_repositories.
type ListRepositoriesTool struct {
	repos    RepoClient
	projects *config.ProjectContext
}

// NewListRepositoriesTool creates a ListRepositoriesTool.
func NewListRepositoriesTool(repos RepoClient, projects *config.ProjectContext) *ListRepositoriesTool {
	return &ListRepositoriesTool{repos: repos, projects: projects}
}

// Definition returns the MCP tool definition for list_repositories.
func (t *ListRepositoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_repositories",
		mcp.WithDescription("List the Git repositories in a project."),
		mcp.WithString("project",
			mcp.Description("Project name; defaults to the active project context"),
		),
	)
}

// Handle processes the list_repositories tool call.
func (t *ListRepositoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := t.projects.Resolve(req.GetString("project", ""))
	if err != nil {
		return toolError(err), nil
	}
	repos, err := t.repos.ListRepositories(ctx, project)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(repos), nil
}

// ─── ListFilesTool ──────────────────────────────────────────────────────────

// ListFilesTool handles list_files.
type ListFilesTool struct {
	repos    RepoClient
	projects *config.ProjectContext
}

// NewListFilesTool creates a ListFilesTool.
func NewListFilesTool(repos RepoClient, projects *config.ProjectContext) *ListFilesTool {
	return &ListFilesTool{repos: repos, projects: projects}
}

// Definition returns the MCP tool definition for list_files.
func (t *ListFilesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List files and folders in a repository path."),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Repository name or ID"),
		),
		mcp.WithString("path",
			mcp.Description("Folder path to list (default: repository root)"),
		),
		mcp.WithString("project",
			mcp.Description("Project name; defaults to the active project context"),
		),
	)
}

// Handle processes the list_files tool call.
func (t *ListFilesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repository := req.GetString("repository", "")
	if repository == "" {
		return mcp.NewToolResultError("'repository' is required"), nil
	}
	project, err := t.projects.Resolve(req.GetString("project", ""))
	if err != nil {
		return toolError(err), nil
	}
	items, err := t.repos.ListFiles(ctx, project, repository, req.GetString("path", "/"))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(items), nil
}

// ─── FileContentTool ────────────────────────────────────────────────────────

// FileContentTool handles get_file_content.
type FileContentTool struct {
	repos    RepoClient
	projects *config.ProjectContext
}

// NewFileContentTool creates a FileContentTool.
func NewFileContentTool(repos RepoClient, projects *config.ProjectContext) *FileContentTool {
	return &FileContentTool{repos: repos, projects: projects}
}

// Definition returns the MCP tool definition for get_file_content.
func (t *FileContentTool) Definition() mcp.Tool {
	return mcp.NewTool("get_file_content",
		mcp.WithDescription("Read a file from a repository."),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Repository name or ID"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path within the repository"),
		),
		mcp.WithString("project",
			mcp.Description("Project name; defaults to the active project context"),
		),
	)
}

// Handle processes the get_file_content tool call.
func (t *FileContentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repository := req.GetString("repository", "")
	if repository == "" {
		return mcp.NewToolResultError("'repository' is required"), nil
	}
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	project, err := t.projects.Resolve(req.GetString("project", ""))
	if err != nil {
		return toolError(err), nil
	}
	content, err := t.repos.GetFileContent(ctx, project, repository, path)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(content), nil
}

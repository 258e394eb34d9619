// Package tools implements the MCP tool handlers.
//
// Each tool is a struct holding its dependencies, with Definition()
// returning the mcp.Tool schema and Handle() processing the request. Tools
// depend on the small interfaces below rather than the concrete remote
// client, so handlers are testable against in-memory fakes.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dromward/azdo-mcp/internal/azdo"
	"github.com/dromward/azdo-mcp/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
)

// WikiDirectory lists and creates wikis within a project.
type WikiDirectory interface {
	ListWikis(ctx context.Context, project string) ([]azdo.Wiki, error)
	CreateWiki(ctx context.Context, project, name string) (*azdo.Wiki, error)
}

// ProjectLister lists the organization's projects.
type ProjectLister interface {
	ListProjects(ctx context.Context) ([]azdo.Project, error)
}

// WorkItemClient covers the work item operations the tools expose.
type WorkItemClient interface {
	CreateWorkItem(ctx context.Context, project, workItemType, title, description string) (*azdo.WorkItem, error)
	GetWorkItem(ctx context.Context, id int) (*azdo.WorkItem, error)
	UpdateWorkItem(ctx context.Context, id int, updates map[string]string) (*azdo.WorkItem, error)
	DeleteWorkItem(ctx context.Context, id int) error
	QueryWorkItems(ctx context.Context, project, wiqlQuery string) ([]azdo.WorkItem, error)
}

// RepoClient covers the repository operations the tools expose.
type RepoClient interface {
	ListRepositories(ctx context.Context, project string) ([]azdo.Repository, error)
	ListFiles(ctx context.Context, project, repository, path string) ([]azdo.RepoItem, error)
	GetFileContent(ctx context.Context, project, repository, path string) (string, error)
}

// ScopeResolver turns optional project/wiki tool arguments into a concrete
// scope. The project falls back to the active project context; the wiki
// falls back to the project's only wiki when it has exactly one.
type ScopeResolver struct {
	projects *config.ProjectContext
	wikis    WikiDirectory
}

// NewScopeResolver creates a ScopeResolver.
func NewScopeResolver(projects *config.ProjectContext, wikis WikiDirectory) *ScopeResolver {
	return &ScopeResolver{projects: projects, wikis: wikis}
}

// Resolve determines the (project, wiki) scope for a page operation.
func (r *ScopeResolver) Resolve(ctx context.Context, project, wikiName string) (azdo.Scope, error) {
	proj, err := r.projects.Resolve(project)
	if err != nil {
		return azdo.Scope{}, err
	}
	if wikiName != "" {
		return azdo.Scope{Project: proj, Wiki: wikiName}, nil
	}

	wikis, err := r.wikis.ListWikis(ctx, proj)
	if err != nil {
		return azdo.Scope{}, fmt.Errorf("resolving wiki for project %q: %w", proj, err)
	}
	switch len(wikis) {
	case 0:
		return azdo.Scope{}, fmt.Errorf("project %q has no wikis; create one with create_wiki", proj)
	case 1:
		return azdo.Scope{Project: proj, Wiki: wikis[0].Name}, nil
	default:
		names := make([]string, len(wikis))
		for i, w := range wikis {
			names[i] = w.Name
		}
		return azdo.Scope{}, fmt.Errorf("project %q has %d wikis, pass 'wiki' to pick one of: %s",
			proj, len(wikis), strings.Join(names, ", "))
	}
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// jsonResult marshals v as indented JSON into a text tool result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling response: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// toolError renders an operation failure as a tool-level error result.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

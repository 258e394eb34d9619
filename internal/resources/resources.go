// Package resources implements the MCP resource handlers.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (azdo://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dromward/azdo-mcp/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages the server's resource endpoints.
type Handler struct {
	orgURL   string
	projects *config.ProjectContext
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(orgURL string, projects *config.ProjectContext) *Handler {
	return &Handler{orgURL: orgURL, projects: projects}
}

// StatusResource returns the MCP resource definition for the working context.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"azdo://context/status",
		"Azure DevOps Working Context",
		mcp.WithResourceDescription("The organization URL and the active project, if any"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current working context as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	status := struct {
		OrganizationURL string `json:"organization_url"`
		ActiveProject   string `json:"active_project,omitempty"`
		ProjectSet      bool   `json:"project_set"`
	}{
		OrganizationURL: h.orgURL,
		ActiveProject:   h.projects.Current(),
	}
	status.ProjectSet = status.ActiveProject != ""

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// Package prompts implements the MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the azdo-start MCP prompt.
// It guides the AI through orienting itself in an Azure DevOps organization.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("azdo-start",
		mcp.WithPromptDescription(
			"Get oriented in your Azure DevOps organization. "+
				"Lists your projects, picks (or asks for) an active project, "+
				"and surveys its wikis and repositories.",
		),
		mcp.WithArgument("project",
			mcp.ArgumentDescription("Project to focus on; omit to choose from the list"),
		),
	)
}

// Handle processes the azdo-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	project := ""
	if args := req.Params.Arguments; args != nil {
		project = args["project"]
	}

	var text string
	if project != "" {
		text = fmt.Sprintf(
			"I want to work in the Azure DevOps project '%s'.\n\n"+
				"Please:\n"+
				"1. Run `set_project_context` with project='%s'\n"+
				"2. Run `get_wikis` and `list_repositories` to survey it\n"+
				"3. Give me a short overview of what the project contains and suggest where to look first",
			project, project,
		)
	} else {
		text = "I want to get oriented in my Azure DevOps organization.\n\n" +
			"Please:\n" +
			"1. Run `list_projects` and show me the projects\n" +
			"2. Ask me which project to focus on, then run `set_project_context` with it\n" +
			"3. Run `get_wikis` and `list_repositories` for that project\n" +
			"4. Give me a short overview and suggest where to look first"
	}

	description := "Orient in Azure DevOps"
	if project != "" {
		description = fmt.Sprintf("Orient in project: %s", project)
	}
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}

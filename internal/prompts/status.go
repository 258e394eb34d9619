package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the azdo-status MCP prompt.
// It instructs the AI to summarize the current working context.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("azdo-status",
		mcp.WithPromptDescription(
			"Summarize the current Azure DevOps working context: "+
				"the active project, its wikis, and recent wiki activity.",
		),
	)
}

// Handle processes the azdo-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Azure DevOps Working Context",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please read the `azdo://context/status` resource to see my current working context.\n\n" +
						"Then:\n" +
						"1. Tell me which project is active (or that none is, and how to set one)\n" +
						"2. Run `get_wikis` for the active project and list its wikis\n" +
						"3. Run `get_recent_wiki_pages` and summarize what changed recently\n" +
						"4. Point out anything that looks like it needs attention",
				),
			},
		},
	}, nil
}

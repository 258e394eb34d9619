// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the remote client and injects it
// into the tools/prompts/resources that depend on abstractions. No business
// logic lives here — only wiring.
package server

import (
	"context"
	"fmt"
	"log"

	"github.com/dromward/azdo-mcp/internal/azdo"
	"github.com/dromward/azdo-mcp/internal/config"
	"github.com/dromward/azdo-mcp/internal/org"
	"github.com/dromward/azdo-mcp/internal/pages"
	"github.com/dromward/azdo-mcp/internal/prompts"
	"github.com/dromward/azdo-mcp/internal/resources"
	"github.com/dromward/azdo-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
func New(ctx context.Context) (*server.MCPServer, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	client, err := azdo.NewClient(ctx, cfg.OrgURL, cfg.PAT)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.OrgURL, err)
	}

	// --- Create shared dependencies ---

	projectCtx := config.NewProjectContext(cfg.DefaultProject)
	if cfg.DefaultProject != "" {
		log.Printf("default project: %s", cfg.DefaultProject)
	}

	pageSvc := pages.NewService(client)
	aggregator := org.NewAggregator(client)
	scopes := tools.NewScopeResolver(projectCtx, client)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"azdo-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register project context tools ---

	listProjects := tools.NewListProjectsTool(client)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	setProject := tools.NewSetProjectTool(projectCtx)
	s.AddTool(setProject.Definition(), setProject.Handle)

	clearProject := tools.NewClearProjectTool(projectCtx)
	s.AddTool(clearProject.Definition(), clearProject.Handle)

	// --- Register wiki tools ---

	listWikis := tools.NewListWikisTool(client, projectCtx)
	s.AddTool(listWikis.Definition(), listWikis.Handle)

	createWiki := tools.NewCreateWikiTool(client, projectCtx)
	s.AddTool(createWiki.Definition(), createWiki.Handle)

	findWiki := tools.NewFindWikiTool(aggregator)
	s.AddTool(findWiki.Definition(), findWiki.Handle)

	allWikis := tools.NewAllWikisTool(aggregator)
	s.AddTool(allWikis.Definition(), allWikis.Handle)

	// --- Register wiki page tools ---

	createPage := tools.NewCreatePageTool(pageSvc, scopes)
	s.AddTool(createPage.Definition(), createPage.Handle)

	getPage := tools.NewGetPageTool(pageSvc, scopes)
	s.AddTool(getPage.Definition(), getPage.Handle)

	updatePage := tools.NewUpdatePageTool(pageSvc, scopes)
	s.AddTool(updatePage.Definition(), updatePage.Handle)

	deletePage := tools.NewDeletePageTool(pageSvc, scopes)
	s.AddTool(deletePage.Definition(), deletePage.Handle)

	listPages := tools.NewListPagesTool(pageSvc, scopes)
	s.AddTool(listPages.Definition(), listPages.Handle)

	safeUpdate := tools.NewSafeUpdateTool(pageSvc, scopes)
	s.AddTool(safeUpdate.Definition(), safeUpdate.Handle)

	smartCreate := tools.NewSmartCreateTool(pageSvc, scopes)
	s.AddTool(smartCreate.Definition(), smartCreate.Handle)

	batchCreate := tools.NewBatchCreateTool(pageSvc, scopes)
	s.AddTool(batchCreate.Definition(), batchCreate.Handle)

	// --- Register wiki navigation tools ---

	searchPages := tools.NewSearchPagesTool(pageSvc, scopes)
	s.AddTool(searchPages.Definition(), searchPages.Handle)

	pageTree := tools.NewPageTreeTool(pageSvc, scopes)
	s.AddTool(pageTree.Definition(), pageTree.Handle)

	pageByTitle := tools.NewPageByTitleTool(pageSvc, scopes)
	s.AddTool(pageByTitle.Definition(), pageByTitle.Handle)

	suggestions := tools.NewSuggestionsTool(pageSvc, scopes)
	s.AddTool(suggestions.Definition(), suggestions.Handle)

	recentPages := tools.NewRecentPagesTool(pageSvc, scopes)
	s.AddTool(recentPages.Definition(), recentPages.Handle)

	// --- Register work item tools ---

	createItem := tools.NewCreateWorkItemTool(client, projectCtx)
	s.AddTool(createItem.Definition(), createItem.Handle)

	getItem := tools.NewGetWorkItemTool(client)
	s.AddTool(getItem.Definition(), getItem.Handle)

	updateItem := tools.NewUpdateWorkItemTool(client)
	s.AddTool(updateItem.Definition(), updateItem.Handle)

	deleteItem := tools.NewDeleteWorkItemTool(client)
	s.AddTool(deleteItem.Definition(), deleteItem.Handle)

	searchItems := tools.NewSearchWorkItemsTool(client, projectCtx)
	s.AddTool(searchItems.Definition(), searchItems.Handle)

	// --- Register repository tools ---

	listRepos := tools.NewListRepositoriesTool(client, projectCtx)
	s.AddTool(listRepos.Definition(), listRepos.Handle)

	listFiles := tools.NewListFilesTool(client, projectCtx)
	s.AddTool(listFiles.Definition(), listFiles.Handle)

	fileContent := tools.NewFileContentTool(client, projectCtx)
	s.AddTool(fileContent.Definition(), fileContent.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(cfg.OrgURL, projectCtx)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to use the server effectively.
func serverInstructions() string {
	return `You have access to an Azure DevOps MCP server covering wikis, work items,
and repositories.

## Project context

Most tools take an optional 'project' argument. Set it once with
set_project_context and omit it afterwards; clear_project_context removes it.
When a project has exactly one wiki, the 'wiki' argument can be omitted too.

## Wiki writes

- Prefer create_or_update_wiki_page_smart when you don't know whether a page
  exists: it creates or updates as needed and is safe to call repeatedly.
- Prefer update_wiki_page_safe for updates: it retries automatically when
  someone else writes the page at the same time. Plain update_wiki_page fails
  on the first conflict.
- Use create_wiki_pages_batch to publish several pages at once; it reports
  per-page success and failure instead of stopping at the first error.

## Finding pages

- get_wiki_page needs the exact path. When you only know the title, use
  get_wiki_page_by_title; a miss returns the closest candidates.
- get_wiki_page_suggestions completes partial titles; search_wiki_pages
  searches titles and content; get_wiki_page_tree shows the hierarchy.

## Work items

search_work_items takes raw WIQL. update_work_item takes field reference
names (System.State, System.Title) or plain names (State, Title).`
}

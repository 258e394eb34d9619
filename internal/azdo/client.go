// Package azdo wraps the Azure DevOps REST SDK behind a small typed surface.
//
// Everything above this package works with plain structs (Project, Wiki,
// Page, ...) and the error taxonomy in errors.go; no SDK types leak out.
// The wrapper performs no retries of its own — retry policy belongs to the
// callers that know which failures are transient for them.
package azdo

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/core"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/webapi"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/wiki"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/workitemtracking"
)

// pageViewWindowDays is how far back the pages-batch endpoint is asked to
// report view stats.
const pageViewWindowDays = 30

// Client is the production remote client, backed by the Microsoft Azure
// DevOps Go SDK over a PAT connection.
type Client struct {
	core core.Client
	wiki wiki.Client
	work workitemtracking.Client
	git  git.Client
}

// NewClient connects to an Azure DevOps organization. orgURL is the full
// organization URL (https://dev.azure.com/<org>); pat is a personal access
// token with wiki, work item, and code read scopes.
func NewClient(ctx context.Context, orgURL, pat string) (*Client, error) {
	conn := azuredevops.NewPatConnection(orgURL, pat)

	coreClient, err := core.NewClient(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("creating core client: %w", err)
	}
	wikiClient, err := wiki.NewClient(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("creating wiki client: %w", err)
	}
	workClient, err := workitemtracking.NewClient(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("creating work item client: %w", err)
	}
	gitClient, err := git.NewClient(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("creating git client: %w", err)
	}

	return &Client{core: coreClient, wiki: wikiClient, work: workClient, git: gitClient}, nil
}

// ─── Projects & wikis ───────────────────────────────────────────────────────

// ListProjects returns every project in the organization, following the
// continuation token until the listing is exhausted.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	args := core.GetProjectsArgs{}
	for {
		resp, err := c.core.GetProjects(ctx, args)
		if err != nil {
			return nil, wrapError("list_projects", Scope{}, "", err)
		}
		for _, p := range resp.Value {
			out = append(out, Project{
				ID:          uuidString(p.Id),
				Name:        str(p.Name),
				Description: str(p.Description),
				URL:         str(p.Url),
			})
		}
		if resp.ContinuationToken == "" {
			break
		}
		token, err := strconv.Atoi(resp.ContinuationToken)
		if err != nil {
			break
		}
		args.ContinuationToken = &token
	}
	return out, nil
}

// ListWikis returns the wikis owned by one project.
func (c *Client) ListWikis(ctx context.Context, project string) ([]Wiki, error) {
	resp, err := c.wiki.GetAllWikis(ctx, wiki.GetAllWikisArgs{Project: &project})
	if err != nil {
		return nil, wrapError("get_wikis", Scope{Project: project}, "", err)
	}
	var out []Wiki
	if resp != nil {
		for _, w := range *resp {
			out = append(out, wikiFromV2(&w, project))
		}
	}
	return out, nil
}

// CreateWiki creates a project wiki with the given name.
func (c *Client) CreateWiki(ctx context.Context, project, name string) (*Wiki, error) {
	scope := Scope{Project: project}
	proj, err := c.core.GetProject(ctx, core.GetProjectArgs{ProjectId: &project})
	if err != nil {
		return nil, wrapError("create_wiki", scope, "", err)
	}
	created, err := c.wiki.CreateWiki(ctx, wiki.CreateWikiArgs{
		Project: &project,
		WikiCreateParams: &wiki.WikiCreateParametersV2{
			Name:      &name,
			ProjectId: proj.Id,
			Type:      &wiki.WikiTypeValues.ProjectWiki,
		},
	})
	if err != nil {
		return nil, wrapError("create_wiki", scope, name, err)
	}
	w := wikiFromV2(created, project)
	return &w, nil
}

func wikiFromV2(w *wiki.WikiV2, project string) Wiki {
	return Wiki{
		ID:        uuidString(w.Id),
		Name:      str(w.Name),
		Project:   project,
		URL:       str(w.Url),
		RemoteURL: str(w.RemoteUrl),
	}
}

// ─── Wiki pages ─────────────────────────────────────────────────────────────

// ListPages returns every page in the wiki as a flat list. Paths and URLs
// come from a full-recursion page read; activity timestamps come from the
// pages-batch view stats and are zero for pages the remote reports no
// activity for.
func (c *Client) ListPages(ctx context.Context, scope Scope) ([]PageInfo, error) {
	root := "/"
	includeContent := false
	resp, err := c.wiki.GetPage(ctx, wiki.GetPageArgs{
		Project:        &scope.Project,
		WikiIdentifier: &scope.Wiki,
		Path:           &root,
		RecursionLevel: &git.VersionControlRecursionTypeValues.Full,
		IncludeContent: &includeContent,
	})
	if err != nil {
		return nil, wrapError("list_wiki_pages", scope, root, err)
	}

	var pages []PageInfo
	if resp.Page != nil {
		pages = collectPages(resp.Page, pages)
	}

	activity, err := c.pageActivity(ctx, scope)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		pages[i].LastModified = activity[pages[i].Path]
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages, nil
}

// collectPages flattens the recursive page response. The root node ("/") is
// a structural container and is not reported as a page.
func collectPages(p *wiki.WikiPage, acc []PageInfo) []PageInfo {
	if path := str(p.Path); path != "" && path != "/" {
		url := str(p.RemoteUrl)
		if url == "" {
			url = str(p.Url)
		}
		acc = append(acc, PageInfo{Path: path, URL: url})
	}
	if p.SubPages != nil {
		for i := range *p.SubPages {
			acc = collectPages(&(*p.SubPages)[i], acc)
		}
	}
	return acc
}

// pageActivity returns the latest view-stat day per page path, following the
// batch continuation token.
func (c *Client) pageActivity(ctx context.Context, scope Scope) (map[string]time.Time, error) {
	out := make(map[string]time.Time)
	days := pageViewWindowDays
	top := 100
	req := wiki.WikiPagesBatchRequest{PageViewsForDays: &days, Top: &top}
	for {
		resp, err := c.wiki.GetPagesBatch(ctx, wiki.GetPagesBatchArgs{
			Project:           &scope.Project,
			WikiIdentifier:    &scope.Wiki,
			PagesBatchRequest: &req,
		})
		if err != nil {
			return nil, wrapError("list_wiki_pages", scope, "", err)
		}
		for _, detail := range resp.Value {
			path := str(detail.Path)
			if path == "" || detail.ViewStats == nil {
				continue
			}
			for _, stat := range *detail.ViewStats {
				if stat.Day != nil && stat.Day.Time.After(out[path]) {
					out[path] = stat.Day.Time
				}
			}
		}
		if resp.ContinuationToken == "" {
			return out, nil
		}
		token := resp.ContinuationToken
		req.ContinuationToken = &token
	}
}

// GetPage reads one page with content and its concurrency token.
func (c *Client) GetPage(ctx context.Context, scope Scope, path string) (*Page, error) {
	includeContent := true
	resp, err := c.wiki.GetPage(ctx, wiki.GetPageArgs{
		Project:        &scope.Project,
		WikiIdentifier: &scope.Wiki,
		Path:           &path,
		IncludeContent: &includeContent,
	})
	if err != nil {
		return nil, wrapError("get_wiki_page", scope, path, err)
	}
	return pageFromResponse(resp, path), nil
}

// CreatePage creates a page at path. Fails if the page already exists.
func (c *Client) CreatePage(ctx context.Context, scope Scope, path, content string) (*Page, error) {
	resp, err := c.wiki.CreateOrUpdatePage(ctx, wiki.CreateOrUpdatePageArgs{
		Project:        &scope.Project,
		WikiIdentifier: &scope.Wiki,
		Path:           &path,
		Parameters:     &wiki.WikiPageCreateOrUpdateParameters{Content: &content},
	})
	if err != nil {
		return nil, wrapError("create_wiki_page", scope, path, err)
	}
	return pageFromResponse(resp, path), nil
}

// UpdatePage overwrites the page at path. etag must be the concurrency token
// from a prior read; a stale token fails with KindVersionConflict.
func (c *Client) UpdatePage(ctx context.Context, scope Scope, path, content, etag string) (*Page, error) {
	resp, err := c.wiki.CreateOrUpdatePage(ctx, wiki.CreateOrUpdatePageArgs{
		Project:        &scope.Project,
		WikiIdentifier: &scope.Wiki,
		Path:           &path,
		Parameters:     &wiki.WikiPageCreateOrUpdateParameters{Content: &content},
		Version:        &etag,
	})
	if err != nil {
		return nil, wrapError("update_wiki_page", scope, path, err)
	}
	return pageFromResponse(resp, path), nil
}

// DeletePage removes the page at path.
func (c *Client) DeletePage(ctx context.Context, scope Scope, path string) error {
	_, err := c.wiki.DeletePage(ctx, wiki.DeletePageArgs{
		Project:        &scope.Project,
		WikiIdentifier: &scope.Wiki,
		Path:           &path,
	})
	if err != nil {
		return wrapError("delete_wiki_page", scope, path, err)
	}
	return nil
}

func pageFromResponse(resp *wiki.WikiPageResponse, path string) *Page {
	p := &Page{Path: path}
	if resp.ETag != nil && len(*resp.ETag) > 0 {
		p.ETag = (*resp.ETag)[0]
	}
	if resp.Page != nil {
		if pp := str(resp.Page.Path); pp != "" {
			p.Path = pp
		}
		p.Content = str(resp.Page.Content)
		p.URL = str(resp.Page.RemoteUrl)
		if p.URL == "" {
			p.URL = str(resp.Page.Url)
		}
	}
	return p
}

// ─── Work items ─────────────────────────────────────────────────────────────

// CreateWorkItem creates a work item of the given type (Bug, User Story, ...)
// with title and description.
func (c *Client) CreateWorkItem(ctx context.Context, project, workItemType, title, description string) (*WorkItem, error) {
	doc := []webapi.JsonPatchOperation{
		addField("System.Title", title),
		addField("System.Description", description),
	}
	wi, err := c.work.CreateWorkItem(ctx, workitemtracking.CreateWorkItemArgs{
		Project:  &project,
		Type:     &workItemType,
		Document: &doc,
	})
	if err != nil {
		return nil, wrapError("create_work_item", Scope{Project: project}, title, err)
	}
	return workItemFrom(wi), nil
}

// GetWorkItem reads a work item by ID.
func (c *Client) GetWorkItem(ctx context.Context, id int) (*WorkItem, error) {
	wi, err := c.work.GetWorkItem(ctx, workitemtracking.GetWorkItemArgs{Id: &id})
	if err != nil {
		return nil, wrapError("get_work_item", Scope{}, strconv.Itoa(id), err)
	}
	return workItemFrom(wi), nil
}

// UpdateWorkItem applies field updates to a work item. Keys may be field
// reference names (System.State) or plain names (State); plain names resolve
// through fieldRefName. Fields are applied in sorted order for determinism.
func (c *Client) UpdateWorkItem(ctx context.Context, id int, updates map[string]string) (*WorkItem, error) {
	fields := make([]string, 0, len(updates))
	for f := range updates {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	doc := make([]webapi.JsonPatchOperation, 0, len(fields))
	for _, f := range fields {
		doc = append(doc, addField(f, updates[f]))
	}
	wi, err := c.work.UpdateWorkItem(ctx, workitemtracking.UpdateWorkItemArgs{Id: &id, Document: &doc})
	if err != nil {
		return nil, wrapError("update_work_item", Scope{}, strconv.Itoa(id), err)
	}
	return workItemFrom(wi), nil
}

// DeleteWorkItem moves a work item to the recycle bin.
func (c *Client) DeleteWorkItem(ctx context.Context, id int) error {
	_, err := c.work.DeleteWorkItem(ctx, workitemtracking.DeleteWorkItemArgs{Id: &id})
	if err != nil {
		return wrapError("delete_work_item", Scope{}, strconv.Itoa(id), err)
	}
	return nil
}

// QueryWorkItems runs a WIQL query scoped to project and hydrates the
// matching work items. A query with no matches returns an empty slice.
func (c *Client) QueryWorkItems(ctx context.Context, project, wiqlQuery string) ([]WorkItem, error) {
	scope := Scope{Project: project}
	scoped := scopeWiqlToProject(wiqlQuery, project)
	result, err := c.work.QueryByWiql(ctx, workitemtracking.QueryByWiqlArgs{
		Wiql: &workitemtracking.Wiql{Query: &scoped},
	})
	if err != nil {
		return nil, wrapError("search_work_items", scope, "", err)
	}
	if result.WorkItems == nil || len(*result.WorkItems) == 0 {
		return nil, nil
	}
	ids := make([]int, 0, len(*result.WorkItems))
	for _, ref := range *result.WorkItems {
		if ref.Id != nil {
			ids = append(ids, *ref.Id)
		}
	}
	items, err := c.work.GetWorkItems(ctx, workitemtracking.GetWorkItemsArgs{Ids: &ids})
	if err != nil {
		return nil, wrapError("search_work_items", scope, "", err)
	}
	var out []WorkItem
	if items != nil {
		for i := range *items {
			out = append(out, *workItemFrom(&(*items)[i]))
		}
	}
	return out, nil
}

// scopeWiqlToProject constrains a WIQL query to one project. WIQL queries
// evaluate collection-wide: without a [System.TeamProject] filter a flat
// query would return work items from every project in the organization.
// Queries that already filter on [System.TeamProject] pass through untouched.
func scopeWiqlToProject(query, project string) string {
	if strings.Contains(strings.ToLower(query), "[system.teamproject]") {
		return query
	}
	filter := fmt.Sprintf("[System.TeamProject] = '%s'", strings.ReplaceAll(project, "'", "''"))
	if i := strings.Index(strings.ToUpper(query), " WHERE "); i >= 0 {
		at := i + len(" WHERE ")
		return query[:at] + filter + " AND " + query[at:]
	}
	return query + " WHERE " + filter
}

func addField(field, value string) webapi.JsonPatchOperation {
	path := "/fields/" + fieldRefName(field)
	return webapi.JsonPatchOperation{
		Op:    &webapi.OperationValues.Add,
		Path:  &path,
		Value: value,
	}
}

var plainFieldNames = map[string]string{
	"title":         "System.Title",
	"state":         "System.State",
	"description":   "System.Description",
	"reason":        "System.Reason",
	"tags":          "System.Tags",
	"history":       "System.History",
	"assignedto":    "System.AssignedTo",
	"areapath":      "System.AreaPath",
	"iterationpath": "System.IterationPath",
}

// fieldRefName resolves the reference name used in a patch path. Names that
// already carry a namespace (System.State, Microsoft.VSTS.Common.Priority)
// pass through; plain names (State, Title) resolve to their System.*
// reference name.
func fieldRefName(field string) string {
	if strings.Contains(field, ".") {
		return field
	}
	if ref, ok := plainFieldNames[strings.ToLower(field)]; ok {
		return ref
	}
	return "System." + field
}

func workItemFrom(wi *workitemtracking.WorkItem) *WorkItem {
	out := &WorkItem{URL: str(wi.Url)}
	if wi.Id != nil {
		out.ID = *wi.Id
	}
	if wi.Rev != nil {
		out.Rev = *wi.Rev
	}
	if wi.Fields != nil {
		out.Title = fieldString(*wi.Fields, "System.Title")
		out.State = fieldString(*wi.Fields, "System.State")
		out.Description = fieldString(*wi.Fields, "System.Description")
	}
	return out
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// ─── Repositories ───────────────────────────────────────────────────────────

// ListRepositories returns the git repositories in a project.
func (c *Client) ListRepositories(ctx context.Context, project string) ([]Repository, error) {
	resp, err := c.git.GetRepositories(ctx, git.GetRepositoriesArgs{Project: &project})
	if err != nil {
		return nil, wrapError("list_repositories", Scope{Project: project}, "", err)
	}
	var out []Repository
	if resp != nil {
		for _, r := range *resp {
			out = append(out, Repository{
				ID:            uuidString(r.Id),
				Name:          str(r.Name),
				DefaultBranch: str(r.DefaultBranch),
				WebURL:        str(r.WebUrl),
			})
		}
	}
	return out, nil
}

// ListFiles lists repository items under path with full recursion.
func (c *Client) ListFiles(ctx context.Context, project, repository, path string) ([]RepoItem, error) {
	resp, err := c.git.GetItems(ctx, git.GetItemsArgs{
		Project:        &project,
		RepositoryId:   &repository,
		ScopePath:      &path,
		RecursionLevel: &git.VersionControlRecursionTypeValues.Full,
	})
	if err != nil {
		return nil, wrapError("list_files", Scope{Project: project}, path, err)
	}
	var out []RepoItem
	if resp != nil {
		for _, item := range *resp {
			out = append(out, RepoItem{
				Path:     str(item.Path),
				IsFolder: item.IsFolder != nil && *item.IsFolder,
				CommitID: str(item.CommitId),
			})
		}
	}
	return out, nil
}

// GetFileContent reads one repository file as text.
func (c *Client) GetFileContent(ctx context.Context, project, repository, path string) (string, error) {
	rc, err := c.git.GetItemText(ctx, git.GetItemTextArgs{
		Project:      &project,
		RepositoryId: &repository,
		Path:         &path,
	})
	if err != nil {
		return "", wrapError("get_file_content", Scope{Project: project}, path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", wrapError("get_file_content", Scope{Project: project}, path, err)
	}
	return string(data), nil
}

// ─── Pointer helpers ────────────────────────────────────────────────────────

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

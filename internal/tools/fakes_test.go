package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dromward/azdo-mcp/internal/azdo"
	"github.com/dromward/azdo-mcp/internal/config"
	"github.com/dromward/azdo-mcp/internal/pages"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// ─── Fakes ───────────────────────────────────────────────────────────────────

// fakeWikiStore is a minimal in-memory pages.Store. Revisions bump on every
// write; a stale token fails with a version conflict, matching the remote.
type fakeWikiStore struct {
	pages map[string]*storedPage
}

type storedPage struct {
	content string
	rev     int
}

func newFakeWikiStore() *fakeWikiStore {
	return &fakeWikiStore{pages: make(map[string]*storedPage)}
}

func (f *fakeWikiStore) seed(path, content string) {
	f.pages[path] = &storedPage{content: content, rev: 1}
}

func (f *fakeWikiStore) ListPages(ctx context.Context, scope azdo.Scope) ([]azdo.PageInfo, error) {
	var out []azdo.PageInfo
	for path := range f.pages {
		out = append(out, azdo.PageInfo{Path: path, URL: "https://wiki.example" + path})
	}
	return out, nil
}

func (f *fakeWikiStore) GetPage(ctx context.Context, scope azdo.Scope, path string) (*azdo.Page, error) {
	p, ok := f.pages[path]
	if !ok {
		return nil, &azdo.Error{Kind: azdo.KindNotFound, Op: "get page", Scope: scope, Path: path}
	}
	return &azdo.Page{Path: path, Content: p.content, ETag: fmt.Sprintf("rev-%d", p.rev)}, nil
}

func (f *fakeWikiStore) CreatePage(ctx context.Context, scope azdo.Scope, path, content string) (*azdo.Page, error) {
	if _, ok := f.pages[path]; ok {
		return nil, &azdo.Error{Kind: azdo.KindVersionConflict, Op: "create page", Scope: scope, Path: path}
	}
	f.pages[path] = &storedPage{content: content, rev: 1}
	return &azdo.Page{Path: path, Content: content, ETag: "rev-1"}, nil
}

func (f *fakeWikiStore) UpdatePage(ctx context.Context, scope azdo.Scope, path, content, etag string) (*azdo.Page, error) {
	p, ok := f.pages[path]
	if !ok {
		return nil, &azdo.Error{Kind: azdo.KindNotFound, Op: "update page", Scope: scope, Path: path}
	}
	if etag != fmt.Sprintf("rev-%d", p.rev) {
		return nil, &azdo.Error{Kind: azdo.KindVersionConflict, Op: "update page", Scope: scope, Path: path}
	}
	p.content = content
	p.rev++
	return &azdo.Page{Path: path, Content: content, ETag: fmt.Sprintf("rev-%d", p.rev)}, nil
}

func (f *fakeWikiStore) DeletePage(ctx context.Context, scope azdo.Scope, path string) error {
	if _, ok := f.pages[path]; !ok {
		return &azdo.Error{Kind: azdo.KindNotFound, Op: "delete page", Scope: scope, Path: path}
	}
	delete(f.pages, path)
	return nil
}

// fakeWikis is an in-memory WikiDirectory.
type fakeWikis struct {
	byProject map[string][]azdo.Wiki
	listErr   error
	createErr error
}

func (f *fakeWikis) ListWikis(ctx context.Context, project string) ([]azdo.Wiki, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byProject[project], nil
}

func (f *fakeWikis) CreateWiki(ctx context.Context, project, name string) (*azdo.Wiki, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	w := azdo.Wiki{ID: "wiki-" + name, Name: name, Project: project}
	if f.byProject == nil {
		f.byProject = make(map[string][]azdo.Wiki)
	}
	f.byProject[project] = append(f.byProject[project], w)
	return &w, nil
}

// fakeProjects is a fixed ProjectLister.
type fakeProjects struct {
	projects []azdo.Project
	err      error
}

func (f *fakeProjects) ListProjects(ctx context.Context) ([]azdo.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.projects, nil
}

// fakeWorkItems is an in-memory WorkItemClient.
type fakeWorkItems struct {
	items     map[int]*azdo.WorkItem
	nextID    int
	lastQuery string
}

func newFakeWorkItems() *fakeWorkItems {
	return &fakeWorkItems{items: make(map[int]*azdo.WorkItem), nextID: 1}
}

func (f *fakeWorkItems) CreateWorkItem(ctx context.Context, project, workItemType, title, description string) (*azdo.WorkItem, error) {
	item := &azdo.WorkItem{ID: f.nextID, Rev: 1, Title: title, State: "New", Description: description}
	f.items[f.nextID] = item
	f.nextID++
	return item, nil
}

func (f *fakeWorkItems) GetWorkItem(ctx context.Context, id int) (*azdo.WorkItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, &azdo.Error{Kind: azdo.KindNotFound, Op: "get work item", Path: fmt.Sprintf("%d", id)}
	}
	return item, nil
}

func (f *fakeWorkItems) UpdateWorkItem(ctx context.Context, id int, updates map[string]string) (*azdo.WorkItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, &azdo.Error{Kind: azdo.KindNotFound, Op: "update work item", Path: fmt.Sprintf("%d", id)}
	}
	for field, value := range updates {
		switch strings.TrimPrefix(field, "System.") {
		case "Title":
			item.Title = value
		case "State":
			item.State = value
		case "Description":
			item.Description = value
		}
	}
	item.Rev++
	return item, nil
}

func (f *fakeWorkItems) DeleteWorkItem(ctx context.Context, id int) error {
	if _, ok := f.items[id]; !ok {
		return &azdo.Error{Kind: azdo.KindNotFound, Op: "delete work item", Path: fmt.Sprintf("%d", id)}
	}
	delete(f.items, id)
	return nil
}

func (f *fakeWorkItems) QueryWorkItems(ctx context.Context, project, wiqlQuery string) ([]azdo.WorkItem, error) {
	f.lastQuery = wiqlQuery
	var out []azdo.WorkItem
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

// fakeRepos is a fixed RepoClient.
type fakeRepos struct {
	repos    []azdo.Repository
	files    map[string][]azdo.RepoItem // repo → items
	contents map[string]string          // repo + path → content
}

func (f *fakeRepos) ListRepositories(ctx context.Context, project string) ([]azdo.Repository, error) {
	return f.repos, nil
}

func (f *fakeRepos) ListFiles(ctx context.Context, project, repository, path string) ([]azdo.RepoItem, error) {
	items, ok := f.files[repository]
	if !ok {
		return nil, &azdo.Error{Kind: azdo.KindNotFound, Op: "list files", Path: repository}
	}
	return items, nil
}

func (f *fakeRepos) GetFileContent(ctx context.Context, project, repository, path string) (string, error) {
	content, ok := f.contents[repository+path]
	if !ok {
		return "", &azdo.Error{Kind: azdo.KindNotFound, Op: "get file content", Path: path}
	}
	return content, nil
}

// ─── Wiring helpers ──────────────────────────────────────────────────────────

// singleWikiSetup wires a pages.Service and ScopeResolver over one project
// with one wiki, the common case handlers see.
func singleWikiSetup() (*fakeWikiStore, *pages.Service, *ScopeResolver, *config.ProjectContext) {
	store := newFakeWikiStore()
	svc := pages.NewService(store)
	projects := config.NewProjectContext("Fabrikam")
	wikis := &fakeWikis{byProject: map[string][]azdo.Wiki{
		"Fabrikam": {{ID: "w1", Name: "Fabrikam.wiki", Project: "Fabrikam"}},
	}}
	return store, svc, NewScopeResolver(projects, wikis), projects
}

package pages

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dromward/azdo-mcp/internal/azdo"
)

// fakeStore is an in-memory Store with the same concurrency-token semantics
// as the remote: every successful write bumps the revision, and an update
// with a stale token fails with a version conflict.
type fakeStore struct {
	mu    sync.Mutex
	pages map[string]*fakePage

	listCalls   int
	getCalls    int
	createCalls int
	updateCalls int

	// afterGet, when set, runs after each successful GetPage while still
	// holding the lock. Tests use it to simulate an interleaved writer.
	afterGet func(path string)
	// beforeCreate, when set, runs at the start of CreatePage while holding
	// the lock; a non-nil return fails the create with that error.
	beforeCreate func(path string) error
}

type fakePage struct {
	content string
	rev     int
	url     string
	mod     time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{pages: make(map[string]*fakePage)}
}

func (f *fakeStore) seed(path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[path] = &fakePage{content: content, rev: 1, url: "https://wiki.example/" + path}
}

func (f *fakeStore) seedAt(path, content string, mod time.Time) {
	f.seed(path, content)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[path].mod = mod
}

// bump simulates another writer touching path, invalidating outstanding
// tokens.
func (f *fakeStore) bump(path string) {
	if p, ok := f.pages[path]; ok {
		p.rev++
	}
}

func etagFor(rev int) string { return fmt.Sprintf("rev-%d", rev) }

func notFound(op string, scope azdo.Scope, path string) error {
	return &azdo.Error{Kind: azdo.KindNotFound, Op: op, Scope: scope, Path: path}
}

func conflict(op string, scope azdo.Scope, path string) error {
	return &azdo.Error{Kind: azdo.KindVersionConflict, Op: op, Scope: scope, Path: path}
}

func (f *fakeStore) ListPages(ctx context.Context, scope azdo.Scope) ([]azdo.PageInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []azdo.PageInfo
	for path, p := range f.pages {
		out = append(out, azdo.PageInfo{Path: path, URL: p.url, LastModified: p.mod})
	}
	return out, nil
}

func (f *fakeStore) GetPage(ctx context.Context, scope azdo.Scope, path string) (*azdo.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	p, ok := f.pages[path]
	if !ok {
		return nil, notFound("get_wiki_page", scope, path)
	}
	page := &azdo.Page{Path: path, Content: p.content, ETag: etagFor(p.rev), URL: p.url}
	if f.afterGet != nil {
		f.afterGet(path)
	}
	return page, nil
}

func (f *fakeStore) CreatePage(ctx context.Context, scope azdo.Scope, path, content string) (*azdo.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.beforeCreate != nil {
		if err := f.beforeCreate(path); err != nil {
			return nil, err
		}
	}
	if _, exists := f.pages[path]; exists {
		return nil, conflict("create_wiki_page", scope, path)
	}
	f.pages[path] = &fakePage{content: content, rev: 1, url: "https://wiki.example/" + path}
	return &azdo.Page{Path: path, Content: content, ETag: etagFor(1)}, nil
}

func (f *fakeStore) UpdatePage(ctx context.Context, scope azdo.Scope, path, content, etag string) (*azdo.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	p, ok := f.pages[path]
	if !ok {
		return nil, notFound("update_wiki_page", scope, path)
	}
	if etag != etagFor(p.rev) {
		return nil, conflict("update_wiki_page", scope, path)
	}
	p.content = content
	p.rev++
	return &azdo.Page{Path: path, Content: content, ETag: etagFor(p.rev), URL: p.url}, nil
}

func (f *fakeStore) DeletePage(ctx context.Context, scope azdo.Scope, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pages[path]; !ok {
		return notFound("delete_wiki_page", scope, path)
	}
	delete(f.pages, path)
	return nil
}

func (f *fakeStore) content(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pages[path]; ok {
		return p.content
	}
	return ""
}

var testScope = azdo.Scope{Project: "Fabrikam", Wiki: "Fabrikam.wiki"}

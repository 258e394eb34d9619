// Package pages implements the wiki page operations on top of a remote
// page store: conflict-safe writes, title resolution, fuzzy suggestions,
// content search, tree indexing, recency ordering, and best-effort batches.
//
// All read-derived operations (suggest, search, tree, recent) are stateless
// transforms over a fresh listing — nothing is cached, so results can never
// be stale relative to the remote.
package pages

import (
	"context"

	"github.com/dromward/azdo-mcp/internal/azdo"
)

// Store is the remote page store the service mediates. *azdo.Client
// satisfies it; tests use in-memory fakes.
type Store interface {
	ListPages(ctx context.Context, scope azdo.Scope) ([]azdo.PageInfo, error)
	GetPage(ctx context.Context, scope azdo.Scope, path string) (*azdo.Page, error)
	CreatePage(ctx context.Context, scope azdo.Scope, path, content string) (*azdo.Page, error)
	UpdatePage(ctx context.Context, scope azdo.Scope, path, content, etag string) (*azdo.Page, error)
	DeletePage(ctx context.Context, scope azdo.Scope, path string) error
}

// Service exposes the page operations. It holds no mutable state of its
// own; every call goes to the store.
type Service struct {
	store Store
}

// NewService creates a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get reads one page with content.
func (s *Service) Get(ctx context.Context, scope azdo.Scope, path string) (*azdo.Page, error) {
	return s.store.GetPage(ctx, scope, path)
}

// Create creates a page; fails if it already exists.
func (s *Service) Create(ctx context.Context, scope azdo.Scope, path, content string) (*azdo.Page, error) {
	return s.store.CreatePage(ctx, scope, path, content)
}

// Delete removes a page.
func (s *Service) Delete(ctx context.Context, scope azdo.Scope, path string) error {
	return s.store.DeletePage(ctx, scope, path)
}

// List returns the flat page listing for a scope.
func (s *Service) List(ctx context.Context, scope azdo.Scope) ([]azdo.PageInfo, error) {
	return s.store.ListPages(ctx, scope)
}

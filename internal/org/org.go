// Package org aggregates wiki information across every project in the
// organization. Aggregation is best-effort per project: one project's
// failure is recorded and reported alongside the results from the projects
// that succeeded.
package org

import (
	"context"
	"strings"

	"github.com/dromward/azdo-mcp/internal/azdo"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentProjects bounds the fan-out of per-project wiki listings.
const maxConcurrentProjects = 4

// Directory lists projects and their wikis. *azdo.Client satisfies it.
type Directory interface {
	ListProjects(ctx context.Context) ([]azdo.Project, error)
	ListWikis(ctx context.Context, project string) ([]azdo.Wiki, error)
}

// ProjectFailure records one project whose wiki listing failed.
type ProjectFailure struct {
	Project string `json:"project"`
	Error   string `json:"error"`
}

// WikiList is the outcome of a cross-project aggregation: every wiki that
// could be listed, plus a failure record per project that could not.
type WikiList struct {
	Wikis    []azdo.Wiki      `json:"wikis"`
	Failures []ProjectFailure `json:"failures,omitempty"`
}

// Aggregator fans listing calls out across projects.
type Aggregator struct {
	dir Directory
}

// NewAggregator creates an Aggregator over the given directory.
func NewAggregator(dir Directory) *Aggregator {
	return &Aggregator{dir: dir}
}

// ListAllWikis returns every wiki in the organization, tagged with its
// owning project. Projects are queried concurrently but the output keeps
// project listing order, then wiki listing order within each project. A
// project that lists successfully but owns no wikis contributes nothing and
// is not a failure. Only the initial project listing can fail the whole
// call.
func (a *Aggregator) ListAllWikis(ctx context.Context) (*WikiList, error) {
	projects, err := a.dir.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	wikisByProject := make([][]azdo.Wiki, len(projects))
	errsByProject := make([]error, len(projects))

	var g errgroup.Group
	g.SetLimit(maxConcurrentProjects)
	for i, project := range projects {
		g.Go(func() error {
			wikisByProject[i], errsByProject[i] = a.dir.ListWikis(ctx, project.Name)
			return nil
		})
	}
	_ = g.Wait() // goroutines report through the slices, never through errgroup

	out := &WikiList{}
	for i, project := range projects {
		if errsByProject[i] != nil {
			out.Failures = append(out.Failures, ProjectFailure{
				Project: project.Name,
				Error:   errsByProject[i].Error(),
			})
			continue
		}
		out.Wikis = append(out.Wikis, wikisByProject[i]...)
	}
	return out, nil
}

// FindWikiByName aggregates all wikis and keeps those whose name contains
// partialName (case-insensitive). Failures pass through so the caller can
// tell a genuine miss from a partial view.
func (a *Aggregator) FindWikiByName(ctx context.Context, partialName string) (*WikiList, error) {
	all, err := a.ListAllWikis(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(partialName)
	var matched []azdo.Wiki
	for _, w := range all.Wikis {
		if strings.Contains(strings.ToLower(w.Name), needle) {
			matched = append(matched, w)
		}
	}
	return &WikiList{Wikis: matched, Failures: all.Failures}, nil
}

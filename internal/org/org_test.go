package org

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dromward/azdo-mcp/internal/azdo"
)

type fakeDirectory struct {
	mu             sync.Mutex
	projects       []azdo.Project
	wikisByProject map[string][]azdo.Wiki
	failFor        map[string]error
	projectsErr    error
}

func (f *fakeDirectory) ListProjects(ctx context.Context) ([]azdo.Project, error) {
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	return f.projects, nil
}

func (f *fakeDirectory) ListWikis(ctx context.Context, project string) ([]azdo.Wiki, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[project]; ok {
		return nil, err
	}
	return f.wikisByProject[project], nil
}

func projectsNamed(names ...string) []azdo.Project {
	out := make([]azdo.Project, len(names))
	for i, n := range names {
		out[i] = azdo.Project{Name: n}
	}
	return out
}

func wiki(project, name string) azdo.Wiki {
	return azdo.Wiki{ID: project + "/" + name, Name: name, Project: project}
}

func TestListAllWikis_MergesInProjectOrder(t *testing.T) {
	dir := &fakeDirectory{
		projects: projectsNamed("Alpha", "Beta"),
		wikisByProject: map[string][]azdo.Wiki{
			"Alpha": {wiki("Alpha", "Alpha.wiki"), wiki("Alpha", "Design-Notes")},
			"Beta":  {wiki("Beta", "Beta.wiki")},
		},
	}
	agg := NewAggregator(dir)

	got, err := agg.ListAllWikis(context.Background())
	if err != nil {
		t.Fatalf("ListAllWikis: %v", err)
	}
	if len(got.Failures) != 0 {
		t.Errorf("failures = %v, want none", got.Failures)
	}
	wantOrder := []string{"Alpha.wiki", "Design-Notes", "Beta.wiki"}
	if len(got.Wikis) != len(wantOrder) {
		t.Fatalf("wikis = %d, want %d", len(got.Wikis), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got.Wikis[i].Name != want {
			t.Errorf("wikis[%d] = %s, want %s", i, got.Wikis[i].Name, want)
		}
	}
}

func TestListAllWikis_PartialFailure(t *testing.T) {
	dir := &fakeDirectory{
		projects: projectsNamed("Good", "Broken"),
		wikisByProject: map[string][]azdo.Wiki{
			"Good": {wiki("Good", "Good.wiki")},
		},
		failFor: map[string]error{
			"Broken": &azdo.Error{Kind: azdo.KindPermissionDenied, Op: "get_wikis", Scope: azdo.Scope{Project: "Broken"}},
		},
	}
	agg := NewAggregator(dir)

	got, err := agg.ListAllWikis(context.Background())
	if err != nil {
		t.Fatalf("ListAllWikis: %v", err)
	}
	if len(got.Wikis) != 1 || got.Wikis[0].Name != "Good.wiki" {
		t.Errorf("wikis = %+v, want the Good project's wiki", got.Wikis)
	}
	if len(got.Failures) != 1 {
		t.Fatalf("failures = %v, want one", got.Failures)
	}
	if got.Failures[0].Project != "Broken" {
		t.Errorf("failure project = %s, want Broken", got.Failures[0].Project)
	}
	if !strings.Contains(got.Failures[0].Error, "permission denied") {
		t.Errorf("failure error %q should name the cause", got.Failures[0].Error)
	}
}

func TestListAllWikis_EmptyProjectIsNotAFailure(t *testing.T) {
	dir := &fakeDirectory{
		projects: projectsNamed("Empty", "Full"),
		wikisByProject: map[string][]azdo.Wiki{
			"Full": {wiki("Full", "Full.wiki")},
		},
	}
	agg := NewAggregator(dir)

	got, err := agg.ListAllWikis(context.Background())
	if err != nil {
		t.Fatalf("ListAllWikis: %v", err)
	}
	if len(got.Failures) != 0 {
		t.Errorf("failures = %v, want none for an empty project", got.Failures)
	}
	if len(got.Wikis) != 1 {
		t.Errorf("wikis = %+v, want just Full.wiki", got.Wikis)
	}
}

func TestListAllWikis_ProjectListingFailureIsFatal(t *testing.T) {
	dir := &fakeDirectory{projectsErr: errors.New("org unreachable")}
	agg := NewAggregator(dir)

	_, err := agg.ListAllWikis(context.Background())
	if err == nil {
		t.Fatal("expected error when the project listing itself fails")
	}
}

func TestFindWikiByName_CaseInsensitiveSubstring(t *testing.T) {
	dir := &fakeDirectory{
		projects: projectsNamed("Alpha", "Beta"),
		wikisByProject: map[string][]azdo.Wiki{
			"Alpha": {wiki("Alpha", "Team-Handbook")},
			"Beta":  {wiki("Beta", "handbook-archive"), wiki("Beta", "Runbooks")},
		},
	}
	agg := NewAggregator(dir)

	got, err := agg.FindWikiByName(context.Background(), "HANDBOOK")
	if err != nil {
		t.Fatalf("FindWikiByName: %v", err)
	}
	if len(got.Wikis) != 2 {
		t.Fatalf("matches = %+v, want both handbooks", got.Wikis)
	}
	if got.Wikis[0].Name != "Team-Handbook" || got.Wikis[1].Name != "handbook-archive" {
		t.Errorf("order = [%s, %s], want project order preserved", got.Wikis[0].Name, got.Wikis[1].Name)
	}
}

func TestFindWikiByName_NoMatch(t *testing.T) {
	dir := &fakeDirectory{
		projects: projectsNamed("Alpha"),
		wikisByProject: map[string][]azdo.Wiki{
			"Alpha": {wiki("Alpha", "Docs")},
		},
	}
	agg := NewAggregator(dir)

	got, err := agg.FindWikiByName(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("FindWikiByName: %v", err)
	}
	if len(got.Wikis) != 0 {
		t.Errorf("matches = %+v, want none", got.Wikis)
	}
}

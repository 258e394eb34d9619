package pages

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTitleOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/Documentation/API-Guide", "API Guide"},
		{"/Notes/meeting_notes", "meeting notes"},
		{"/Single", "Single"},
		{"no-leading-slash", "no leading slash"},
		{"/Deep/Nested/Page-With_Both", "Page With Both"},
	}
	for _, tt := range tests {
		if got := TitleOf(tt.path); got != tt.want {
			t.Errorf("TitleOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		title   string
		partial string
		want    int
	}{
		{"API Guide", "api guide", 100},
		{"API Guide", "API", 100 * 3 / 9},
		{"API Examples", "api", 100 * 3 / 12},
		{"Random", "api", 0},
		{"API Guide", "", 0},
	}
	for _, tt := range tests {
		if got := matchScore(tt.title, tt.partial); got != tt.want {
			t.Errorf("matchScore(%q, %q) = %d, want %d", tt.title, tt.partial, got, tt.want)
		}
	}
}

func TestFindByTitle_ExactMatch(t *testing.T) {
	store := newFakeStore()
	store.seed("/Documentation/API-Guide", "guide body")
	store.seed("/Documentation/API-Guide-Extended", "extended body")
	svc := NewService(store)

	page, err := svc.FindByTitle(context.Background(), testScope, "API Guide")
	if err != nil {
		t.Fatalf("FindByTitle: %v", err)
	}
	if page.Path != "/Documentation/API-Guide" {
		t.Errorf("path = %q, want the exact-title page", page.Path)
	}
	if page.Content != "guide body" {
		t.Errorf("content = %q, want full content", page.Content)
	}
}

func TestFindByTitle_SubstringFallback(t *testing.T) {
	store := newFakeStore()
	store.seed("/Documentation/API-Guide-Extended", "extended body")
	svc := NewService(store)

	page, err := svc.FindByTitle(context.Background(), testScope, "guide")
	if err != nil {
		t.Fatalf("FindByTitle: %v", err)
	}
	if page.Path != "/Documentation/API-Guide-Extended" {
		t.Errorf("path = %q, want substring match", page.Path)
	}
}

func TestFindByTitle_NotFoundCarriesSuggestions(t *testing.T) {
	store := newFakeStore()
	store.seed("/Documentation/API-Guide", "guide body")
	store.seed("/Notes/Random", "noise")
	svc := NewService(store)

	_, err := svc.FindByTitle(context.Background(), testScope, "API Guode")

	var nf *TitleNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *TitleNotFoundError", err)
	}
	if len(nf.Suggestions) == 0 {
		t.Fatal("no suggestions for a near-miss title")
	}
	if nf.Suggestions[0] != "/Documentation/API-Guide" {
		t.Errorf("top suggestion = %q, want the API guide", nf.Suggestions[0])
	}
	if !strings.Contains(err.Error(), "/Documentation/API-Guide") {
		t.Errorf("error message %q should surface candidates", err)
	}
}

func TestSuggest_RanksAndTruncates(t *testing.T) {
	store := newFakeStore()
	store.seed("/Documentation/API-Guide", "")
	store.seed("/Tutorials/API-Examples", "")
	store.seed("/Notes/Random", "")
	svc := NewService(store)

	got, err := svc.Suggest(context.Background(), testScope, "api", 2)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// "API Guide" (9 chars) covers more of its title than "API Examples"
	// (12 chars), so it ranks first; Random matches nothing.
	if got[0].Path != "/Documentation/API-Guide" || got[1].Path != "/Tutorials/API-Examples" {
		t.Errorf("order = [%s, %s], want API-Guide then API-Examples", got[0].Path, got[1].Path)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("scores = %d, %d, want strictly descending", got[0].Score, got[1].Score)
	}
}

func TestSuggest_ExactMatchScoresHighest(t *testing.T) {
	store := newFakeStore()
	store.seed("/Docs/Deploy", "")
	store.seed("/Docs/Deployment-Guide", "")
	svc := NewService(store)

	got, err := svc.Suggest(context.Background(), testScope, "deploy", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Path != "/Docs/Deploy" || got[0].Score != 100 {
		t.Errorf("top = %+v, want exact match at 100", got[0])
	}
}

func TestSuggest_TiesBreakByPath(t *testing.T) {
	store := newFakeStore()
	// Same title length, both contain "api": identical scores.
	store.seed("/B/API-Notes", "")
	store.seed("/A/API-Notes", "")
	svc := NewService(store)

	got, err := svc.Suggest(context.Background(), testScope, "api", 0)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 || got[0].Path != "/A/API-Notes" {
		t.Errorf("tie order = %+v, want /A path first", got)
	}
}

func TestSearch_ContentMatch(t *testing.T) {
	store := newFakeStore()
	store.seed("/Docs/Setup", "To configure the Widget, open settings and enable widget mode.")
	store.seed("/Docs/Other", "nothing relevant here")
	svc := NewService(store)

	hits, err := svc.Search(context.Background(), testScope, "WIDGET")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Path != "/Docs/Setup" {
		t.Errorf("hit path = %q", hits[0].Path)
	}
	if !strings.Contains(strings.ToLower(hits[0].Preview), "widget") {
		t.Errorf("preview %q should contain the term", hits[0].Preview)
	}
}

func TestSearch_TitleOnlyMatchUsesPrefix(t *testing.T) {
	store := newFakeStore()
	store.seed("/Docs/Widget-Overview", "This page talks about gadgets only.")
	svc := NewService(store)

	hits, err := svc.Search(context.Background(), testScope, "widget")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if !strings.HasPrefix(hits[0].Preview, "This page") {
		t.Errorf("preview %q should be a content prefix", hits[0].Preview)
	}
}

func TestSearch_PreviewIsBounded(t *testing.T) {
	store := newFakeStore()
	long := strings.Repeat("x", 500) + " needle " + strings.Repeat("y", 500)
	store.seed("/Docs/Long", long)
	svc := NewService(store)

	hits, err := svc.Search(context.Background(), testScope, "needle")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if len(hits[0].Preview) > 2*excerptRadius+len("needle")+10 {
		t.Errorf("preview length %d not bounded", len(hits[0].Preview))
	}
	if !strings.Contains(hits[0].Preview, "needle") {
		t.Errorf("preview %q missing the matched term", hits[0].Preview)
	}
}

func TestLongestCommonSubstring(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"api guide", "api guode", 6}, // "api gu"
		{"abc", "xyz", 0},
		{"", "abc", 0},
		{"same", "same", 4},
	}
	for _, tt := range tests {
		if got := longestCommonSubstring(tt.a, tt.b); got != tt.want {
			t.Errorf("longestCommonSubstring(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

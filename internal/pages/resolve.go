package pages

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dromward/azdo-mcp/internal/azdo"
)

// Suggestion is one ranked candidate from Suggest.
type Suggestion struct {
	Path  string `json:"path"`
	URL   string `json:"url,omitempty"`
	Score int    `json:"match_score"`
}

// SearchHit is one content-search result with a bounded excerpt.
type SearchHit struct {
	Path    string `json:"path"`
	URL     string `json:"url,omitempty"`
	Preview string `json:"preview"`
}

// TitleNotFoundError reports a failed title lookup together with the
// closest-titled pages, so the caller can correct itself without another
// listing round-trip.
type TitleNotFoundError struct {
	Title       string
	Scope       azdo.Scope
	Suggestions []string
}

func (e *TitleNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no page titled %q in [%s]", e.Title, e.Scope)
	}
	return fmt.Sprintf("no page titled %q in [%s]; closest matches: %s",
		e.Title, e.Scope, strings.Join(e.Suggestions, ", "))
}

// maxTitleSuggestions bounds the candidate list in TitleNotFoundError.
const maxTitleSuggestions = 5

// FindByTitle resolves a human-readable title to a page and returns it with
// content. Titles derive from the final path segment with separators turned
// into spaces. Exact case-insensitive matches win over substring matches;
// within a tier the lexically first path wins. A miss returns a
// *TitleNotFoundError listing the closest candidates.
func (s *Service) FindByTitle(ctx context.Context, scope azdo.Scope, title string) (*azdo.Page, error) {
	infos, err := s.store.ListPages(ctx, scope)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })

	want := strings.ToLower(strings.TrimSpace(title))
	var substringMatch string
	for _, info := range infos {
		got := strings.ToLower(TitleOf(info.Path))
		if got == want {
			return s.store.GetPage(ctx, scope, info.Path)
		}
		if substringMatch == "" && strings.Contains(got, want) {
			substringMatch = info.Path
		}
	}
	if substringMatch != "" {
		return s.store.GetPage(ctx, scope, substringMatch)
	}

	return nil, &TitleNotFoundError{
		Title:       title,
		Scope:       scope,
		Suggestions: closestTitles(want, infos),
	}
}

// closestTitles ranks paths by the longest common substring between the
// wanted title and each page title.
func closestTitles(want string, infos []azdo.PageInfo) []string {
	type candidate struct {
		path string
		lcs  int
	}
	var cands []candidate
	for _, info := range infos {
		l := longestCommonSubstring(want, strings.ToLower(TitleOf(info.Path)))
		if l >= 2 {
			cands = append(cands, candidate{path: info.Path, lcs: l})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].lcs != cands[j].lcs {
			return cands[i].lcs > cands[j].lcs
		}
		return cands[i].path < cands[j].path
	})
	if len(cands) > maxTitleSuggestions {
		cands = cands[:maxTitleSuggestions]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.path
	}
	return out
}

// Suggest scores every page title against partial and returns the top
// matches. Scoring: an exact case-insensitive title match is 100; a
// substring match scores 100 * len(partial) / len(title), so longer coverage
// of the title ranks higher; titles that do not contain partial are
// excluded. Ties break by path order, so output is deterministic.
func (s *Service) Suggest(ctx context.Context, scope azdo.Scope, partial string, limit int) ([]Suggestion, error) {
	infos, err := s.store.ListPages(ctx, scope)
	if err != nil {
		return nil, err
	}

	var out []Suggestion
	for _, info := range infos {
		score := matchScore(TitleOf(info.Path), partial)
		if score > 0 {
			out = append(out, Suggestion{Path: info.Path, URL: info.URL, Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Path < out[j].Path
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Search returns every page whose title or content contains term
// (case-insensitive), each with a short excerpt around the first content
// match (or a content prefix for title-only matches).
func (s *Service) Search(ctx context.Context, scope azdo.Scope, term string) ([]SearchHit, error) {
	infos, err := s.store.ListPages(ctx, scope)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })

	needle := strings.ToLower(term)
	var hits []SearchHit
	for _, info := range infos {
		titleHit := strings.Contains(strings.ToLower(TitleOf(info.Path)), needle)

		page, err := s.store.GetPage(ctx, scope, info.Path)
		if err != nil {
			if azdo.IsNotFound(err) {
				// Deleted between the listing and the read.
				continue
			}
			return nil, err
		}
		idx := strings.Index(strings.ToLower(page.Content), needle)
		if idx < 0 && !titleHit {
			continue
		}
		hits = append(hits, SearchHit{
			Path:    info.Path,
			URL:     info.URL,
			Preview: excerpt(page.Content, idx, len(term)),
		})
	}
	return hits, nil
}

// TitleOf derives the human-readable title of a page: the final path
// segment with dashes and underscores turned into spaces.
func TitleOf(path string) string {
	seg := path
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	seg = strings.ReplaceAll(seg, "-", " ")
	seg = strings.ReplaceAll(seg, "_", " ")
	return strings.TrimSpace(seg)
}

// matchScore implements the suggestion scoring rule. See Suggest.
func matchScore(title, partial string) int {
	t := strings.ToLower(title)
	p := strings.ToLower(strings.TrimSpace(partial))
	if p == "" || t == "" {
		return 0
	}
	if t == p {
		return 100
	}
	if strings.Contains(t, p) {
		return 100 * len(p) / len(t)
	}
	return 0
}

const (
	excerptRadius = 80
	excerptPrefix = 160
)

// excerpt returns a bounded window of content around the match at idx, or a
// prefix when idx < 0 (title-only match). Window edges are snapped to rune
// boundaries.
func excerpt(content string, idx, matchLen int) string {
	if content == "" {
		return ""
	}
	start, end := 0, len(content)
	if idx >= 0 {
		start = idx - excerptRadius
		end = idx + matchLen + excerptRadius
	} else {
		end = excerptPrefix
	}
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	out := content[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(content) {
		out += "…"
	}
	return out
}

// longestCommonSubstring returns the length of the longest contiguous
// substring shared by a and b. O(len(a)*len(b)) with a rolling row.
func longestCommonSubstring(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	best := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return best
}

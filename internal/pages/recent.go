package pages

import (
	"context"
	"sort"

	"github.com/dromward/azdo-mcp/internal/azdo"
)

// Recent returns up to limit pages ordered by most recent remote activity.
// Pages the remote reports no activity for sort last; all timestamp ties
// break by path order so the output is deterministic.
func (s *Service) Recent(ctx context.Context, scope azdo.Scope, limit int) ([]azdo.PageInfo, error) {
	infos, err := s.store.ListPages(ctx, scope)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool {
		a, b := infos[i], infos[j]
		if !a.LastModified.Equal(b.LastModified) {
			return a.LastModified.After(b.LastModified)
		}
		return a.Path < b.Path
	})
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

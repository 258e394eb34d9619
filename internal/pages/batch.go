package pages

import (
	"context"

	"github.com/dromward/azdo-mcp/internal/azdo"
)

// BatchEntry is one page to create in a batch.
type BatchEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// BatchResult is the outcome for one batch entry, in input order.
type BatchResult struct {
	Path   string     `json:"path"`
	Status string     `json:"status"` // "success" or "failure"
	Page   *azdo.Page `json:"page,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// CreateBatch creates (or updates) each entry independently and reports a
// per-entry outcome in input order. This is deliberately not a transaction:
// one entry failing never stops or rolls back the others. A cancelled
// context stops issuing further writes; already-written pages stay written.
func (s *Service) CreateBatch(ctx context.Context, scope azdo.Scope, entries []BatchEntry) []BatchResult {
	results := make([]BatchResult, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			results = append(results, BatchResult{Path: entry.Path, Status: "failure", Error: err.Error()})
			continue
		}
		page, err := s.CreateOrUpdate(ctx, scope, entry.Path, entry.Content)
		if err != nil {
			results = append(results, BatchResult{Path: entry.Path, Status: "failure", Error: err.Error()})
			continue
		}
		results = append(results, BatchResult{Path: entry.Path, Status: "success", Page: page})
	}
	return results
}

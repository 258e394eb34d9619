package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/dromward/azdo-mcp/internal/azdo"
)

// DefaultMaxRetries is the attempt budget for conflict-safe updates when the
// caller does not choose one.
const DefaultMaxRetries = 3

// conflictRetryDelay spaces out attempts so a racing writer gets a chance to
// finish before the re-read.
const conflictRetryDelay = 25 * time.Millisecond

// ConflictExhaustedError reports that every attempt of a safe update lost
// the concurrency race.
type ConflictExhaustedError struct {
	Scope    azdo.Scope
	Path     string
	Attempts int
}

func (e *ConflictExhaustedError) Error() string {
	return fmt.Sprintf("update of %q in [%s] still conflicting after %d attempts; another writer is actively modifying this page",
		e.Path, e.Scope, e.Attempts)
}

// SafeUpdate overwrites the page at path, absorbing concurrent writers.
// Each attempt reads the page for a fresh concurrency token and writes with
// it; only version conflicts are retried, any other failure propagates
// immediately. maxRetries bounds the total number of attempts (values < 1
// select DefaultMaxRetries). When the budget is exhausted the error is a
// *ConflictExhaustedError carrying the attempt count.
func (s *Service) SafeUpdate(ctx context.Context, scope azdo.Scope, path, content string, maxRetries int) (*azdo.Page, error) {
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}

	var updated *azdo.Page
	attempts := 0
	err := retry.Do(
		func() error {
			attempts++
			current, err := s.store.GetPage(ctx, scope, path)
			if err != nil {
				return err
			}
			p, err := s.store.UpdatePage(ctx, scope, path, content, current.ETag)
			if err != nil {
				return err
			}
			updated = p
			return nil
		},
		retry.Attempts(uint(maxRetries)),
		retry.RetryIf(azdo.IsVersionConflict),
		retry.LastErrorOnly(true),
		retry.Delay(conflictRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
	)
	if err != nil {
		if azdo.IsVersionConflict(err) {
			return nil, &ConflictExhaustedError{Scope: scope, Path: path, Attempts: attempts}
		}
		return nil, err
	}
	return updated, nil
}

// Update overwrites the page at path with a single read-then-write. A
// concurrent writer between the read and the write surfaces as a version
// conflict; use SafeUpdate to absorb that instead.
func (s *Service) Update(ctx context.Context, scope azdo.Scope, path, content string) (*azdo.Page, error) {
	current, err := s.store.GetPage(ctx, scope, path)
	if err != nil {
		return nil, err
	}
	return s.store.UpdatePage(ctx, scope, path, content, current.ETag)
}

// CreateOrUpdate makes the page at path exist with the given content,
// whether or not it exists already. Calling it twice is safe: the second
// call takes the update path and converges on the same final state.
func (s *Service) CreateOrUpdate(ctx context.Context, scope azdo.Scope, path, content string) (*azdo.Page, error) {
	_, err := s.store.GetPage(ctx, scope, path)
	switch {
	case azdo.IsNotFound(err):
		created, createErr := s.store.CreatePage(ctx, scope, path, content)
		if azdo.IsVersionConflict(createErr) {
			// The page appeared between the read and the create; treat it
			// as an update.
			return s.SafeUpdate(ctx, scope, path, content, DefaultMaxRetries)
		}
		return created, createErr
	case err != nil:
		return nil, err
	default:
		return s.SafeUpdate(ctx, scope, path, content, DefaultMaxRetries)
	}
}

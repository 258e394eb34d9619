package azdo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
)

// Kind classifies a remote failure so callers can branch without parsing
// message text.
type Kind int

const (
	// KindUnknown covers failures that fit no other kind.
	KindUnknown Kind = iota
	// KindNotFound: the page, wiki, project, or item does not exist.
	KindNotFound
	// KindVersionConflict: the supplied concurrency token is stale.
	KindVersionConflict
	// KindPermissionDenied: the token lacks access; never retried.
	KindPermissionDenied
	// KindTimeout: the remote call timed out or was cancelled at deadline.
	KindTimeout
	// KindNetwork: transport-level failure before a remote answer.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindVersionConflict:
		return "version conflict"
	case KindPermissionDenied:
		return "permission denied"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network error"
	default:
		return "error"
	}
}

// Error is a remote failure annotated with the operation and the scope/path
// it was attempted against.
type Error struct {
	Kind  Kind
	Op    string
	Scope Scope
	Path  string
	Err   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Scope.Project != "" {
		fmt.Fprintf(&b, " [%s]", e.Scope)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err (anywhere in its chain) is a not-found
// remote failure.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

// IsVersionConflict reports whether err is a stale-concurrency-token failure.
func IsVersionConflict(err error) bool { return kindOf(err) == KindVersionConflict }

// IsPermissionDenied reports whether err is an authorization failure.
func IsPermissionDenied(err error) bool { return kindOf(err) == KindPermissionDenied }

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool { return kindOf(err) == KindTimeout }

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// wrapError classifies a raw SDK/transport error. Classification is by HTTP
// status first, falling back to the SDK's exception type key and then to
// transport inspection.
func wrapError(op string, scope Scope, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: classify(err), Op: op, Scope: scope, Path: path, Err: err}
}

func classify(err error) Kind {
	var wrapped azuredevops.WrappedError
	if errors.As(err, &wrapped) {
		if wrapped.StatusCode != nil {
			switch *wrapped.StatusCode {
			case 404:
				return KindNotFound
			case 409, 412:
				return KindVersionConflict
			case 401, 403:
				return KindPermissionDenied
			case 408, 504:
				return KindTimeout
			}
		}
		if wrapped.TypeKey != nil {
			key := *wrapped.TypeKey
			switch {
			case strings.Contains(key, "NotFound"), strings.Contains(key, "DoesNotExist"):
				return KindNotFound
			case strings.Contains(key, "Conflict"), strings.Contains(key, "AlreadyExists"):
				return KindVersionConflict
			case strings.Contains(key, "Unauthorized"), strings.Contains(key, "AccessDenied"):
				return KindPermissionDenied
			}
		}
		return KindUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		if nerr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}
	return KindUnknown
}

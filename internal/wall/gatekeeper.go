// AngelaMos | 2026
// gatekeeper.go

package wall

import (
	"errors"
	"fmt"

	"github.com/carterperez-dev/mialtar/internal/core"
)

type Operation string

const (
	OpView   Operation = "view"
	OpEdit   Operation = "edit"
	OpDelete Operation = "delete"
)

// Requester identifies who is asking. A zero Requester is an anonymous
// visitor.
type Requester struct {
	UserID        string
	Email         string
	Authenticated bool
}

var ErrDraftLimitReached = errors.New("draft limit reached")

// Authorize is the per-request access decision. It is pure: the edit
// grant is looked up by the caller and passed in, nothing is cached
// between requests.
//
// Owners may do anything with their wall. Anonymous visitors may only
// view, and only the public read path routes anonymous requests here.
// A non-owner may edit when an edit share names their email. Deletion
// is never delegated.
func Authorize(
	w *Wall,
	req Requester,
	op Operation,
	hasEditGrant bool,
) error {
	if w.IsOwnedBy(req.UserID) {
		return nil
	}

	switch op {
	case OpView:
		if !req.Authenticated {
			return nil
		}
		// Authenticated non-owners read through the share or public
		// routes, never through the owner view.
		return fmt.Errorf("view wall %d: %w", w.ID, core.ErrForbidden)
	case OpEdit:
		if req.Authenticated && hasEditGrant {
			return nil
		}
		return fmt.Errorf("edit wall %d: %w", w.ID, core.ErrForbidden)
	case OpDelete:
		return fmt.Errorf("delete wall %d: %w", w.ID, core.ErrForbidden)
	default:
		return fmt.Errorf("unknown operation %q: %w", op, core.ErrForbidden)
	}
}

package workspace

import (
	"context"

	"github.com/google/uuid"
)

// Guard is the single authorization primitive of the module. Every mutation
// and gated query resolves the caller's membership through it; there is no
// separate policy engine. Two levels are derived from the resolved record:
// member (read access) and admin member (write/delete access).
type Guard struct {
	repo Repository
}

// NewGuard creates a new membership guard.
func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// Resolve returns the caller's membership in the workspace, or (nil, nil)
// when none exists.
func (g *Guard) Resolve(ctx context.Context, workspaceID, userID uuid.UUID) (*Member, error) {
	return g.repo.GetMember(ctx, workspaceID, userID)
}

// RequireMember resolves the membership and fails with ErrForbidden when the
// caller does not belong to the workspace.
func (g *Guard) RequireMember(ctx context.Context, workspaceID, userID uuid.UUID) (*Member, error) {
	member, err := g.Resolve(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrForbidden
	}
	return member, nil
}

// RequireAdmin resolves the membership and fails with ErrForbidden unless the
// caller holds the admin role. A plain member is rejected the same way as a
// non-member.
func (g *Guard) RequireAdmin(ctx context.Context, workspaceID, userID uuid.UUID) (*Member, error) {
	member, err := g.Resolve(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.Role.IsAdmin() {
		return nil, ErrForbidden
	}
	return member, nil
}

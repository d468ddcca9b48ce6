package workspace

import (
	"time"

	"github.com/google/uuid"
)

// CreateWorkspaceRequest represents a request to create a workspace.
type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateWorkspaceRequest represents a request to rename a workspace.
type UpdateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// JoinRequest represents a join-code redemption.
type JoinRequest struct {
	JoinCode string `json:"join_code" binding:"required,len=6"`
}

// CreateChannelRequest represents a request to create a channel.
type CreateChannelRequest struct {
	Name string `json:"name" binding:"required,min=3,max=80"`
}

// UpdateChannelRequest represents a request to rename a channel.
type UpdateChannelRequest struct {
	Name string `json:"name" binding:"required,min=3,max=80"`
}

// WorkspaceResponse represents a workspace in API responses. The join code
// is exposed only to the requesting member, never on list endpoints.
type WorkspaceResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts a Workspace to WorkspaceResponse.
func (w *Workspace) ToResponse(includeJoinCode bool) *WorkspaceResponse {
	resp := &WorkspaceResponse{
		ID:        w.ID,
		OwnerID:   w.OwnerID,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if includeJoinCode {
		resp.JoinCode = w.JoinCode
	}
	return resp
}

// MemberResponse represents a membership in API responses.
type MemberResponse struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        Role      `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// ToResponse converts a Member to MemberResponse.
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt,
	}
}

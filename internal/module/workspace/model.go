package workspace

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a workspace member's role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid checks if the role is valid.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// IsAdmin reports whether the role grants write/delete access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Workspace is the top-level tenant grouping users and channels. Its join
// code is a workspace-scoped shared secret permitting self-service joins.
type Workspace struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	JoinCode  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Workspace) TableName() string {
	return "workspaces"
}

// Channel is a named sub-space within a workspace.
type Channel struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	WorkspaceID uuid.UUID `json:"workspace_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Channel) TableName() string {
	return "channels"
}

// Member binds a user to a workspace with a role. The composite primary key
// guarantees at most one membership per (workspace, user) pair, closing the
// check-then-insert race between concurrent joins.
type Member struct {
	WorkspaceID uuid.UUID `json:"workspace_id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;index"`
	Role        Role      `json:"role" gorm:"not null;default:member"`
	JoinedAt    time.Time `json:"joined_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Member) TableName() string {
	return "workspace_members"
}

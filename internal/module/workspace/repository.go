package workspace

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for workspace data access.
type Repository interface {
	// Workspace operations
	CreateWorkspace(ctx context.Context, w *Workspace) error
	GetWorkspaceByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	ListWorkspacesByUser(ctx context.Context, userID uuid.UUID) ([]*Workspace, error)
	UpdateWorkspaceName(ctx context.Context, id uuid.UUID, name string) error
	UpdateJoinCode(ctx context.Context, id uuid.UUID, joinCode string) error
	DeleteWorkspace(ctx context.Context, id uuid.UUID) error

	// Member operations
	AddMember(ctx context.Context, m *Member) error
	GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*Member, error)
	ListMembersByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*Member, error)
	CountMembers(ctx context.Context, workspaceID uuid.UUID) (int, error)
	DeleteMembersByWorkspace(ctx context.Context, workspaceID uuid.UUID) error

	// Channel operations
	CreateChannel(ctx context.Context, ch *Channel) error
	GetChannelByID(ctx context.Context, id uuid.UUID) (*Channel, error)
	ListChannelsByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*Channel, error)
	UpdateChannelName(ctx context.Context, id uuid.UUID, name string) error
	DeleteChannel(ctx context.Context, id uuid.UUID) error
	DeleteChannelsByWorkspace(ctx context.Context, workspaceID uuid.UUID) error

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new workspace repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a new repository bound to the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// BeginTx starts a new transaction.
func (r *repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// ========== Workspace Operations ==========

// CreateWorkspace inserts a new workspace.
func (r *repository) CreateWorkspace(ctx context.Context, w *Workspace) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// GetWorkspaceByID retrieves a workspace by ID.
func (r *repository) GetWorkspaceByID(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	var w Workspace
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &w, nil
}

// ListWorkspacesByUser lists all workspaces the user holds a membership in.
// Memberships pointing at an already deleted workspace drop out of the join.
func (r *repository) ListWorkspacesByUser(ctx context.Context, userID uuid.UUID) ([]*Workspace, error) {
	var workspaces []*Workspace
	err := r.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Order("workspaces.created_at ASC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// UpdateWorkspaceName renames a workspace in place.
func (r *repository) UpdateWorkspaceName(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&Workspace{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

// UpdateJoinCode persists a new join code, invalidating the previous one.
func (r *repository) UpdateJoinCode(ctx context.Context, id uuid.UUID, joinCode string) error {
	result := r.db.WithContext(ctx).
		Model(&Workspace{}).
		Where("id = ?", id).
		Update("join_code", joinCode)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

// DeleteWorkspace hard-deletes a workspace record.
func (r *repository) DeleteWorkspace(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Workspace{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

// ========== Member Operations ==========

// AddMember inserts a membership. Inserting a duplicate (workspace, user)
// pair fails on the composite primary key.
func (r *repository) AddMember(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetMember retrieves a membership, or (nil, nil) when none exists.
func (r *repository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// ListMembersByWorkspace lists all memberships of a workspace.
func (r *repository) ListMembersByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*Member, error) {
	var members []*Member
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembers counts the memberships of a workspace.
func (r *repository) CountMembers(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Member{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// DeleteMembersByWorkspace deletes every membership of a workspace.
func (r *repository) DeleteMembersByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&Member{}).Error
}

// ========== Channel Operations ==========

// CreateChannel inserts a new channel.
func (r *repository) CreateChannel(ctx context.Context, ch *Channel) error {
	return r.db.WithContext(ctx).Create(ch).Error
}

// GetChannelByID retrieves a channel by ID.
func (r *repository) GetChannelByID(ctx context.Context, id uuid.UUID) (*Channel, error) {
	var ch Channel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// ListChannelsByWorkspace lists all channels of a workspace.
func (r *repository) ListChannelsByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*Channel, error) {
	var channels []*Channel
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// UpdateChannelName renames a channel.
func (r *repository) UpdateChannelName(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&Channel{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChannelNotFound
	}
	return nil
}

// DeleteChannel hard-deletes a channel record.
func (r *repository) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Channel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChannelNotFound
	}
	return nil
}

// DeleteChannelsByWorkspace deletes every channel of a workspace.
func (r *repository) DeleteChannelsByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Delete(&Channel{}).Error
}

package workspace

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultChannelName is created alongside every new workspace.
const defaultChannelName = "general"

// Service provides workspace business logic. All authorization flows through
// the Guard; queries collapse "missing" and "not visible" to nil/empty while
// mutations fail with tagged errors.
type Service struct {
	repo      Repository
	guard     *Guard
	infoCache *BasicInfoCache
	logger    *zap.Logger
}

// NewService creates a new workspace service. infoCache may be nil.
func NewService(repo Repository, guard *Guard, infoCache *BasicInfoCache, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		guard:     guard,
		infoCache: infoCache,
		logger:    logger,
	}
}

// ========== Workspace Operations ==========

// CreateWorkspace creates a workspace, an admin membership for the creator,
// and the default channel, as one transaction.
func (s *Service) CreateWorkspace(ctx context.Context, ownerID uuid.UUID, name string) (*Workspace, error) {
	joinCode, err := GenerateJoinCode()
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	w := &Workspace{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Name:     name,
		JoinCode: joinCode,
	}

	if err := txRepo.CreateWorkspace(ctx, w); err != nil {
		return nil, err
	}

	member := &Member{
		WorkspaceID: w.ID,
		UserID:      ownerID,
		Role:        RoleAdmin,
		JoinedAt:    time.Now(),
	}

	if err := txRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	channel := &Channel{
		ID:          uuid.New(),
		WorkspaceID: w.ID,
		Name:        defaultChannelName,
	}

	if err := txRepo.CreateChannel(ctx, channel); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("workspace created",
		zap.String("workspace_id", w.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("name", w.Name),
	)

	return w, nil
}

// GetWorkspace retrieves a workspace for a member. Non-members get nil,
// indistinguishable from a missing workspace.
func (s *Service) GetWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) (*Workspace, error) {
	member, err := s.guard.Resolve(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}

	w, err := s.repo.GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if err == ErrWorkspaceNotFound {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// BasicInfo is the pre-join view of a workspace shown on the invitation
// landing page.
type BasicInfo struct {
	Name     string `json:"name"`
	IsMember bool   `json:"is_member"`
}

// GetWorkspaceBasicInfo returns the workspace name and whether the caller is
// a member. Unlike GetWorkspace it is visible to authenticated non-members.
// A missing workspace yields nil.
func (s *Service) GetWorkspaceBasicInfo(ctx context.Context, workspaceID, userID uuid.UUID) (*BasicInfo, error) {
	if cached, err := s.infoCache.Get(ctx, workspaceID, userID); err == nil && cached != nil {
		return cached, nil
	}

	w, err := s.repo.GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if err == ErrWorkspaceNotFound {
			return nil, nil
		}
		return nil, err
	}

	member, err := s.guard.Resolve(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	info := &BasicInfo{
		Name:     w.Name,
		IsMember: member != nil,
	}

	if err := s.infoCache.Set(ctx, workspaceID, userID, info); err != nil {
		s.logger.Warn("basic info cache set failed", zap.Error(err))
	}

	return info, nil
}

// ListWorkspaces lists the workspaces the caller holds any membership in.
func (s *Service) ListWorkspaces(ctx context.Context, userID uuid.UUID) ([]*Workspace, error) {
	return s.repo.ListWorkspacesByUser(ctx, userID)
}

// UpdateWorkspace renames a workspace. Admin only.
func (s *Service) UpdateWorkspace(ctx context.Context, workspaceID, userID uuid.UUID, name string) (*Workspace, error) {
	if _, err := s.guard.RequireAdmin(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWorkspaceName(ctx, workspaceID, name); err != nil {
		return nil, err
	}

	return s.repo.GetWorkspaceByID(ctx, workspaceID)
}

// DeleteWorkspace deletes a workspace with its memberships and channels, as
// one transaction. Admin only.
func (s *Service) DeleteWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) error {
	if _, err := s.guard.RequireAdmin(ctx, workspaceID, userID); err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.DeleteMembersByWorkspace(ctx, workspaceID); err != nil {
		return err
	}
	if err := txRepo.DeleteChannelsByWorkspace(ctx, workspaceID); err != nil {
		return err
	}
	if err := txRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("workspace deleted",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("deleted_by", userID.String()),
	)

	return nil
}

// RotateJoinCode regenerates the join code, immediately invalidating the old
// one. Admin only.
func (s *Service) RotateJoinCode(ctx context.Context, workspaceID, userID uuid.UUID) (string, error) {
	if _, err := s.guard.RequireAdmin(ctx, workspaceID, userID); err != nil {
		return "", err
	}

	joinCode, err := GenerateJoinCode()
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateJoinCode(ctx, workspaceID, joinCode); err != nil {
		return "", err
	}

	s.logger.Info("join code rotated",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("rotated_by", userID.String()),
	)

	return joinCode, nil
}

// ListMembers lists the memberships of a workspace. Members only; non-members
// get an empty result.
func (s *Service) ListMembers(ctx context.Context, workspaceID, userID uuid.UUID) ([]*Member, error) {
	member, err := s.guard.Resolve(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return []*Member{}, nil
	}

	return s.repo.ListMembersByWorkspace(ctx, workspaceID)
}

// ========== Join Operations ==========

// JoinWorkspace redeems a join code. The workspace must exist, the code must
// match case-insensitively, and the caller must not already be a member —
// joining twice is rejected, not absorbed. On success the caller becomes a
// plain member.
func (s *Service) JoinWorkspace(ctx context.Context, workspaceID, userID uuid.UUID, joinCode string) (*Member, error) {
	w, err := s.repo.GetWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if !JoinCodeMatches(w.JoinCode, joinCode) {
		return nil, ErrInvalidJoinCode
	}

	existing, err := s.guard.Resolve(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	member := &Member{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        RoleMember,
		JoinedAt:    time.Now(),
	}

	// The composite primary key turns a lost race between two concurrent
	// joins into a duplicate-key failure here rather than a second row.
	if err := s.repo.AddMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	if err := s.infoCache.Invalidate(ctx, workspaceID, userID); err != nil {
		s.logger.Warn("basic info cache invalidate failed", zap.Error(err))
	}

	s.logger.Info("member joined",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("user_id", userID.String()),
	)

	return member, nil
}

// ========== Channel Operations ==========

// ListChannels lists the channels of a workspace. Members only; non-members
// get an empty result.
func (s *Service) ListChannels(ctx context.Context, workspaceID, userID uuid.UUID) ([]*Channel, error) {
	member, err := s.guard.Resolve(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return []*Channel{}, nil
	}

	return s.repo.ListChannelsByWorkspace(ctx, workspaceID)
}

// GetChannel retrieves a channel for a member of its parent workspace.
// Non-members and missing channels both yield nil.
func (s *Service) GetChannel(ctx context.Context, channelID, userID uuid.UUID) (*Channel, error) {
	ch, err := s.repo.GetChannelByID(ctx, channelID)
	if err != nil {
		if err == ErrChannelNotFound {
			return nil, nil
		}
		return nil, err
	}

	member, err := s.guard.Resolve(ctx, ch.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}

	return ch, nil
}

// CreateChannel creates a channel in a workspace. Admin only. The name is
// normalized before insertion.
func (s *Service) CreateChannel(ctx context.Context, workspaceID, userID uuid.UUID, name string) (*Channel, error) {
	if _, err := s.guard.RequireAdmin(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	ch := &Channel{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        NormalizeChannelName(name),
	}

	if err := s.repo.CreateChannel(ctx, ch); err != nil {
		return nil, err
	}

	s.logger.Info("channel created",
		zap.String("channel_id", ch.ID.String()),
		zap.String("workspace_id", workspaceID.String()),
		zap.String("name", ch.Name),
	)

	return ch, nil
}

// UpdateChannel renames a channel. Admin on the parent workspace only. The
// name is stored exactly as supplied; normalization is a client convenience
// on the create path only.
func (s *Service) UpdateChannel(ctx context.Context, channelID, userID uuid.UUID, name string) (*Channel, error) {
	ch, err := s.repo.GetChannelByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.RequireAdmin(ctx, ch.WorkspaceID, userID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateChannelName(ctx, channelID, name); err != nil {
		return nil, err
	}

	return s.repo.GetChannelByID(ctx, channelID)
}

// DeleteChannel hard-deletes a channel. Admin on the parent workspace only.
// Channels own nothing, so no cascade is needed.
func (s *Service) DeleteChannel(ctx context.Context, channelID, userID uuid.UUID) error {
	ch, err := s.repo.GetChannelByID(ctx, channelID)
	if err != nil {
		return err
	}

	if _, err := s.guard.RequireAdmin(ctx, ch.WorkspaceID, userID); err != nil {
		return err
	}

	return s.repo.DeleteChannel(ctx, channelID)
}

// ========== Helper Functions ==========

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeChannelName lowercases a channel name and replaces whitespace
// runs with hyphens.
func NormalizeChannelName(name string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(name, "-"))
}

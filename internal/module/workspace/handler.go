package workspace

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadly/server/internal/module/auth"
	"github.com/threadly/server/internal/shared/response"
)

// Handler handles HTTP requests for workspaces and channels.
//
// Query endpoints use optional authentication and never fail on access
// grounds: an anonymous or unauthorized caller gets null/[] with 200, so a
// response does not reveal whether a resource exists. Mutation endpoints
// require authentication and fail with tagged error codes.
type Handler struct {
	service *Service
}

// NewHandler creates a new workspace handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers workspace and channel routes. requireAuth guards
// mutations; optionalAuth resolves identity for query endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	workspaces := r.Group("/workspaces")
	{
		workspaces.POST("", requireAuth, h.CreateWorkspace)
		workspaces.GET("", optionalAuth, h.ListWorkspaces)
		workspaces.GET("/:id", optionalAuth, h.GetWorkspace)
		workspaces.GET("/:id/info", optionalAuth, h.GetWorkspaceBasicInfo)
		workspaces.PATCH("/:id", requireAuth, h.UpdateWorkspace)
		workspaces.DELETE("/:id", requireAuth, h.DeleteWorkspace)
		workspaces.POST("/:id/join-code", requireAuth, h.RotateJoinCode)
		workspaces.POST("/:id/join", requireAuth, h.JoinWorkspace)
		workspaces.GET("/:id/members", optionalAuth, h.ListMembers)

		workspaces.GET("/:id/channels", optionalAuth, h.ListChannels)
		workspaces.POST("/:id/channels", requireAuth, h.CreateChannel)
	}

	channels := r.Group("/channels")
	{
		channels.GET("/:id", optionalAuth, h.GetChannel)
		channels.PATCH("/:id", requireAuth, h.UpdateChannel)
		channels.DELETE("/:id", requireAuth, h.DeleteChannel)
	}
}

// ========== Workspace Handlers ==========

// CreateWorkspace handles workspace creation.
func (h *Handler) CreateWorkspace(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.handleError(c, ErrUnauthenticated)
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	w, err := h.service.CreateWorkspace(c.Request.Context(), userID, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, w.ToResponse(true))
}

// ListWorkspaces handles listing the caller's workspaces.
func (h *Handler) ListWorkspaces(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"workspaces": []*WorkspaceResponse{}})
		return
	}

	workspaces, err := h.service.ListWorkspaces(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]*WorkspaceResponse, len(workspaces))
	for i, w := range workspaces {
		responses[i] = w.ToResponse(false)
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": responses})
}

// GetWorkspace handles getting a workspace by id.
func (h *Handler) GetWorkspace(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	w, err := h.service.GetWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if w == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, w.ToResponse(true))
}

// GetWorkspaceBasicInfo handles the pre-join workspace lookup.
func (h *Handler) GetWorkspaceBasicInfo(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	info, err := h.service.GetWorkspaceBasicInfo(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// UpdateWorkspace handles renaming a workspace.
func (h *Handler) UpdateWorkspace(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.handleError(c, ErrUnauthenticated)
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	w, err := h.service.UpdateWorkspace(c.Request.Context(), workspaceID, userID, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, w.ToResponse(true))
}

// DeleteWorkspace handles workspace deletion.
func (h *Handler) DeleteWorkspace(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.handleError(c, ErrUnauthenticated)
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteWorkspace(c.Request.Context(), workspaceID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": workspaceID})
}

// RotateJoinCode handles regenerating the join code.
func (h *Handler) RotateJoinCode(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.handleError(c, ErrUnauthenticated)
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	joinCode, err := h.service.RotateJoinCode(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": workspaceID, "join_code": joinCode})
}

// JoinWorkspace handles join-code redemption.
func (h *Handler) JoinWorkspace(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.handleError(c, ErrUnauthenticated)
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.service.JoinWorkspace(c.Request.Context(), workspaceID, userID, req.JoinCode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member.ToResponse())
}

// ListMembers handles listing workspace memberships.
func (h *Handler) ListMembers(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"members": []*MemberResponse{}})
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]*MemberResponse, len(members))
	for i, m := range members {
		responses[i] = m.ToResponse()
	}

	c.JSON(http.StatusOK, gin.H{"members": responses})
}

// ========== Channel Handlers ==========

// ListChannels handles listing the channels of a workspace.
func (h *Handler) ListChannels(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"channels": []*Channel{}})
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	channels, err := h.service.ListChannels(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

// GetChannel handles getting a channel by id.
func (h *Handler) GetChannel(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}

	channelID, ok := h.pathID(c)
	if !ok {
		return
	}

	ch, err := h.service.GetChannel(c.Request.Context(), channelID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ch)
}

// CreateChannel handles channel creation.
func (h *Handler) CreateChannel(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.handleError(c, ErrUnauthenticated)
		return
	}

	workspaceID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ch, err := h.service.CreateChannel(c.Request.Context(), workspaceID, userID, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ch)
}

// UpdateChannel handles renaming a channel.
func (h *Handler) UpdateChannel(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.handleError(c, ErrUnauthenticated)
		return
	}

	channelID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ch, err := h.service.UpdateChannel(c.Request.Context(), channelID, userID, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ch)
}

// DeleteChannel handles channel deletion.
func (h *Handler) DeleteChannel(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		h.handleError(c, ErrUnauthenticated)
		return
	}

	channelID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteChannel(c.Request.Context(), channelID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": channelID})
}

// ========== Helper Methods ==========

// pathID parses the :id path parameter.
func (h *Handler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// ========== Error Handling ==========

var errorMappings = []response.ErrorMapping{
	{Err: ErrUnauthenticated, Status: http.StatusUnauthorized, Code: "unauthenticated"},
	{Err: ErrForbidden, Status: http.StatusForbidden, Code: "forbidden"},
	{Err: ErrWorkspaceNotFound, Status: http.StatusNotFound, Code: "workspace_not_found"},
	{Err: ErrChannelNotFound, Status: http.StatusNotFound, Code: "channel_not_found"},
	{Err: ErrInvalidJoinCode, Status: http.StatusForbidden, Code: "invalid_join_code"},
	{Err: ErrAlreadyMember, Status: http.StatusConflict, Code: "already_member"},
}

func (h *Handler) handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, errorMappings)
}

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadly/server/internal/module/user"
	"github.com/threadly/server/internal/shared/response"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers auth routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", h.RequireAuth(), h.Me)
	}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents an issued access token.
type TokenResponse struct {
	User        *user.User `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

// Register handles account creation.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, token, expiresAt, err := h.service.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{User: u, AccessToken: token, ExpiresAt: expiresAt})
}

// Login handles credential verification.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, token, expiresAt, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{User: u, AccessToken: token, ExpiresAt: expiresAt})
}

// Me returns the authenticated account.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	u, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// --- Middleware ---

// userIDKey is the gin context key the middleware sets for the caller identity.
const userIDKey = "user_id"

// RequireAuth returns a middleware that rejects requests without a valid
// bearer token. Mutation routes use this: absent identity is a hard failure.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.bearerClaims(c)
		if !ok {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// OptionalAuth returns a middleware that resolves the caller identity when a
// valid bearer token is present and continues anonymously otherwise. Query
// routes use this: handlers short-circuit to null/empty without an identity.
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := h.bearerClaims(c); ok {
			c.Set(userIDKey, claims.UserID)
			c.Set("email", claims.Email)
		}
		c.Next()
	}
}

// bearerClaims extracts and validates the Authorization header.
func (h *Handler) bearerClaims(c *gin.Context) (*Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, false
	}

	claims, err := h.service.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

// CurrentUserID returns the authenticated user id from the gin context.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// --- Error Handling ---

var errorMappings = []response.ErrorMapping{
	{Err: ErrEmailTaken, Status: http.StatusConflict, Code: "email_taken"},
	{Err: ErrInvalidCredentials, Status: http.StatusUnauthorized, Code: "invalid_credentials"},
	{Err: ErrInvalidToken, Status: http.StatusUnauthorized, Code: "invalid_token"},
	{Err: ErrInvalidTokenClaims, Status: http.StatusUnauthorized, Code: "invalid_token"},
	{Err: user.ErrUserNotFound, Status: http.StatusNotFound, Code: "user_not_found"},
}

func (h *Handler) handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, errorMappings)
}

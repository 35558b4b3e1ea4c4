package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"honestspace/server/internal/apperrors"
	"honestspace/server/internal/auth"
	"honestspace/server/internal/models"
)

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	UserTypeName    string `json:"user_type_name"`
}

type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Register creates an account. The role defaults to tenant when the
// request names none; the admin role can never be self-assigned.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "detail": err.Error()})
		return
	}
	if req.Password != req.PasswordConfirm {
		h.respondError(c, apperrors.NewField("password_confirm", "passwords do not match"))
		return
	}

	role := models.RoleTenant
	if req.UserTypeName != "" {
		if !models.ValidRole(req.UserTypeName) || models.Role(req.UserTypeName) == models.RoleAdmin {
			h.respondError(c, apperrors.NewField("user_type_name", "unknown account type"))
			return
		}
		role = models.Role(req.UserTypeName)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         role,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	if err := h.db.CreateUser(user); err != nil {
		h.respondError(c, err)
		return
	}

	h.recordActivity(user.ID, "register", "account created", c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusCreated, user)
}

// CreateToken is the login endpoint: it verifies credentials and issues an
// access/refresh pair. The failure message never reveals whether the email
// exists.
func (h *Handler) CreateToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !user.CanAuthenticate() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended or deactivated"})
		return
	}

	pair, err := h.jwt.GeneratePair(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.db.TouchLastLogin(user.ID, time.Now()); err != nil {
		h.logger.WithError(err).Warn("Failed to stamp last login")
	}
	h.recordActivity(user.ID, "login", "token pair issued", c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, pair)
}

// RefreshToken exchanges a live refresh token for a new pair. A blacklisted
// refresh token is rejected exactly like an expired one.
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	claims, err := h.jwt.ValidateToken(req.Refresh, auth.TokenKindRefresh)
	if err != nil {
		h.respondError(c, err)
		return
	}

	revoked, err := h.blacklist.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if revoked {
		h.respondError(c, apperrors.New(apperrors.CodeAuthentication, "token has been revoked"))
		return
	}

	userID, err := auth.UserIDFromClaims(claims)
	if err != nil {
		h.respondError(c, err)
		return
	}
	user, err := h.db.GetUserByID(userID)
	if err != nil || !user.CanAuthenticate() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account cannot authenticate"})
		return
	}

	pair, err := h.jwt.GeneratePair(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// BlacklistToken revokes a refresh token for its remaining lifetime.
// Logout flows call this so a stolen refresh token dies with the session.
func (h *Handler) BlacklistToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	claims, err := h.jwt.ValidateToken(req.Refresh, auth.TokenKindRefresh)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.blacklist.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Token blacklisted"})
}

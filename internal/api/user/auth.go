package user

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/schema"
	"blog-backend/internal/service"
	"blog-backend/internal/util"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration and session requests.
type AuthHandler struct {
	userService service.UserServiceInterface
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// Register creates a new user. The body is run through the user input
// schema, so alternate field names and the nested name block are accepted
// and the password is hashed before it ever reaches the service.
func (h *AuthHandler) Register(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}

	rec, err := model.UserCreateSchema.Construct(schema.Raw(raw))
	if err != nil {
		util.Logger.Warn("user validation failed", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request data", err))
		return
	}

	user, err := h.userService.Register(model.UserCreateFromRecord(rec))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse(nil))
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request data", err))
		return
	}

	user, err := h.userService.Login(loginData.Email, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "failed to generate token", err))
		return
	}

	errors.HandleSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user.ToResponse(nil),
	}, "login successful")
}

// RefreshToken exchanges the caller's still-valid token for a fresh one.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		errors.HandleError(c, errors.New(errors.ErrUnauthorized, "invalid authorization header"))
		return
	}

	token, err := util.RefreshToken(parts[1])
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "invalid or expired token", err))
		return
	}

	errors.HandleSuccess(c, http.StatusOK, gin.H{"token": token}, "token refreshed")
}

// Logout revokes the caller's token.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		h.userService.Logout(parts[1])
	}
	errors.HandleSuccess(c, http.StatusOK, nil, "logged out")
}

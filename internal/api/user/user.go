package user

import (
	"blog-backend/config"
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/schema"
	"blog-backend/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user resource requests.
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{userService}
}

// GetUser returns a single user with their posts. When the alias query
// flag is set the user is projected through the output schema with
// camelCase field names instead.
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	if useAliases, _ := strconv.ParseBool(c.Query("alias")); useAliases {
		user, err := h.userService.GetUserByID(id)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
		rec := model.UserRecord(user)
		c.JSON(http.StatusOK, model.UserOutSchema.Project(rec, schema.WithAliases()))
		return
	}

	resp, err := h.userService.GetUserWithPosts(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListUsers returns a page of users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(config.AppConfig.DefaultPageSize)))

	users, total, err := h.userService.ListUsers(page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	responses := make([]*model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse(nil))
	}

	errors.HandleSuccess(c, http.StatusOK, gin.H{
		"users": responses,
		"total": total,
		"page":  page,
	}, "users retrieved")
}

// UpdateUser updates the caller's own profile.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if c.GetString("user_id") != id {
		errors.HandleError(c, errors.New(errors.ErrForbidden, "cannot modify another user"))
		return
	}

	var update model.UserUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request data", err))
		return
	}

	user, err := h.userService.UpdateUser(id, &update)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, user.ToResponse(nil), "user updated")
}

// DeleteUser removes the caller's own account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if c.GetString("user_id") != id {
		errors.HandleError(c, errors.New(errors.ErrForbidden, "cannot delete another user"))
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

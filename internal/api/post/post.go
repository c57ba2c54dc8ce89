package post

import (
	"blog-backend/config"
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/schema"
	"blog-backend/internal/service"
	"blog-backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler handles post resource requests.
type PostHandler struct {
	postService service.PostServiceInterface
}

// NewPostHandler creates a new PostHandler instance.
func NewPostHandler(postService service.PostServiceInterface) *PostHandler {
	return &PostHandler{postService}
}

// CreatePost creates a new post. The body is run through the post input
// schema, which fills in the draft status and empty tag list when the
// caller omits them. A missing author_id falls back to the caller.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}

	if _, ok := raw["author_id"]; !ok {
		raw["author_id"] = c.GetString("user_id")
	}

	rec, err := model.PostCreateSchema.Construct(schema.Raw(raw))
	if err != nil {
		util.Logger.Warn("post validation failed", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request data", err))
		return
	}

	post, err := h.postService.CreatePost(model.PostCreateFromRecord(rec))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post.ToResponse())
}

// GetPost returns a post with its author and comments. Each read bumps
// the view counter.
func (h *PostHandler) GetPost(c *gin.Context) {
	resp, err := h.postService.GetPostDetail(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPosts returns a page of posts, optionally filtered by status.
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(config.AppConfig.DefaultPageSize)))
	status := c.Query("status")

	if status != "" && !model.PostStatus(status).Valid() {
		errors.HandleError(c, errors.New(errors.ErrValidation, "unknown post status: "+status))
		return
	}

	posts, total, err := h.postService.ListPosts(page, pageSize, model.PostStatus(status))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	responses := make([]*model.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, p.ToResponse())
	}

	errors.HandleSuccess(c, http.StatusOK, gin.H{
		"posts": responses,
		"total": total,
		"page":  page,
	}, "posts retrieved")
}

// UpdatePost applies a partial update to the caller's own post.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.postService.GetPost(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if existing.AuthorID != c.GetString("user_id") {
		errors.HandleError(c, errors.New(errors.ErrForbidden, "cannot modify another user's post"))
		return
	}

	var update model.PostUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request data", err))
		return
	}

	post, err := h.postService.UpdatePost(id, &update)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, http.StatusOK, post.ToResponse(), "post updated")
}

// DeletePost removes the caller's own post and its comments.
func (h *PostHandler) DeletePost(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.postService.GetPost(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if existing.AuthorID != c.GetString("user_id") {
		errors.HandleError(c, errors.New(errors.ErrForbidden, "cannot delete another user's post"))
		return
	}

	if err := h.postService.DeletePost(id); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

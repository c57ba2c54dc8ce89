package comment

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/schema"
	"blog-backend/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CommentHandler handles comment resource requests.
type CommentHandler struct {
	commentService service.CommentServiceInterface
}

// NewCommentHandler creates a new CommentHandler instance.
func NewCommentHandler(commentService service.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{commentService}
}

// CreateComment adds a comment to a post. The author is always the
// authenticated caller, regardless of what the body claims.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}

	rec, err := model.CommentCreateSchema.Construct(schema.Raw(raw))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request data", err))
		return
	}

	comment, err := h.commentService.CreateComment(
		c.Param("id"),
		model.CommentCreateFromRecord(rec, c.GetString("user_id")),
	)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment.ToResponse())
}

// ListComments returns all comments on a post, oldest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentService.ListComments(c.Param("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	responses := make([]*model.CommentResponse, 0, len(comments))
	for _, cm := range comments {
		responses = append(responses, cm.ToResponse())
	}

	c.JSON(http.StatusOK, responses)
}

// DeleteComment removes the caller's own comment.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	err := h.commentService.DeleteComment(c.Param("comment_id"), c.GetString("user_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

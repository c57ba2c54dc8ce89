package comment

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/util"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
	os.Exit(m.Run())
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(postID string, cc *model.CommentCreate) (*model.Comment, error) {
	args := m.Called(postID, cc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) ListComments(postID string) ([]*model.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(id, requesterID string) error {
	return m.Called(id, requesterID).Error(0)
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateComment(t *testing.T) {
	mockSvc := new(MockCommentService)
	mockSvc.On("CreateComment", "p1", mock.AnythingOfType("*model.CommentCreate")).Return(&model.Comment{
		ID:       "c1",
		PostID:   "p1",
		AuthorID: "u1",
		Content:  "nice post",
	}, nil)

	r := gin.New()
	r.POST("/api/posts/:id/comments", func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Next()
	}, NewCommentHandler(mockSvc).CreateComment)

	w := performRequest(r, "POST", "/api/posts/p1/comments", gin.H{
		"content":   "nice post",
		"author_id": "someone-else",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	created := mockSvc.Calls[0].Arguments.Get(1).(*model.CommentCreate)
	assert.Equal(t, "u1", created.AuthorID)
	mockSvc.AssertExpectations(t)
}

func TestCreateCommentMissingContent(t *testing.T) {
	mockSvc := new(MockCommentService)

	r := gin.New()
	r.POST("/api/posts/:id/comments", NewCommentHandler(mockSvc).CreateComment)

	w := performRequest(r, "POST", "/api/posts/p1/comments", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "CreateComment")
}

func TestListComments(t *testing.T) {
	mockSvc := new(MockCommentService)
	mockSvc.On("ListComments", "p1").Return([]*model.Comment{
		{ID: "c1", PostID: "p1", AuthorID: "u1", Content: "first"},
		{ID: "c2", PostID: "p1", AuthorID: "u2", Content: "second"},
	}, nil)

	r := gin.New()
	r.GET("/api/posts/:id/comments", NewCommentHandler(mockSvc).ListComments)

	w := performRequest(r, "GET", "/api/posts/p1/comments", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*model.CommentResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "first", resp[0].Content)
	mockSvc.AssertExpectations(t)
}

func TestDeleteCommentNotOwner(t *testing.T) {
	mockSvc := new(MockCommentService)
	mockSvc.On("DeleteComment", "c1", "u2").
		Return(errors.New(errors.ErrForbidden, "cannot delete another user's comment"))

	r := gin.New()
	r.DELETE("/api/comments/:comment_id", func(c *gin.Context) {
		c.Set("user_id", "u2")
		c.Next()
	}, NewCommentHandler(mockSvc).DeleteComment)

	w := performRequest(r, "DELETE", "/api/comments/c1", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertExpectations(t)
}

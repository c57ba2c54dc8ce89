package middleware

import (
	"blog-backend/internal/errors"
	"blog-backend/internal/util"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
	os.Exit(m.Run())
}

func TestErrorMonitorRecordsHandledErrors(t *testing.T) {
	monitor := NewErrorMonitor()

	r := gin.New()
	r.Use(ErrorMonitorMiddleware(monitor))
	r.GET("/missing", func(c *gin.Context) {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "post not found"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	counts := monitor.GetErrorCounts()
	assert.Equal(t, 1, counts[errors.ErrPostNotFound])
}

func TestErrorMonitorIgnoresSuccesses(t *testing.T) {
	monitor := NewErrorMonitor()

	r := gin.New()
	r.Use(ErrorMonitorMiddleware(monitor))
	r.GET("/ok", func(c *gin.Context) {
		errors.HandleSuccess(c, http.StatusOK, nil, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, monitor.GetErrorCounts())
}

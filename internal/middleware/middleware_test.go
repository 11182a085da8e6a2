package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/fail", func(c *gin.Context) {
		c.Error(errors.New("boom"))
		c.Status(http.StatusInternalServerError)
	})
	return router
}

func TestTokenRequired(t *testing.T) {
	testCases := []struct {
		name           string
		token          string
		header         string
		expectedStatus int
	}{
		{"Open when no token configured", "", "", http.StatusOK},
		{"Missing header", "secret", "", http.StatusUnauthorized},
		{"Wrong scheme", "secret", "Basic secret", http.StatusUnauthorized},
		{"Wrong token", "secret", "Bearer other", http.StatusUnauthorized},
		{"Matching token", "secret", "Bearer secret", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newRouter(TokenRequired(tc.token))

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error": "Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	router := newRouter(RequestLogger(log))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "/ping", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	entry = hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, http.StatusInternalServerError, entry.Data["status"])
	assert.NotNil(t, entry.Data[logrus.ErrorKey])
}

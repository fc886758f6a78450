package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/photoshare/pkg/auth"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := auth.NewSigner("secret", time.Hour)
	token, err := signer.GenerateAccessToken(42, "a@b.c", "A")
	require.NoError(t, err)

	var seen int64
	router := gin.New()
	router.GET("/required", AuthMiddleware(signer), func(c *gin.Context) { seen = UserID(c) })
	router.GET("/optional", OptionalAuth(signer), func(c *gin.Context) { seen = UserID(c) })

	call := func(path, header string) int {
		seen = -1
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("/required", "Bearer "+token))
	assert.Equal(t, int64(42), seen)

	assert.Equal(t, http.StatusUnauthorized, call("/required", ""))
	assert.Equal(t, int64(-1), seen)
	assert.Equal(t, http.StatusUnauthorized, call("/required", "Bearer nope"))

	assert.Equal(t, http.StatusOK, call("/optional", ""))
	assert.Zero(t, seen)
	assert.Equal(t, http.StatusOK, call("/optional", "bearer "+token))
	assert.Equal(t, int64(42), seen)
}

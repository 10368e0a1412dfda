package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"renovation-crm/internal/database"
	"renovation-crm/internal/middleware"
	"renovation-crm/internal/models"
	"renovation-crm/internal/testutil"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminSecret = "test-admin-secret"

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("crm_session", cookie.NewStore([]byte("0123456789abcdef0123456789abcdef"))))
	r.Use(middleware.InjectIdentity(adminSecret))

	whoami := func(c *gin.Context) {
		id, _ := middleware.CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"admin": id.IsAdmin(), "service": id.ServiceAccount, "user": id.UserID()})
	}
	r.GET("/auth", middleware.RequireAuth(), whoami)
	r.POST("/auth", middleware.RequireAuth(), whoami)
	r.GET("/admin-only", middleware.RequireAuth(), middleware.RequireAdmin(), whoami)
	r.GET("/console", middleware.RequireConsoleAuth(), whoami)
	return r
}

func do(r http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	testutil.SetupDB(t)
	r := newEngine()

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := do(r, method, "/auth", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, method)
		assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
	}

	w := do(r, http.MethodGet, "/auth?secret=wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/auth", http.Header{"Authorization": {"Bearer nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSecretIsServiceAccount(t *testing.T) {
	testutil.SetupDB(t)
	r := newEngine()

	w := do(r, http.MethodGet, "/admin-only?secret="+adminSecret, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin":true,"service":true,"user":""}`, w.Body.String())

	w = do(r, http.MethodGet, "/admin-only", http.Header{middleware.AdminSecretHeader: {adminSecret}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/admin-only", http.Header{"Authorization": {"Bearer " + adminSecret}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionTokenResolvesUser(t *testing.T) {
	testutil.SetupDB(t)
	r := newEngine()

	user, err := database.CreateUser("worker@example.com", "worker-pass", models.RoleUser, "Worker")
	require.NoError(t, err)
	token, err := database.CreateSession(user.ID)
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/auth", http.Header{"Authorization": {"Bearer " + token}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin":false,"service":false,"user":"`+user.ID+`"}`, w.Body.String())

	w = do(r, http.MethodGet, "/auth?secret="+token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/admin-only", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminUserPassesRequireAdmin(t *testing.T) {
	testutil.SetupDB(t)
	r := newEngine()

	user, err := database.CreateUser("boss@example.com", "boss-pass", models.RoleAdmin, "Boss")
	require.NoError(t, err)
	token, err := database.CreateSession(user.ID)
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/admin-only", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConsoleRedirectsToLogin(t *testing.T) {
	testutil.SetupDB(t)
	r := newEngine()

	w := do(r, http.MethodGet, "/console", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestRequestIDHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := do(r, http.MethodGet, "/", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(r, http.MethodGet, "/", http.Header{"X-Request-Id": {"abc"}})
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}

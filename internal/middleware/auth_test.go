// internal/middleware/auth_test.go
package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/database"
	"github.com/shopworks/storefront-backend/internal/models"
	"github.com/shopworks/storefront-backend/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:  "test-secret",
		TTLDays:    30,
		CookieName: "jwt",
	}
}

func newGateRouter(db *gorm.DB, cfg config.JWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	whoami := func(c *gin.Context) {
		principal, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, principal)
	}
	r.GET("/me", append(Require(Authenticated, db, cfg), whoami)...)
	r.GET("/admin", append(Require(AdminOnly, db, cfg), whoami)...)
	r.GET("/open", append(Require(Public, db, cfg), whoami)...)
	return r
}

func seedUser(t *testing.T, db *gorm.DB, isAdmin bool) (*models.User, string) {
	t.Helper()

	user := &models.User{Name: "john", Email: fmt.Sprintf("%t-john@email.com", isAdmin), IsAdmin: isAdmin}
	require.NoError(t, user.SetPassword("123456"))
	require.NoError(t, db.Create(user).Error)

	token, err := utils.GenerateSessionToken(user.ID, time.Hour)
	require.NoError(t, err)
	return user, token
}

func TestAuthenticateNoToken(t *testing.T) {
	r := newGateRouter(newTestDB(t), testJWTConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized, no token"}`, w.Body.String())
}

func TestAuthenticateBadToken(t *testing.T) {
	r := newGateRouter(newTestDB(t), testJWTConfig())

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized, token failed"}`, w.Body.String())
}

func TestAuthenticateCookie(t *testing.T) {
	db := newTestDB(t)
	r := newGateRouter(db, testJWTConfig())
	user, token := seedUser(t, db, false)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.Email)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthenticateBearerFallback(t *testing.T) {
	db := newTestDB(t)
	r := newGateRouter(db, testJWTConfig())
	_, token := seedUser(t, db, false)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	db := newTestDB(t)
	r := newGateRouter(db, testJWTConfig())
	user, token := seedUser(t, db, false)
	require.NoError(t, db.Delete(user).Error)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized, token failed"}`, w.Body.String())
}

func TestAdminGate(t *testing.T) {
	db := newTestDB(t)
	r := newGateRouter(db, testJWTConfig())
	_, userToken := seedUser(t, db, false)
	_, adminToken := seedUser(t, db, true)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: userToken})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized as admin"}`, w.Body.String())

	req = httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: adminToken})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequiredWithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/admin", nil)

	AdminRequired()(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, c.IsAborted())
}

func TestPublicHasNoGate(t *testing.T) {
	r := newGateRouter(newTestDB(t), testJWTConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

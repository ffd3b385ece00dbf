// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopworks/storefront-backend/internal/apperrors"
	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:  "test-secret",
			TTLDays:    30,
			CookieName: "jwt",
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, token, err := svc.Register(&RegisterRequest{Name: "john", Email: "john@email.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "john@email.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "123456", user.Password)

	claims, err := utils.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	logged, _, err := svc.Login(&LoginRequest{Email: "john@email.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, _, err := svc.Register(&RegisterRequest{Name: "john", Email: "john@email.com", Password: "123456"})
	require.NoError(t, err)

	_, _, err = svc.Register(&RegisterRequest{Name: "john2", Email: "john@email.com", Password: "123456"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Equal(t, "User already exists", err.Error())
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, _, err := svc.Register(&RegisterRequest{Name: "john", Email: "john@email.com", Password: "123456"})
	require.NoError(t, err)

	_, _, err = svc.Login(&LoginRequest{Email: "john@email.com", Password: "wrong"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthenticated))

	_, _, err = svc.Login(&LoginRequest{Email: "nobody@email.com", Password: "123456"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthenticated))
}

func TestUpdateProfilePassword(t *testing.T) {
	db := newTestDB(t)
	authSvc := NewAuthService(db, testConfig())
	userSvc := NewUserService(db)

	user, _, err := authSvc.Register(&RegisterRequest{Name: "john", Email: "john@email.com", Password: "123456"})
	require.NoError(t, err)

	_, err = userSvc.UpdateProfile(user.ID, &UpdateProfileRequest{Name: "Johnny", Password: "newpass123"})
	require.NoError(t, err)

	logged, _, err := authSvc.Login(&LoginRequest{Email: "john@email.com", Password: "newpass123"})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", logged.Name)
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "john", "john@email.com", false)
	jane := createTestUser(t, db, "jane", "jane@email.com", false)

	_, err := svc.UpdateProfile(jane.ID, &UpdateProfileRequest{Email: "john@email.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Equal(t, "Email already in use", err.Error())
}

func TestAdminUpdateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "john", "john@email.com", false)
	jane := createTestUser(t, db, "jane", "jane@email.com", false)

	_, err := svc.AdminUpdate(jane.ID, &AdminUpdateUserRequest{Email: "john@email.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestDeleteAdminForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := createTestUser(t, db, "admin", "admin@email.com", true)

	err := svc.Delete(admin.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidRequest))
	assert.Equal(t, "Can not delete admin user", err.Error())

	// Still fetchable afterwards.
	_, err = svc.GetByID(admin.ID)
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "john", "john@email.com", false)

	require.NoError(t, svc.Delete(user.ID))

	_, err := svc.GetByID(user.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.Equal(t, "User not found", err.Error())
}

func TestDeleteMissingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	err := svc.Delete(404)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestAdminUpdateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "john", "john@email.com", false)

	promote := true
	updated, err := svc.AdminUpdate(user.ID, &AdminUpdateUserRequest{Name: "John Q", IsAdmin: &promote})
	require.NoError(t, err)
	assert.Equal(t, "John Q", updated.Name)
	assert.True(t, updated.IsAdmin)

	// Omitting isAdmin leaves the flag untouched.
	updated, err = svc.AdminUpdate(user.ID, &AdminUpdateUserRequest{Email: "johnq@email.com"})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, "johnq@email.com", updated.Email)
}

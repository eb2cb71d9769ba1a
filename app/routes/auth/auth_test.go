package auth

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.AppConfig = &config.Config{JWTSecret: []byte("test-secret")}
}

// mockDB swaps the global config for one backed by sqlmock and restores
// the JWT secret the token helpers expect.
func mockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	config.AppConfig = &config.Config{DB: db, JWTSecret: []byte("test-secret")}
	return mock
}

func expectSessionFound(mock sqlmock.Sqlmock, sessionID string) {
	rows := sqlmock.NewRows([]string{"id", "user_id", "expires_at", "created_at"}).
		AddRow(sessionID, "u-1", time.Now().Add(time.Hour), time.Now())
	mock.ExpectQuery("SELECT id, user_id, expires_at, created_at FROM sessions").
		WithArgs(sessionID).
		WillReturnRows(rows)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{
		ID:        "u-1",
		Username:  "admin",
		FirstName: "Admin",
		LastName:  "User",
		Role:      models.RoleAdmin,
	}

	token, err := GenerateJWT(user, "session-1")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "session-1", claims.ID)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	require.Error(t, err)
}

func testApp(roles ...models.Role) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddleware}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	app.Get("/api/protected", append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": c.Locals("username")})
	})...)
	return app
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("GET", "/api/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	mock := mockDB(t)
	expectSessionFound(mock, "s-1")
	app := testApp()

	token, err := GenerateJWT(&models.User{ID: "u-1", Username: "staffer", Role: models.RoleStaff}, "s-1")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A valid signature is not enough once logout has deleted the session row.
func TestAuthMiddlewareRejectsRevokedSession(t *testing.T) {
	mock := mockDB(t)
	mock.ExpectQuery("SELECT id, user_id, expires_at, created_at FROM sessions").
		WithArgs("s-gone").
		WillReturnError(sql.ErrNoRows)
	app := testApp()

	token, err := GenerateJWT(&models.User{ID: "u-1", Username: "staffer", Role: models.RoleStaff}, "s-gone")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		allowed    []models.Role
		wantStatus int
	}{
		{
			name:       "staff blocked from admin route",
			role:       models.RoleStaff,
			allowed:    []models.Role{models.RoleAdmin},
			wantStatus: 403,
		},
		{
			name:       "admin passes admin route",
			role:       models.RoleAdmin,
			allowed:    []models.Role{models.RoleAdmin},
			wantStatus: 200,
		},
		{
			name:       "super_admin passes every check",
			role:       models.RoleSuperAdmin,
			allowed:    []models.Role{models.RoleAdmin},
			wantStatus: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := mockDB(t)
			expectSessionFound(mock, "s-1")
			app := testApp(tt.allowed...)

			token, err := GenerateJWT(&models.User{ID: "u-1", Username: "u", Role: tt.role}, "s-1")
			require.NoError(t, err)

			req := httptest.NewRequest("GET", "/api/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

const userSelectColumns = "id, username, email, password, first_name, last_name, role, status, last_login, created_at, updated_at"

// Unknown user, inactive account and wrong password must all fail with the
// same message so the response does not reveal which check tripped.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	hash, err := HashPassword("right-password")
	require.NoError(t, err)

	userRow := func(status models.UserStatus) *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "username", "email", "password", "first_name", "last_name",
			"role", "status", "last_login", "created_at", "updated_at",
		}).AddRow("u-1", "admin", "admin@school.com", hash, "Admin", "User",
			models.RoleAdmin, status, nil, time.Now(), time.Now())
	}

	tests := []struct {
		name     string
		password string
		setup    func(sqlmock.Sqlmock)
	}{
		{
			name:     "unknown user",
			password: "right-password",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT " + userSelectColumns + " FROM users WHERE username").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name:     "inactive user with correct password",
			password: "right-password",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT " + userSelectColumns + " FROM users WHERE username").
					WillReturnRows(userRow(models.StatusInactive))
			},
		},
		{
			name:     "suspended user with correct password",
			password: "right-password",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT " + userSelectColumns + " FROM users WHERE username").
					WillReturnRows(userRow(models.StatusSuspended))
			},
		},
		{
			name:     "active user with wrong password",
			password: "wrong-password",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT " + userSelectColumns + " FROM users WHERE username").
					WillReturnRows(userRow(models.StatusActive))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := mockDB(t)
			tt.setup(mock)

			app := fiber.New()
			app.Post("/api/auth/login", LoginAPI)

			payload, err := json.Marshal(fiber.Map{"username": "admin", "password": tt.password})
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, 10000)
			require.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "Invalid credentials", body["error"])
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

package middleware

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"Nova/Config"
	"Nova/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) *Models.User {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Models.Migrate(db))
	Models.DB = db

	user := &Models.User{Email: "auth@test.local", Role: Models.RoleCashier}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func signToken(t *testing.T, user *Models.User, tokenType string) string {
	t.Helper()
	claims := Claims{
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(Config.SecretKey())
	require.NoError(t, err)
	return signed
}

func TestVerifyStoresUserForHandlers(t *testing.T) {
	user := setupAuthTest(t)

	app := fiber.New()
	app.Get("/validate-token", Verify(), func(c *fiber.Ctx) error {
		current, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"valid": false})
		}
		return c.JSON(fiber.Map{"valid": true, "user": current})
	})

	req := httptest.NewRequest("GET", "/validate-token", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user, ""))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/validate-token", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyRejectsRefreshToken(t *testing.T) {
	user := setupAuthTest(t)

	app := fiber.New()
	app.Get("/me", Verify(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user, "refresh"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyRoleGate(t *testing.T) {
	user := setupAuthTest(t)

	app := fiber.New()
	app.Get("/admin", Verify(Models.RoleAdmin), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user, ""))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

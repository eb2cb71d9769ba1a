package auth

import (
	"strings"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	// Public routes
	app.Get("/auth/login", ShowLoginPage)
	app.Post("/api/auth/login", LoginAPI)
	app.Post("/api/auth/logout", LogoutAPI)

	// Protected routes
	profile := app.Group("/auth", AuthMiddleware)
	profile.Get("/profile", ShowProfilePage)

	api := app.Group("/api/auth", AuthMiddleware)
	api.Post("/change-password", ChangePasswordAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Already logged in: straight to the dashboard. The session row must
	// still exist or the dashboard would bounce right back here.
	if tokenString := c.Cookies(cookieName); tokenString != "" {
		if claims, err := ValidateJWT(tokenString); err == nil {
			if _, err := database.GetSessionByID(config.GetDB(), claims.ID); err == nil {
				return c.Redirect("/dashboard")
			}
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Login - School Admin",
	}, "")
}

func ShowProfilePage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	return c.Render("auth/profile", fiber.Map{
		"Title":       "Profile - School Admin",
		"CurrentPage": "profile",
		"user":        user,
	})
}

func tokenFromRequest(c *fiber.Ctx) string {
	if tokenString := c.Cookies(cookieName); tokenString != "" {
		return tokenString
	}
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func isAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// AuthMiddleware validates the JWT from the cookie or Authorization header
// and puts the authenticated identity on the request context. Handlers read
// it from c.Locals. The token alone is not enough: the session row it names
// must still exist, so logout revokes access immediately even though the
// JWT itself stays signed until expiry.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		if isAPIRequest(c) {
			return c.Status(401).JSON(fiber.Map{"error": "No token found"})
		}
		return c.Redirect("/auth/login")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		if isAPIRequest(c) {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
		}
		return c.Redirect("/auth/login")
	}

	if _, err := database.GetSessionByID(config.GetDB(), claims.ID); err != nil {
		if isAPIRequest(c) {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired"})
		}
		return c.Redirect("/auth/login")
	}

	user := &models.User{
		ID:        claims.UserID,
		Username:  claims.Username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      claims.Role,
		Status:    models.StatusActive,
	}

	c.Locals("user_id", user.ID)
	c.Locals("username", user.Username)
	c.Locals("user_role", user.Role)
	c.Locals("user", user)

	return c.Next()
}

// RoleMiddleware rejects requests from users outside the allowed roles.
// A super_admin passes every role check.
func RoleMiddleware(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := c.Locals("user_role").(models.Role)

		allowed := role == models.RoleSuperAdmin
		for _, r := range allowedRoles {
			if role == r {
				allowed = true
				break
			}
		}
		if allowed {
			return c.Next()
		}

		if isAPIRequest(c) {
			return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
		}
		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - School Admin",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
			"user":         c.Locals("user"),
		})
	}
}

package auth

import (
	"database/sql"
	"log"
	"time"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const cookieName = "jwt_token"

// LoginAPI verifies credentials and establishes a session. Unknown user,
// inactive account and wrong password all return the same message so the
// response does not reveal which check failed.
func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}

	user, err := database.GetUserByUsername(config.GetDB(), req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database error"})
	}

	if user.Status != models.StatusActive {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid credentials"})
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid credentials"})
	}

	// Opportunistic cleanup; stale rows only waste space.
	if err := database.DeleteExpiredSessions(config.GetDB()); err != nil {
		log.Printf("Failed to prune expired sessions: %v", err)
	}

	sessionID := uuid.New().String()
	if err := database.CreateSession(config.GetDB(), sessionID, user.ID, GetSessionExpiry()); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create session"})
	}

	token, err := GenerateJWT(user, sessionID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to generate token"})
	}

	// Best effort: a failed timestamp write must not fail the login.
	if err := database.UpdateLastLogin(config.GetDB(), user.ID); err != nil {
		log.Printf("Failed to update last login for %s: %v", user.Username, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	if tokenString := tokenFromRequest(c); tokenString != "" {
		if claims, err := ValidateJWT(tokenString); err == nil && claims.ID != "" {
			if err := database.DeleteSession(config.GetDB(), claims.ID); err != nil {
				log.Printf("Failed to delete session: %v", err)
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"success": true, "message": "Logout successful"})
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request"})
	}
	if req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "New password is required"})
	}

	userID := c.Locals("user_id").(string)

	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database error"})
	}

	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Current password is incorrect"})
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
	}

	if err := database.UpdateUserPassword(config.GetDB(), userID, hashedPassword); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password changed successfully"})
}

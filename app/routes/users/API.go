package users

import (
	"database/sql"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/routes/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

func GetUsersAPI(c *fiber.Ctx) error {
	users, err := database.GetAllUsers(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

func GetUserByIDAPI(c *fiber.Ctx) error {
	user, err := database.GetUserByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"user": user})
}

type userRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

func (r *userRequest) validate(creating bool) (field, message string) {
	if r.Role == "" {
		r.Role = string(models.RoleStaff)
	}
	if r.Status == "" {
		r.Status = string(models.StatusActive)
	}
	switch {
	case creating && r.Username == "":
		return "username", "Username is required"
	case creating && r.Password == "":
		return "password", "Password is required"
	case creating && len(r.Password) < 6:
		return "password", "Password must be at least 6 characters"
	case r.Email == "":
		return "email", "Email is required"
	case r.FirstName == "":
		return "first_name", "First name is required"
	case !models.Role(r.Role).Valid():
		return "role", "Unknown role"
	case !models.UserStatus(r.Status).Valid():
		return "status", "Unknown status"
	}
	return "", ""
}

func CreateUserAPI(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if field, message := req.validate(true); field != "" {
		return c.Status(400).JSON(fiber.Map{"error": message, "field": field})
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.Role(req.Role),
		Status:    models.UserStatus(req.Status),
	}

	if err := database.CreateUser(config.GetDB(), &user); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "Username or email already taken"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"user":    user,
	})
}

func UpdateUserAPI(c *fiber.Ctx) error {
	user, err := database.GetUserByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if field, message := req.validate(false); field != "" {
		return c.Status(400).JSON(fiber.Map{"error": message, "field": field})
	}

	// The last super_admin cannot demote themselves out of the role.
	actor := c.Locals("user").(*models.User)
	if actor.ID == user.ID && user.Role == models.RoleSuperAdmin && models.Role(req.Role) != models.RoleSuperAdmin {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot change your own super admin role"})
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Role = models.Role(req.Role)
	user.Status = models.UserStatus(req.Status)

	if err := database.UpdateUser(config.GetDB(), user); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "Email already taken"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"user":    user,
	})
}

// ResetPasswordAPI sets a new password for another user without requiring
// the old one. Users change their own password through the profile page.
func ResetPasswordAPI(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 6 characters", "field": "password"})
	}

	if _, err := database.GetUserByID(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := database.UpdateUserPassword(config.GetDB(), c.Params("id"), hashed); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password updated successfully"})
}

func DeleteUserAPI(c *fiber.Ctx) error {
	actor := c.Locals("user").(*models.User)
	if actor.ID == c.Params("id") {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot delete your own account"})
	}

	if err := database.DeleteUser(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}

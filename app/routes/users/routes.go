package users

import (
	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// Admin user management is limited to admins; super_admin passes every
// role check.
func SetupUsersRoutes(app *fiber.App) {
	users := app.Group("/users")
	users.Use(auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin))
	users.Get("/", UsersPage)

	api := app.Group("/api/users")
	api.Use(auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin))
	api.Get("/", GetUsersAPI)
	api.Get("/:id", GetUserByIDAPI)
	api.Post("/", CreateUserAPI)
	api.Put("/:id", UpdateUserAPI)
	api.Put("/:id/password", ResetPasswordAPI)
	api.Delete("/:id", DeleteUserAPI)
}

func UsersPage(c *fiber.Ctx) error {
	userList, err := database.GetAllUsers(config.GetDB())
	if err != nil {
		return fiber.NewError(500, "Failed to load users")
	}

	user := c.Locals("user").(*models.User)
	return c.Render("users/index", fiber.Map{
		"Title":       "Admin Users - School Admin",
		"CurrentPage": "users",
		"users":       userList,
		"user":        user,
	})
}

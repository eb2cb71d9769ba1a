package classrooms

import (
	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupClassroomsRoutes(app *fiber.App) {
	classrooms := app.Group("/classrooms")
	classrooms.Use(auth.AuthMiddleware)
	classrooms.Get("/", ClassroomsPage)

	api := app.Group("/api/classrooms")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetClassroomsAPI)
	api.Get("/:id", GetClassroomByIDAPI)
	api.Post("/", CreateClassroomAPI)
	api.Post("/ensure", EnsureClassroomAPI)
	api.Put("/:id", UpdateClassroomAPI)
	api.Delete("/:id", DeleteClassroomAPI)
}

func ClassroomsPage(c *fiber.Ctx) error {
	classroomList, err := database.GetAllClassrooms(config.GetDB())
	if err != nil {
		return fiber.NewError(500, "Failed to load classrooms")
	}

	user := c.Locals("user").(*models.User)
	return c.Render("classrooms/index", fiber.Map{
		"Title":       "Classrooms - School Admin",
		"CurrentPage": "classrooms",
		"classrooms":  classroomList,
		"user":        user,
	})
}

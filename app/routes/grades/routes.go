package grades

import (
	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupGradesRoutes(app *fiber.App) {
	grades := app.Group("/grades")
	grades.Use(auth.AuthMiddleware)
	grades.Get("/", GradesPage)

	api := app.Group("/api/grades")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetGradesAPI)
	api.Get("/export", ExportGradesCSVAPI)
	api.Post("/import", ImportGradesAPI)
	api.Get("/:id", GetGradeByIDAPI)
	api.Post("/", CreateGradeAPI)
	api.Put("/:id", UpdateGradeAPI)
	api.Delete("/:id", DeleteGradeAPI)
}

func GradesPage(c *fiber.Ctx) error {
	gradeList, err := database.GetAllGrades(config.GetDB())
	if err != nil {
		return fiber.NewError(500, "Failed to load grades")
	}

	studentList, err := database.GetStudentsWithDetails(config.GetDB(), database.StudentFilters{})
	if err != nil {
		return fiber.NewError(500, "Failed to load students")
	}

	user := c.Locals("user").(*models.User)
	return c.Render("grades/index", fiber.Map{
		"Title":       "Grades - School Admin",
		"CurrentPage": "grades",
		"grades":      gradeList,
		"students":    studentList,
		"user":        user,
	})
}

package students

import (
	"fmt"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentsRoutes(app *fiber.App) {
	students := app.Group("/students")
	students.Use(auth.AuthMiddleware)
	students.Get("/", StudentsPage)
	students.Get("/:id", StudentViewPage)

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetStudentsAPI)
	api.Get("/sample", SampleCSVAPI)
	api.Get("/export", ExportStudentsCSVAPI)
	api.Get("/export.xlsx", ExportStudentsXLSXAPI)
	api.Post("/import", ImportStudentsAPI)
	api.Get("/:id", GetStudentByIDAPI)
	api.Get("/:id/payments", GetStudentPaymentsAPI)
	api.Get("/:id/grades", GetStudentGradesAPI)
	api.Post("/", CreateStudentAPI)
	api.Put("/:id", UpdateStudentAPI)
	api.Delete("/:id", DeleteStudentAPI)
}

func StudentsPage(c *fiber.Ctx) error {
	studentList, err := database.GetStudentsWithDetails(config.GetDB(), database.StudentFilters{})
	if err != nil {
		return fiber.NewError(500, "Failed to load students")
	}

	classrooms, err := database.GetAllClassrooms(config.GetDB())
	if err != nil {
		return fiber.NewError(500, "Failed to load classrooms")
	}

	user := c.Locals("user").(*models.User)
	return c.Render("students/index", fiber.Map{
		"Title":       "Students - School Admin",
		"CurrentPage": "students",
		"students":    studentList,
		"classrooms":  classrooms,
		"user":        user,
	})
}

func StudentViewPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	studentID := c.Params("id")

	student, _ := database.GetStudentByID(config.GetDB(), studentID)

	title := "Student Profile - School Admin"
	if student != nil {
		title = fmt.Sprintf("%s %s - Profile", student.FirstName, student.LastName)
	}

	return c.Render("students/view", fiber.Map{
		"Title":       title,
		"CurrentPage": "students",
		"student":     student,
		"user":        user,
	})
}

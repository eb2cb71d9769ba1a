package attendance

import (
	"github.com/ubada123/SchoolSoftware/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetAttendanceAPI)
	api.Get("/student/:id", GetStudentAttendanceAPI)
	api.Post("/", MarkAttendanceAPI)
	api.Delete("/:id", DeleteAttendanceAPI)
}

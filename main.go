package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/routes/attendance"
	"github.com/ubada123/SchoolSoftware/app/routes/auth"
	"github.com/ubada123/SchoolSoftware/app/routes/classrooms"
	"github.com/ubada123/SchoolSoftware/app/routes/dashboard"
	"github.com/ubada123/SchoolSoftware/app/routes/grades"
	"github.com/ubada123/SchoolSoftware/app/routes/payments"
	"github.com/ubada123/SchoolSoftware/app/routes/students"
	"github.com/ubada123/SchoolSoftware/app/routes/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
)

// customErrorHandler returns JSON for /api requests and rendered error
// pages for everything else.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - School Admin",
			"CurrentPage": "",
		})
	case 401:
		return c.Redirect("/auth/login")
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server Error - School Admin",
			"CurrentPage":  "",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - School Admin",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	config.InitRedis()

	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/static", "./static")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	classrooms.SetupClassroomsRoutes(app)
	payments.SetupPaymentsRoutes(app)
	grades.SetupGradesRoutes(app)
	attendance.SetupAttendanceRoutes(app)
	users.SetupUsersRoutes(app)

	// 404 for anything unmatched
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

package payments

import (
	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentsRoutes(app *fiber.App) {
	payments := app.Group("/payments")
	payments.Use(auth.AuthMiddleware)
	payments.Get("/", PaymentsPage)

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)
	api.Get("/", GetPaymentsAPI)
	api.Get("/export", ExportPaymentsCSVAPI)
	api.Get("/export.xlsx", ExportPaymentsXLSXAPI)
	api.Get("/:id", GetPaymentByIDAPI)
	api.Post("/", CreatePaymentAPI)
	api.Put("/:id", UpdatePaymentAPI)
	api.Delete("/:id", DeletePaymentAPI)
}

func PaymentsPage(c *fiber.Ctx) error {
	paymentList, err := database.GetAllPayments(config.GetDB())
	if err != nil {
		return fiber.NewError(500, "Failed to load payments")
	}

	studentList, err := database.GetStudentsWithDetails(config.GetDB(), database.StudentFilters{})
	if err != nil {
		return fiber.NewError(500, "Failed to load students")
	}

	user := c.Locals("user").(*models.User)
	return c.Render("payments/index", fiber.Map{
		"Title":       "Payments - School Admin",
		"CurrentPage": "payments",
		"payments":    paymentList,
		"students":    studentList,
		"user":        user,
	})
}

package dashboard

import (
	"encoding/json"
	"time"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

func SetupDashboardRoutes(app *fiber.App) {
	dash := app.Group("/dashboard")
	dash.Use(auth.AuthMiddleware)
	dash.Get("/", DashboardPage)

	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/stats", GetStatsAPI)
}

// loadStats reads the cached snapshot when Redis is up, falling back to the
// database. Cache failures are ignored so the dashboard never depends on
// Redis being available.
func loadStats() (*models.DashboardStats, error) {
	if config.RDB != nil {
		raw, err := config.RDB.Get(config.Ctx, statsCacheKey).Bytes()
		if err == nil {
			stats := &models.DashboardStats{}
			if json.Unmarshal(raw, stats) == nil {
				return stats, nil
			}
		}
	}

	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return nil, err
	}

	if config.RDB != nil {
		if raw, err := json.Marshal(stats); err == nil {
			config.RDB.Set(config.Ctx, statsCacheKey, raw, statsCacheTTL)
		}
	}
	return stats, nil
}

func DashboardPage(c *fiber.Ctx) error {
	stats, err := loadStats()
	if err != nil {
		return fiber.NewError(500, "Failed to load dashboard")
	}

	user := c.Locals("user").(*models.User)
	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - School Admin",
		"CurrentPage": "dashboard",
		"stats":       stats,
		"user":        user,
	})
}

func GetStatsAPI(c *fiber.Ctx) error {
	stats, err := loadStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(fiber.Map{"stats": stats})
}

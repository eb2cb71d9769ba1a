package attendance

import (
	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/util"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// GetAttendanceAPI lists attendance for a single day. The date query
// parameter is optional and defaults to today.
func GetAttendanceAPI(c *fiber.Ctx) error {
	date := util.Today()
	if raw := c.Query("date"); raw != "" {
		parsed, err := util.ParseFlexibleDate(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		date = parsed
	}

	records, err := database.GetAttendanceByDate(config.GetDB(), date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"date":       util.ToDisplayDate(date),
		"attendance": records,
		"count":      len(records),
	})
}

func GetStudentAttendanceAPI(c *fiber.Ctx) error {
	records, err := database.GetAttendanceByStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	return c.JSON(fiber.Map{"attendance": records, "count": len(records)})
}

// MarkAttendanceAPI records a student's status for a day. Marking the
// same student and day again overwrites the earlier record.
func MarkAttendanceAPI(c *fiber.Ctx) error {
	var req struct {
		StudentID string `json:"student_id"`
		Date      string `json:"date"`
		Status    string `json:"status"`
		Notes     string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if req.StudentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student is required", "field": "student_id"})
	}
	if !models.AttendanceStatus(req.Status).Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Status must be present, absent or late", "field": "status"})
	}

	date := util.Today()
	if req.Date != "" {
		parsed, err := util.ParseFlexibleDate(req.Date)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error(), "field": "date"})
		}
		date = parsed
	}

	record := models.Attendance{
		StudentID: req.StudentID,
		Date:      date,
		Status:    models.AttendanceStatus(req.Status),
		Notes:     req.Notes,
	}

	if err := database.CreateOrUpdateAttendance(config.GetDB(), &record); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return c.Status(400).JSON(fiber.Map{"error": "Student does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record attendance"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":    true,
		"message":    "Attendance recorded",
		"attendance": record,
	})
}

func DeleteAttendanceAPI(c *fiber.Ctx) error {
	if err := database.DeleteAttendance(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete attendance"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Attendance deleted"})
}

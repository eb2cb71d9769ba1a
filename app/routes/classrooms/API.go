package classrooms

import (
	"database/sql"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

func GetClassroomsAPI(c *fiber.Ctx) error {
	classrooms, err := database.GetAllClassrooms(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classrooms"})
	}

	return c.JSON(fiber.Map{
		"classrooms": classrooms,
		"count":      len(classrooms),
	})
}

func GetClassroomByIDAPI(c *fiber.Ctx) error {
	classroom, err := database.GetClassroomByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"classroom": classroom})
}

type classroomRequest struct {
	Name     string `json:"name"`
	Section  string `json:"section"`
	Capacity int    `json:"capacity"`
}

func CreateClassroomAPI(c *fiber.Ctx) error {
	var req classroomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required", "field": "name"})
	}
	if req.Capacity <= 0 {
		req.Capacity = 30
	}

	classroom := &models.Classroom{Name: req.Name, Section: req.Section, Capacity: req.Capacity}
	if err := database.CreateClassroom(config.GetDB(), classroom); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "A classroom with this name and section already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create classroom"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":   "Classroom created successfully",
		"classroom": classroom,
	})
}

// EnsureClassroomAPI resolves (name, section) to an existing classroom or
// creates one. Safe to call repeatedly and from concurrent imports.
func EnsureClassroomAPI(c *fiber.Ctx) error {
	var req classroomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required", "field": "name"})
	}
	if req.Capacity <= 0 {
		req.Capacity = 30
	}

	classroom, err := database.EnsureClassroom(config.GetDB(), req.Name, req.Section, req.Capacity)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve classroom"})
	}

	return c.JSON(fiber.Map{"classroom": classroom})
}

func UpdateClassroomAPI(c *fiber.Ctx) error {
	classroom, err := database.GetClassroomByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req classroomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if req.Name != "" {
		classroom.Name = req.Name
	}
	classroom.Section = req.Section
	if req.Capacity > 0 {
		classroom.Capacity = req.Capacity
	}

	if err := database.UpdateClassroom(config.GetDB(), classroom); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "A classroom with this name and section already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update classroom"})
	}

	return c.JSON(fiber.Map{
		"message":   "Classroom updated successfully",
		"classroom": classroom,
	})
}

func DeleteClassroomAPI(c *fiber.Ctx) error {
	if _, err := database.GetClassroomByID(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if err := database.DeleteClassroom(config.GetDB(), c.Params("id")); err != nil {
		// Students still reference the classroom; deletion is restricted.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return c.Status(409).JSON(fiber.Map{"error": "Classroom has students and cannot be deleted"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete classroom"})
	}

	return c.JSON(fiber.Map{"message": "Classroom deleted successfully"})
}

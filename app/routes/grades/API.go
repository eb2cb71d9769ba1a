package grades

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/imports"
	"github.com/ubada123/SchoolSoftware/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

func GetGradesAPI(c *fiber.Ctx) error {
	grades, err := database.GetAllGrades(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	return c.JSON(fiber.Map{
		"grades": grades,
		"count":  len(grades),
	})
}

func GetGradeByIDAPI(c *fiber.Ctx) error {
	grade, err := database.GetGradeByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Grade not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"grade": grade})
}

type gradeRequest struct {
	StudentID string  `json:"student_id"`
	Subject   string  `json:"subject"`
	Term      string  `json:"term"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
}

func (r *gradeRequest) validate() (field, message string) {
	if r.MaxScore == 0 {
		r.MaxScore = 100
	}
	switch {
	case r.StudentID == "":
		return "student_id", "Student is required"
	case r.Subject == "":
		return "subject", "Subject is required"
	case r.Term == "":
		return "term", "Term is required"
	case r.Score < 0:
		return "score", "Score cannot be negative"
	case r.MaxScore < 0:
		return "max_score", "Max score cannot be negative"
	case r.Score > r.MaxScore:
		return "score", "Score cannot exceed max score"
	}
	return "", ""
}

func (r *gradeRequest) apply(g *models.Grade) {
	g.StudentID = r.StudentID
	g.Subject = r.Subject
	g.Term = r.Term
	g.Score = r.Score
	g.MaxScore = r.MaxScore
	g.ComputePercentage()
}

func CreateGradeAPI(c *fiber.Ctx) error {
	var req gradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if field, message := req.validate(); field != "" {
		return c.Status(400).JSON(fiber.Map{"error": message, "field": field})
	}

	var grade models.Grade
	req.apply(&grade)

	if err := database.CreateGrade(config.GetDB(), &grade); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return c.Status(409).JSON(fiber.Map{"error": "A grade for this student, subject and term already exists"})
			case "23503":
				return c.Status(400).JSON(fiber.Map{"error": "Student does not exist"})
			}
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create grade"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Grade recorded successfully",
		"grade":   grade,
	})
}

func UpdateGradeAPI(c *fiber.Ctx) error {
	grade, err := database.GetGradeByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Grade not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req gradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if field, message := req.validate(); field != "" {
		return c.Status(400).JSON(fiber.Map{"error": message, "field": field})
	}

	req.apply(grade)

	if err := database.UpdateGrade(config.GetDB(), grade); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "A grade for this student, subject and term already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update grade"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Grade updated successfully",
		"grade":   grade,
	})
}

func DeleteGradeAPI(c *fiber.Ctx) error {
	if err := database.DeleteGrade(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete grade"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Grade deleted successfully"})
}

func ImportGradesAPI(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "CSV file is required (field \"file\")"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer file.Close()

	result, err := imports.ImportGrades(config.GetDB(), file)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Failed to parse CSV: %v", err)})
	}

	return c.JSON(result)
}

func ExportGradesCSVAPI(c *fiber.Ctx) error {
	grades, err := database.GetAllGrades(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="grades.csv"`)

	w := csv.NewWriter(c.Response().BodyWriter())
	if err := w.Write([]string{"Student", "Roll Number", "Subject", "Term", "Score", "Max Score", "Percentage"}); err != nil {
		return err
	}
	for _, g := range grades {
		row := []string{
			g.StudentFullName,
			g.RollNumber,
			g.Subject,
			g.Term,
			strconv.FormatFloat(g.Score, 'f', 2, 64),
			strconv.FormatFloat(g.MaxScore, 'f', 2, 64),
			strconv.FormatFloat(g.Percentage, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

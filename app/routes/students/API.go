package students

import (
	"database/sql"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/util"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

func GetStudentsAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Search:      c.Query("search"),
		ClassroomID: c.Query("classroom_id"),
		Limit:       c.QueryInt("limit"),
		Offset:      c.QueryInt("offset"),
	}

	students, err := database.GetStudentsWithDetails(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"student": student})
}

func GetStudentPaymentsAPI(c *fiber.Ctx) error {
	payments, err := database.GetPaymentsByStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}
	return c.JSON(fiber.Map{"payments": payments, "count": len(payments)})
}

func GetStudentGradesAPI(c *fiber.Ctx) error {
	grades, err := database.GetGradesByStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}
	return c.JSON(fiber.Map{"grades": grades, "count": len(grades)})
}

type studentRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	AdmissionDate string `json:"admission_date"`
	RollNumber    string `json:"roll_number"`
	ClassroomID   string `json:"classroom_id"`
	FatherName    string `json:"father_name"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	Address       string `json:"address"`
}

// validate checks required fields and returns a field-level message.
func (r *studentRequest) validate() (field, message string) {
	switch {
	case r.FirstName == "":
		return "first_name", "First name is required"
	case r.LastName == "":
		return "last_name", "Last name is required"
	case r.DateOfBirth == "":
		return "date_of_birth", "Date of birth is required"
	case r.RollNumber == "":
		return "roll_number", "Roll number is required"
	case r.ClassroomID == "":
		return "classroom_id", "Classroom is required"
	}
	return "", ""
}

func (r *studentRequest) apply(s *models.Student) error {
	dob, err := util.ParseFlexibleDate(r.DateOfBirth)
	if err != nil {
		return err
	}
	s.FirstName = r.FirstName
	s.LastName = r.LastName
	s.DateOfBirth = dob
	s.RollNumber = r.RollNumber
	s.ClassroomID = r.ClassroomID
	s.FatherName = r.FatherName
	s.ContactEmail = r.ContactEmail
	s.ContactPhone = r.ContactPhone
	s.Address = r.Address

	s.AdmissionDate = nil
	if r.AdmissionDate != "" {
		adm, err := util.ParseFlexibleDate(r.AdmissionDate)
		if err != nil {
			return err
		}
		s.AdmissionDate = &adm
	}
	return nil
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if field, msg := req.validate(); field != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg, "field": field})
	}

	student := &models.Student{}
	if err := req.apply(student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "field": "date"})
	}

	if err := database.CreateStudent(config.GetDB(), student); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return c.Status(409).JSON(fiber.Map{"error": "Roll number already taken in this classroom", "field": "roll_number"})
			case "23503":
				return c.Status(400).JSON(fiber.Map{"error": "Classroom does not exist", "field": "classroom_id"})
			}
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	created, err := database.GetStudentByID(config.GetDB(), student.ID)
	if err == nil {
		student = created
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Student created successfully",
		"student": student,
	})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if field, msg := req.validate(); field != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg, "field": field})
	}

	if err := req.apply(student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "field": "date"})
	}

	if err := database.UpdateStudent(config.GetDB(), student); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(409).JSON(fiber.Map{"error": "Roll number already taken in this classroom", "field": "roll_number"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	updated, err := database.GetStudentByID(config.GetDB(), student.ID)
	if err == nil {
		student = updated
	}

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": student,
	})
}

// DeleteStudentAPI removes a student; payment, grade and attendance rows
// cascade at the database level.
func DeleteStudentAPI(c *fiber.Ctx) error {
	if _, err := database.GetStudentByID(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if err := database.DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}

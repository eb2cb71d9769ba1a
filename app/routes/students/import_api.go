package students

import (
	"encoding/csv"
	"fmt"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/imports"
	"github.com/ubada123/SchoolSoftware/app/util"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// csvColumns is the canonical student interchange column order, shared by
// the sample file, the export and the importer.
var csvColumns = []string{
	"first_name", "last_name", "date_of_birth", "admission_date", "roll_number",
	"class", "section", "father_name", "contact_email", "contact_phone", "address",
}

// ImportStudentsAPI accepts a multipart CSV upload and bulk-creates
// students, one row at a time. The response always carries the full
// summary, including per-row errors.
func ImportStudentsAPI(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "CSV file is required (field \"file\")"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer file.Close()

	result, err := imports.ImportStudents(config.GetDB(), file)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("Failed to parse CSV: %v", err)})
	}

	return c.JSON(result)
}

// SampleCSVAPI serves the bulk-upload template with one example row.
func SampleCSVAPI(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="students_bulk_upload_sample.csv"`)

	w := csv.NewWriter(c.Response().BodyWriter())
	w.Write(csvColumns)
	w.Write([]string{
		"John", "Doe", "15-01-2010", "01-06-2024", "A001",
		"1", "A", "John Doe Sr.", "john.doe@email.com", "+1234567890", "123 Main St, City",
	})
	w.Flush()
	return w.Error()
}

func ExportStudentsCSVAPI(c *fiber.Ctx) error {
	students, err := database.GetStudentsWithDetails(config.GetDB(), database.StudentFilters{})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="students.csv"`)

	w := csv.NewWriter(c.Response().BodyWriter())
	w.Write(csvColumns)
	for _, s := range students {
		admission := ""
		if s.AdmissionDate != nil {
			admission = util.ToDisplayDate(*s.AdmissionDate)
		}
		w.Write([]string{
			s.FirstName, s.LastName, util.ToDisplayDate(s.DateOfBirth), admission, s.RollNumber,
			s.Classroom.Name, s.Classroom.Section, s.FatherName, s.ContactEmail, s.ContactPhone, s.Address,
		})
	}
	w.Flush()
	return w.Error()
}

// ExportStudentsXLSXAPI writes the same export as a spreadsheet.
func ExportStudentsXLSXAPI(c *fiber.Ctx) error {
	students, err := database.GetStudentsWithDetails(config.GetDB(), database.StudentFilters{})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range csvColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}

	for rowIdx, s := range students {
		admission := ""
		if s.AdmissionDate != nil {
			admission = util.ToDisplayDate(*s.AdmissionDate)
		}
		values := []string{
			s.FirstName, s.LastName, util.ToDisplayDate(s.DateOfBirth), admission, s.RollNumber,
			s.Classroom.Name, s.Classroom.Section, s.FatherName, s.ContactEmail, s.ContactPhone, s.Address,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="students.xlsx"`)
	return f.Write(c.Response().BodyWriter())
}

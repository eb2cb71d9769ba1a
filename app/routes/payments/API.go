package payments

import (
	"database/sql"
	"encoding/csv"
	"fmt"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/util"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
)

func GetPaymentsAPI(c *fiber.Ctx) error {
	payments, err := database.GetAllPayments(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"count":    len(payments),
	})
}

func GetPaymentByIDAPI(c *fiber.Ctx) error {
	payment, err := database.GetPaymentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"payment": payment})
}

type paymentRequest struct {
	StudentID     string  `json:"student_id"`
	FeeType       string  `json:"fee_type"`
	TotalFee      float64 `json:"total_fee"`
	TotalPaid     float64 `json:"total_paid"`
	PaymentDate   string  `json:"payment_date"`
	DueDate       string  `json:"due_date"`
	PaymentMethod string  `json:"payment_method"`
	ReceiptNumber string  `json:"receipt_number"`
}

func (r *paymentRequest) validate() (field, message string) {
	switch {
	case r.StudentID == "":
		return "student_id", "Student is required"
	case r.FeeType == "":
		return "fee_type", "Fee type is required"
	case r.TotalFee < 0:
		return "total_fee", "Total fee cannot be negative"
	case r.TotalPaid < 0:
		return "total_paid", "Amount paid cannot be negative"
	case r.PaymentDate == "":
		return "payment_date", "Payment date is required"
	case r.PaymentMethod != "" && !models.PaymentMethod(r.PaymentMethod).Valid():
		return "payment_method", "Unknown payment method"
	}
	return "", ""
}

func (r *paymentRequest) apply(p *models.Payment) error {
	paymentDate, err := util.ParseFlexibleDate(r.PaymentDate)
	if err != nil {
		return err
	}
	p.StudentID = r.StudentID
	p.FeeType = r.FeeType
	p.TotalFee = r.TotalFee
	p.TotalPaid = r.TotalPaid
	p.PaymentDate = paymentDate
	p.ReceiptNumber = r.ReceiptNumber

	p.PaymentMethod = models.MethodCash
	if r.PaymentMethod != "" {
		p.PaymentMethod = models.PaymentMethod(r.PaymentMethod)
	}

	p.DueDate = nil
	if r.DueDate != "" {
		due, err := util.ParseFlexibleDate(r.DueDate)
		if err != nil {
			return err
		}
		p.DueDate = &due
	}
	return nil
}

func CreatePaymentAPI(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if field, message := req.validate(); field != "" {
		return c.Status(400).JSON(fiber.Map{"error": message, "field": field})
	}

	var payment models.Payment
	if err := req.apply(&payment); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.CreatePayment(config.GetDB(), &payment); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return c.Status(400).JSON(fiber.Map{"error": "Student does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create payment"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Payment recorded successfully",
		"payment": payment,
	})
}

func UpdatePaymentAPI(c *fiber.Ctx) error {
	payment, err := database.GetPaymentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if field, message := req.validate(); field != "" {
		return c.Status(400).JSON(fiber.Map{"error": message, "field": field})
	}

	if err := req.apply(payment); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpdatePayment(config.GetDB(), payment); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return c.Status(400).JSON(fiber.Map{"error": "Student does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update payment"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment updated successfully",
		"payment": payment,
	})
}

func DeletePaymentAPI(c *fiber.Ctx) error {
	if err := database.DeletePayment(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete payment"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Payment deleted successfully"})
}

var exportColumns = []string{
	"Student", "Roll Number", "Class", "Fee Type", "Total Fee", "Paid",
	"Balance", "Payment Date", "Due Date", "Method", "Receipt", "Overdue",
}

func exportRow(p *models.Payment) []string {
	dueDate := ""
	if p.DueDate != nil {
		dueDate = util.ToDisplayDate(*p.DueDate)
	}
	overdue := "No"
	if p.IsOverdue {
		overdue = "Yes"
	}
	class := p.ClassName
	if p.Section != "" {
		class += " " + p.Section
	}
	return []string{
		p.StudentFullName,
		p.RollNumber,
		class,
		p.FeeType,
		util.FormatCurrency(p.TotalFee),
		util.FormatCurrency(p.TotalPaid),
		util.FormatCurrency(p.Balance),
		util.ToDisplayDate(p.PaymentDate),
		dueDate,
		string(p.PaymentMethod),
		p.ReceiptNumber,
		overdue,
	}
}

func ExportPaymentsCSVAPI(c *fiber.Ctx) error {
	payments, err := database.GetAllPayments(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="payments.csv"`)

	w := csv.NewWriter(c.Response().BodyWriter())
	if err := w.Write(exportColumns); err != nil {
		return err
	}
	for _, p := range payments {
		if err := w.Write(exportRow(p)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func ExportPaymentsXLSXAPI(c *fiber.Ctx) error {
	payments, err := database.GetAllPayments(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}
	for rowIdx, p := range payments {
		for colIdx, value := range exportRow(p) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payments.xlsx"))
	return f.Write(c.Response().BodyWriter())
}

package database

import (
	"database/sql"
	"time"

	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/util"
)

const paymentColumns = `p.id, p.student_id, p.fee_type, p.total_fee, p.total_paid,
	p.payment_date, p.due_date, p.payment_method, p.receipt_number, p.created_at, p.updated_at,
	s.first_name, s.last_name, s.roll_number, c.name, c.section`

func scanPayment(row interface{ Scan(...interface{}) error }, today time.Time) (*models.Payment, error) {
	p := &models.Payment{}
	var firstName, lastName string
	err := row.Scan(
		&p.ID, &p.StudentID, &p.FeeType, &p.TotalFee, &p.TotalPaid,
		&p.PaymentDate, &p.DueDate, &p.PaymentMethod, &p.ReceiptNumber, &p.CreatedAt, &p.UpdatedAt,
		&firstName, &lastName, &p.RollNumber, &p.ClassName, &p.Section,
	)
	if err != nil {
		return nil, err
	}
	p.StudentFullName = firstName + " " + lastName
	p.ComputeDerived(today)
	return p, nil
}

func queryPayments(db *sql.DB, query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	today := util.Today()
	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows, today)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func GetAllPayments(db *sql.DB) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments p
		JOIN students s ON p.student_id = s.id
		JOIN classrooms c ON s.classroom_id = c.id
		ORDER BY p.created_at DESC`
	return queryPayments(db, query)
}

func GetPaymentsByStudent(db *sql.DB, studentID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments p
		JOIN students s ON p.student_id = s.id
		JOIN classrooms c ON s.classroom_id = c.id
		WHERE p.student_id = $1
		ORDER BY p.created_at DESC`
	return queryPayments(db, query, studentID)
}

func GetPaymentByID(db *sql.DB, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments p
		JOIN students s ON p.student_id = s.id
		JOIN classrooms c ON s.classroom_id = c.id
		WHERE p.id = $1`
	return scanPayment(db.QueryRow(query, id), util.Today())
}

func CreatePayment(db *sql.DB, p *models.Payment) error {
	query := `INSERT INTO payments
		(student_id, fee_type, total_fee, total_paid, payment_date, due_date, payment_method, receipt_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := db.QueryRow(query,
		p.StudentID, p.FeeType, p.TotalFee, p.TotalPaid,
		p.PaymentDate, p.DueDate, p.PaymentMethod, p.ReceiptNumber,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	p.ComputeDerived(util.Today())
	return nil
}

func UpdatePayment(db *sql.DB, p *models.Payment) error {
	query := `UPDATE payments SET
		student_id = $1, fee_type = $2, total_fee = $3, total_paid = $4,
		payment_date = $5, due_date = $6, payment_method = $7, receipt_number = $8,
		updated_at = NOW()
		WHERE id = $9`
	_, err := db.Exec(query,
		p.StudentID, p.FeeType, p.TotalFee, p.TotalPaid,
		p.PaymentDate, p.DueDate, p.PaymentMethod, p.ReceiptNumber, p.ID,
	)
	if err != nil {
		return err
	}
	p.ComputeDerived(util.Today())
	return nil
}

func DeletePayment(db *sql.DB, id string) error {
	query := `DELETE FROM payments WHERE id = $1`
	_, err := db.Exec(query, id)
	return err
}

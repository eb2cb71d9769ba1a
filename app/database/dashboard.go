package database

import (
	"database/sql"

	"github.com/ubada123/SchoolSoftware/app/models"
)

// GetDashboardStats returns the counts and top-N lists for the admin
// dashboard. The queries are independent; the snapshot is not transactional.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{
		RecentPayments: []*models.Payment{},
		OverdueDetails: []*models.Payment{},
	}

	err := db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM classrooms`).Scan(&stats.TotalClassrooms)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM payments
		WHERE date_trunc('month', payment_date) = date_trunc('month', CURRENT_DATE)`).
		Scan(&stats.PaymentsThisMonth)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM payments
		WHERE due_date < CURRENT_DATE AND total_paid < total_fee`).
		Scan(&stats.OverduePayments)
	if err != nil {
		return nil, err
	}

	recent, err := queryPayments(db, `SELECT `+paymentColumns+`
		FROM payments p
		JOIN students s ON p.student_id = s.id
		JOIN classrooms c ON s.classroom_id = c.id
		ORDER BY p.created_at DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	if recent != nil {
		stats.RecentPayments = recent
	}

	overdue, err := queryPayments(db, `SELECT `+paymentColumns+`
		FROM payments p
		JOIN students s ON p.student_id = s.id
		JOIN classrooms c ON s.classroom_id = c.id
		WHERE p.due_date < CURRENT_DATE AND p.total_paid < p.total_fee
		ORDER BY p.due_date ASC
		LIMIT 10`)
	if err != nil {
		return nil, err
	}
	if overdue != nil {
		stats.OverdueDetails = overdue
	}

	return stats, nil
}

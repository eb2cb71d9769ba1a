package database

import (
	"database/sql"
	"time"

	"github.com/ubada123/SchoolSoftware/app/models"
)

const attendanceColumns = `a.id, a.student_id, a.date, a.status, a.notes, a.created_at,
	s.first_name, s.last_name, s.roll_number`

func scanAttendance(row interface{ Scan(...interface{}) error }) (*models.Attendance, error) {
	a := &models.Attendance{}
	var firstName, lastName string
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Date, &a.Status, &a.Notes, &a.CreatedAt,
		&firstName, &lastName, &a.RollNumber,
	)
	if err != nil {
		return nil, err
	}
	a.StudentFullName = firstName + " " + lastName
	return a, nil
}

// GetAttendanceByDate sends the calendar date as text so the comparison
// against the DATE column cannot shift across time zones.
func GetAttendanceByDate(db *sql.DB, date time.Time) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE a.date = $1
		ORDER BY s.last_name, s.first_name`

	rows, err := db.Query(query, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func GetAttendanceByStudent(db *sql.DB, studentID string) ([]*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE a.student_id = $1
		ORDER BY a.date DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// CreateOrUpdateAttendance upserts on (student_id, date): marking the same
// student for the same day replaces the previous status and notes.
func CreateOrUpdateAttendance(db *sql.DB, a *models.Attendance) error {
	query := `INSERT INTO attendance (student_id, date, status, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes
		RETURNING id, created_at`
	return db.QueryRow(query, a.StudentID, a.Date.Format("2006-01-02"), a.Status, a.Notes).
		Scan(&a.ID, &a.CreatedAt)
}

func DeleteAttendance(db *sql.DB, id string) error {
	query := `DELETE FROM attendance WHERE id = $1`
	_, err := db.Exec(query, id)
	return err
}

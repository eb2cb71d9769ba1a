package database

import (
	"database/sql"
	"fmt"

	"github.com/ubada123/SchoolSoftware/app/models"
)

// StudentFilters represents filtering options for student listings.
type StudentFilters struct {
	Search      string
	ClassroomID string
	Limit       int
	Offset      int
}

const studentColumns = `s.id, s.first_name, s.last_name, s.date_of_birth, s.admission_date,
	s.roll_number, s.classroom_id, s.father_name, s.contact_email, s.contact_phone,
	s.address, s.created_at, s.updated_at,
	c.id, c.name, c.section, c.capacity, c.created_at, c.updated_at`

func scanStudentWithClassroom(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	c := &models.Classroom{}
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.DateOfBirth, &s.AdmissionDate,
		&s.RollNumber, &s.ClassroomID, &s.FatherName, &s.ContactEmail, &s.ContactPhone,
		&s.Address, &s.CreatedAt, &s.UpdatedAt,
		&c.ID, &c.Name, &c.Section, &c.Capacity, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Classroom = c
	return s, nil
}

func GetStudentsWithDetails(db *sql.DB, filters StudentFilters) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + `
		FROM students s
		JOIN classrooms c ON s.classroom_id = c.id`

	var args []interface{}
	where := ""
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		where = ` WHERE (s.first_name ILIKE $1 OR s.last_name ILIKE $1 OR s.roll_number ILIKE $1)`
	}
	if filters.ClassroomID != "" {
		args = append(args, filters.ClassroomID)
		if where == "" {
			where = ` WHERE s.classroom_id = $1`
		} else {
			where += ` AND s.classroom_id = $2`
		}
	}
	query += where + ` ORDER BY s.last_name, s.first_name`

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
		if filters.Offset > 0 {
			args = append(args, filters.Offset)
			query += fmt.Sprintf(` OFFSET $%d`, len(args))
		}
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudentWithClassroom(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + `
		FROM students s
		JOIN classrooms c ON s.classroom_id = c.id
		WHERE s.id = $1`
	return scanStudentWithClassroom(db.QueryRow(query, id))
}

// GetStudentByRoll resolves a student by roll number; used when importing
// grades keyed by roll instead of UUID.
func GetStudentByRoll(db *sql.DB, rollNumber string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + `
		FROM students s
		JOIN classrooms c ON s.classroom_id = c.id
		WHERE s.roll_number = $1
		ORDER BY s.created_at
		LIMIT 1`
	return scanStudentWithClassroom(db.QueryRow(query, rollNumber))
}

// GetStudentByFullName matches "First Last" case-insensitively; the grades
// import falls back to this when a roll number is not given.
func GetStudentByFullName(db *sql.DB, fullName string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + `
		FROM students s
		JOIN classrooms c ON s.classroom_id = c.id
		WHERE LOWER(s.first_name || ' ' || s.last_name) = LOWER($1)
		ORDER BY s.created_at
		LIMIT 1`
	return scanStudentWithClassroom(db.QueryRow(query, fullName))
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students
		(first_name, last_name, date_of_birth, admission_date, roll_number, classroom_id,
		 father_name, contact_email, contact_phone, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	return db.QueryRow(query,
		s.FirstName, s.LastName, s.DateOfBirth, s.AdmissionDate, s.RollNumber, s.ClassroomID,
		s.FatherName, s.ContactEmail, s.ContactPhone, s.Address,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students SET
		first_name = $1, last_name = $2, date_of_birth = $3, admission_date = $4,
		roll_number = $5, classroom_id = $6, father_name = $7, contact_email = $8,
		contact_phone = $9, address = $10, updated_at = NOW()
		WHERE id = $11`
	_, err := db.Exec(query,
		s.FirstName, s.LastName, s.DateOfBirth, s.AdmissionDate,
		s.RollNumber, s.ClassroomID, s.FatherName, s.ContactEmail,
		s.ContactPhone, s.Address, s.ID,
	)
	return err
}

// DeleteStudent removes the student row; payments, grades and attendance
// cascade at the database level.
func DeleteStudent(db *sql.DB, id string) error {
	query := `DELETE FROM students WHERE id = $1`
	_, err := db.Exec(query, id)
	return err
}

func CountStudents(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&count)
	return count, err
}

package database

import (
	"database/sql"

	"github.com/ubada123/SchoolSoftware/app/models"
)

const gradeColumns = `g.id, g.student_id, g.subject, g.term, g.score, g.max_score, g.recorded_at,
	s.first_name, s.last_name, s.roll_number`

func scanGrade(row interface{ Scan(...interface{}) error }) (*models.Grade, error) {
	g := &models.Grade{}
	var firstName, lastName string
	err := row.Scan(
		&g.ID, &g.StudentID, &g.Subject, &g.Term, &g.Score, &g.MaxScore, &g.RecordedAt,
		&firstName, &lastName, &g.RollNumber,
	)
	if err != nil {
		return nil, err
	}
	g.StudentFullName = firstName + " " + lastName
	g.ComputePercentage()
	return g, nil
}

func GetAllGrades(db *sql.DB) ([]*models.Grade, error) {
	query := `SELECT ` + gradeColumns + `
		FROM grades g
		JOIN students s ON g.student_id = s.id
		ORDER BY g.recorded_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

func GetGradesByStudent(db *sql.DB, studentID string) ([]*models.Grade, error) {
	query := `SELECT ` + gradeColumns + `
		FROM grades g
		JOIN students s ON g.student_id = s.id
		WHERE g.student_id = $1
		ORDER BY g.recorded_at DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

func GetGradeByID(db *sql.DB, id string) (*models.Grade, error) {
	query := `SELECT ` + gradeColumns + `
		FROM grades g
		JOIN students s ON g.student_id = s.id
		WHERE g.id = $1`
	return scanGrade(db.QueryRow(query, id))
}

func CreateGrade(db *sql.DB, g *models.Grade) error {
	query := `INSERT INTO grades (student_id, subject, term, score, max_score)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, recorded_at`
	err := db.QueryRow(query, g.StudentID, g.Subject, g.Term, g.Score, g.MaxScore).
		Scan(&g.ID, &g.RecordedAt)
	if err != nil {
		return err
	}
	g.ComputePercentage()
	return nil
}

func UpdateGrade(db *sql.DB, g *models.Grade) error {
	query := `UPDATE grades SET student_id = $1, subject = $2, term = $3, score = $4, max_score = $5
			  WHERE id = $6`
	_, err := db.Exec(query, g.StudentID, g.Subject, g.Term, g.Score, g.MaxScore, g.ID)
	if err != nil {
		return err
	}
	g.ComputePercentage()
	return nil
}

func DeleteGrade(db *sql.DB, id string) error {
	query := `DELETE FROM grades WHERE id = $1`
	_, err := db.Exec(query, id)
	return err
}

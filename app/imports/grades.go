package imports

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
)

// gradeRow is a validated grade row with the student still unresolved.
type gradeRow struct {
	grade   models.Grade
	roll    string
	student string
}

func buildGradeRow(row Row) (*gradeRow, error) {
	if row["roll"] == "" && row["student"] == "" {
		return nil, fmt.Errorf("missing student reference (roll or student name)")
	}
	for _, field := range []string{"subject", "term", "score"} {
		if row[field] == "" {
			return nil, fmt.Errorf("missing required field %q", field)
		}
	}

	score, err := strconv.ParseFloat(row["score"], 64)
	if err != nil {
		return nil, fmt.Errorf("score: invalid number %q", row["score"])
	}

	maxScore := 100.0
	if row["max_score"] != "" {
		maxScore, err = strconv.ParseFloat(row["max_score"], 64)
		if err != nil {
			return nil, fmt.Errorf("max_score: invalid number %q", row["max_score"])
		}
	}
	if maxScore <= 0 {
		return nil, fmt.Errorf("max_score must be positive")
	}
	if score < 0 || score > maxScore {
		return nil, fmt.Errorf("score %v out of range 0..%v", score, maxScore)
	}

	return &gradeRow{
		grade:   models.Grade{Subject: row["subject"], Term: row["term"], Score: score, MaxScore: maxScore},
		roll:    row["roll"],
		student: row["student"],
	}, nil
}

// resolveStudent tries roll number first, then an exact full-name match.
func resolveStudent(db *sql.DB, roll, name string) (*models.Student, error) {
	if roll != "" {
		if s, err := database.GetStudentByRoll(db, roll); err == nil {
			return s, nil
		} else if err != sql.ErrNoRows {
			return nil, err
		}
	}
	if name != "" {
		if s, err := database.GetStudentByFullName(db, name); err == nil {
			return s, nil
		} else if err != sql.ErrNoRows {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no student matches roll %q or name %q", roll, name)
}

// ImportGrades bulk-creates grade records from CSV, one row at a time,
// continuing past failures.
func ImportGrades(db *sql.DB, r io.Reader) (*Result, error) {
	rows, err := ParseCSV(r, GradeAliases)
	if err != nil {
		return nil, err
	}

	result := &Result{Total: len(rows), Errors: []string{}}
	for i, row := range rows {
		rowNum := i + 2

		parsed, err := buildGradeRow(row)
		if err != nil {
			result.fail(rowNum, "%v", err)
			continue
		}

		student, err := resolveStudent(db, parsed.roll, parsed.student)
		if err != nil {
			result.fail(rowNum, "%v", err)
			continue
		}

		parsed.grade.StudentID = student.ID
		if err := database.CreateGrade(db, &parsed.grade); err != nil {
			result.fail(rowNum, "%v", err)
			continue
		}
		result.Created++
	}
	return result, nil
}

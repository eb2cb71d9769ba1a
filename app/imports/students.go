package imports

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/ubada123/SchoolSoftware/app/database"
	"github.com/ubada123/SchoolSoftware/app/models"
	"github.com/ubada123/SchoolSoftware/app/util"
)

// Result is the summary returned by every bulk import. It is always reached:
// a failing row is recorded and the import moves on to the next row.
type Result struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors"`
}

func (r *Result) fail(rowNum int, format string, args ...interface{}) {
	r.Failed++
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %s", rowNum, fmt.Sprintf(format, args...)))
}

const defaultSection = "A"
const defaultCapacity = 30

// studentRow is a validated row ready to persist, with the classroom still
// unresolved.
type studentRow struct {
	student      models.Student
	className    string
	classSection string
}

// buildStudentRow validates required fields and normalizes dates. It does not
// touch the database, so validation failures cost nothing.
func buildStudentRow(row Row) (*studentRow, error) {
	for _, field := range []string{"first_name", "last_name", "date_of_birth", "roll_number", "class"} {
		if row[field] == "" {
			return nil, fmt.Errorf("missing required field %q", field)
		}
	}

	dob, err := util.ParseFlexibleDate(row["date_of_birth"])
	if err != nil {
		return nil, fmt.Errorf("date_of_birth: %v", err)
	}

	s := models.Student{
		FirstName:    row["first_name"],
		LastName:     row["last_name"],
		DateOfBirth:  dob,
		RollNumber:   row["roll_number"],
		FatherName:   row["father_name"],
		ContactEmail: row["contact_email"],
		ContactPhone: row["contact_phone"],
		Address:      row["address"],
	}

	if row["admission_date"] != "" {
		adm, err := util.ParseFlexibleDate(row["admission_date"])
		if err != nil {
			return nil, fmt.Errorf("admission_date: %v", err)
		}
		s.AdmissionDate = &adm
	}

	section := row["section"]
	if section == "" {
		section = defaultSection
	}

	return &studentRow{student: s, className: row["class"], classSection: section}, nil
}

// ImportStudents runs the full CSV import: parse, then per row validate,
// resolve the classroom (creating it when absent), and insert. Rows are
// processed sequentially and failures never abort the batch.
func ImportStudents(db *sql.DB, r io.Reader) (*Result, error) {
	rows, err := ParseCSV(r, StudentAliases)
	if err != nil {
		return nil, err
	}

	result := &Result{Total: len(rows), Errors: []string{}}
	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		parsed, err := buildStudentRow(row)
		if err != nil {
			result.fail(rowNum, "%v", err)
			continue
		}

		classroom, err := database.EnsureClassroom(db, parsed.className, parsed.classSection, defaultCapacity)
		if err != nil {
			result.fail(rowNum, "classroom %s-%s: %v", parsed.className, parsed.classSection, err)
			continue
		}

		parsed.student.ClassroomID = classroom.ID
		if err := database.CreateStudent(db, &parsed.student); err != nil {
			result.fail(rowNum, "%v", err)
			continue
		}
		result.Created++
	}
	return result, nil
}

package database

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statementFor returns the CREATE TABLE statement for a table name.
func statementFor(t *testing.T, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " "
	for _, stmt := range schemaStatements {
		if strings.Contains(stmt, marker) {
			return stmt
		}
	}
	t.Fatalf("no schema statement for table %s", table)
	return ""
}

// Deleting a student removes their payments, grades and attendance;
// deleting a classroom with students is refused. Both behaviors live in
// the DDL, so pin the DDL.
func TestSchemaReferentialActions(t *testing.T) {
	studentRef := "REFERENCES students(id) ON DELETE CASCADE"
	for _, table := range []string{"payments", "grades", "attendance"} {
		assert.Contains(t, statementFor(t, table), studentRef, table)
	}

	assert.Contains(t, statementFor(t, "students"),
		"REFERENCES classrooms(id) ON DELETE RESTRICT")
	assert.Contains(t, statementFor(t, "sessions"),
		"REFERENCES users(id) ON DELETE CASCADE")
}

func TestSchemaUniqueConstraints(t *testing.T) {
	assert.Contains(t, statementFor(t, "classrooms"), "UNIQUE (name, section)")
	assert.Contains(t, statementFor(t, "students"), "UNIQUE (roll_number, classroom_id)")
	assert.Contains(t, statementFor(t, "grades"), "UNIQUE (student_id, subject, term)")
	assert.Contains(t, statementFor(t, "attendance"), "UNIQUE (student_id, date)")
}

var studentColumnNames = []string{
	"id", "first_name", "last_name", "date_of_birth", "admission_date",
	"roll_number", "classroom_id", "father_name", "contact_email", "contact_phone",
	"address", "created_at", "updated_at",
	"c_id", "c_name", "c_section", "c_capacity", "c_created_at", "c_updated_at",
}

func TestGetStudentsWithDetailsAppliesLimitOffset(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY s\.last_name, s\.first_name LIMIT \$1 OFFSET \$2`).
		WithArgs(25, 50).
		WillReturnRows(sqlmock.NewRows(studentColumnNames))

	students, err := GetStudentsWithDetails(db, StudentFilters{Limit: 25, Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, students)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentsWithDetailsSearchThenLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE \(s\.first_name ILIKE \$1 OR s\.last_name ILIKE \$1 OR s\.roll_number ILIKE \$1\).*LIMIT \$2`).
		WithArgs("%doe%", 10).
		WillReturnRows(sqlmock.NewRows(studentColumnNames))

	_, err = GetStudentsWithDetails(db, StudentFilters{Search: "doe", Limit: 10})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The date reaches the driver as plain text so the DATE comparison cannot
// shift with the process time zone.
func TestGetAttendanceByDateSendsCalendarDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	west := time.FixedZone("UTC-5", -5*60*60)
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, west)

	mock.ExpectQuery(`FROM attendance a`).
		WithArgs("2024-06-15").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "date", "status", "notes", "created_at",
			"first_name", "last_name", "roll_number",
		}))

	_, err = GetAttendanceByDate(db, day)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

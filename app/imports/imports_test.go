package imports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVHeaderAliasing(t *testing.T) {
	csv := "FirstName,Last,DOB,Roll,Class,Section\n" +
		"John,Doe,15-01-2010,A001,1,A\n"

	rows, err := ParseCSV(strings.NewReader(csv), StudentAliases)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "John", row["first_name"])
	assert.Equal(t, "Doe", row["last_name"])
	assert.Equal(t, "15-01-2010", row["date_of_birth"])
	assert.Equal(t, "A001", row["roll_number"])
	assert.Equal(t, "1", row["class"])
	assert.Equal(t, "A", row["section"])
}

func TestParseCSVSkipsBlankAndUnknownColumns(t *testing.T) {
	csv := "first_name,last_name,favourite_colour\n" +
		"Jane,Smith,blue\n" +
		",,\n" +
		"Bob,Brown,green\n"

	rows, err := ParseCSV(strings.NewReader(csv), StudentAliases)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	_, hasColour := rows[0]["favourite_colour"]
	assert.False(t, hasColour)
}

func TestParseCSVToleratesRaggedRows(t *testing.T) {
	csv := "first_name,last_name,roll_number\n" +
		"Jane,Smith\n" +
		"Bob,Brown,B002,extra\n"

	rows, err := ParseCSV(strings.NewReader(csv), StudentAliases)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0]["roll_number"])
	assert.Equal(t, "B002", rows[1]["roll_number"])
}

func TestBuildStudentRow(t *testing.T) {
	row := Row{
		"first_name":     "John",
		"last_name":      "Doe",
		"date_of_birth":  "15-01-2010",
		"admission_date": "01-06-2024",
		"roll_number":    "A001",
		"class":          "1",
		"section":        "A",
		"father_name":    "John Doe Sr.",
		"contact_email":  "john.doe@email.com",
	}

	parsed, err := buildStudentRow(row)
	require.NoError(t, err)
	assert.Equal(t, "2010-01-15", parsed.student.DateOfBirth.Format("2006-01-02"))
	require.NotNil(t, parsed.student.AdmissionDate)
	assert.Equal(t, "2024-06-01", parsed.student.AdmissionDate.Format("2006-01-02"))
	assert.Equal(t, "1", parsed.className)
	assert.Equal(t, "A", parsed.classSection)
}

func TestBuildStudentRowDefaultsSection(t *testing.T) {
	row := Row{
		"first_name":    "Jane",
		"last_name":     "Smith",
		"date_of_birth": "2011-03-20",
		"roll_number":   "B002",
		"class":         "2",
	}

	parsed, err := buildStudentRow(row)
	require.NoError(t, err)
	assert.Equal(t, "A", parsed.classSection)
	assert.Nil(t, parsed.student.AdmissionDate)
}

func TestBuildStudentRowMissingFields(t *testing.T) {
	tests := []struct {
		name string
		drop string
	}{
		{"missing first_name", "first_name"},
		{"missing last_name", "last_name"},
		{"missing date_of_birth", "date_of_birth"},
		{"missing roll_number", "roll_number"},
		{"missing class", "class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{
				"first_name":    "John",
				"last_name":     "Doe",
				"date_of_birth": "15-01-2010",
				"roll_number":   "A001",
				"class":         "1",
			}
			delete(row, tt.drop)

			_, err := buildStudentRow(row)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.drop)
		})
	}
}

func TestBuildStudentRowRejectsBadDate(t *testing.T) {
	row := Row{
		"first_name":    "John",
		"last_name":     "Doe",
		"date_of_birth": "2010/01/15",
		"roll_number":   "A001",
		"class":         "1",
	}
	_, err := buildStudentRow(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date_of_birth")
}

// Rows failing validation are rejected before any database access, so the
// continue-on-error accounting can be exercised without a database: N rows
// with M invalid must report created = N-M, failed = M, total = N and
// exactly M error entries.
func TestImportStudentsReportsPerRowFailures(t *testing.T) {
	csv := "first_name,last_name,date_of_birth,roll_number,class\n" +
		",Doe,15-01-2010,A001,1\n" +
		"Jane,,15-01-2010,A002,1\n" +
		"Bob,Brown,not-a-date,A003,1\n"

	result, err := ImportStudents(nil, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "Row 2")
	assert.Contains(t, result.Errors[1], "Row 3")
	assert.Contains(t, result.Errors[2], "Row 4")
}

func TestBuildGradeRow(t *testing.T) {
	row := Row{
		"roll":      "A001",
		"subject":   "Mathematics",
		"term":      "Term 1",
		"score":     "87.5",
		"max_score": "100",
	}

	parsed, err := buildGradeRow(row)
	require.NoError(t, err)
	assert.Equal(t, 87.5, parsed.grade.Score)
	assert.Equal(t, 100.0, parsed.grade.MaxScore)
	assert.Equal(t, "A001", parsed.roll)
}

func TestBuildGradeRowDefaultsMaxScore(t *testing.T) {
	row := Row{
		"student": "John Doe",
		"subject": "Science",
		"term":    "Term 2",
		"score":   "42",
	}

	parsed, err := buildGradeRow(row)
	require.NoError(t, err)
	assert.Equal(t, 100.0, parsed.grade.MaxScore)
}

func TestBuildGradeRowRejections(t *testing.T) {
	tests := []struct {
		name string
		row  Row
	}{
		{
			name: "no student reference",
			row:  Row{"subject": "Math", "term": "T1", "score": "50"},
		},
		{
			name: "score above max",
			row:  Row{"roll": "A001", "subject": "Math", "term": "T1", "score": "150", "max_score": "100"},
		},
		{
			name: "negative score",
			row:  Row{"roll": "A001", "subject": "Math", "term": "T1", "score": "-5"},
		},
		{
			name: "non-numeric score",
			row:  Row{"roll": "A001", "subject": "Math", "term": "T1", "score": "abc"},
		},
		{
			name: "zero max score",
			row:  Row{"roll": "A001", "subject": "Math", "term": "T1", "score": "0", "max_score": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildGradeRow(tt.row)
			require.Error(t, err)
		})
	}
}

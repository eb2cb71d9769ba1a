package imports

import (
	"encoding/csv"
	"io"
	"strings"
)

// Row is one CSV record keyed by canonical field name. Columns that matched
// no alias are dropped; missing columns are simply absent.
type Row map[string]string

// HeaderAliases maps a canonical field name to the source column names it
// accepts, in priority order. The canonical name itself always matches.
// This replaces the original client's ad hoc per-field fallback chains.
type HeaderAliases map[string][]string

// StudentAliases covers the column spellings seen in real upload files.
var StudentAliases = HeaderAliases{
	"first_name":     {"firstname", "first"},
	"last_name":      {"lastname", "last"},
	"date_of_birth":  {"dob"},
	"admission_date": {"admission"},
	"roll_number":    {"roll"},
	"class":          {"class_name", "classname"},
	"section":        {},
	"father_name":    {"father", "guardian_name"},
	"contact_email":  {"email"},
	"contact_phone":  {"phone"},
	"address":        {},
}

// GradeAliases covers the grade export/import column set.
var GradeAliases = HeaderAliases{
	"student":   {"name", "student_name"},
	"roll":      {"roll_number"},
	"subject":   {},
	"term":      {},
	"score":     {"marks"},
	"max_score": {"maxscore", "max_marks"},
}

// canonicalFor resolves a raw header cell to its canonical field name, or ""
// when the column is not recognized. Matching is case-insensitive and
// ignores surrounding whitespace.
func (a HeaderAliases) canonicalFor(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	for canonical, aliases := range a {
		if header == canonical {
			return canonical
		}
		for _, alias := range aliases {
			if header == alias {
				return canonical
			}
		}
	}
	return ""
}

// ParseCSV reads a headered CSV stream into canonical rows. Blank lines are
// skipped; ragged rows are tolerated so one malformed row cannot abort the
// whole import.
func ParseCSV(r io.Reader, aliases HeaderAliases) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	canonical := make([]string, len(header))
	for i, h := range header {
		canonical[i] = aliases.canonicalFor(h)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := Row{}
		empty := true
		for i, cell := range record {
			if i >= len(canonical) || canonical[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			row[canonical[i]] = cell
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

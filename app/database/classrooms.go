package database

import (
	"database/sql"

	"github.com/ubada123/SchoolSoftware/app/models"

	"github.com/lib/pq"
)

func GetAllClassrooms(db *sql.DB) ([]*models.Classroom, error) {
	query := `
		SELECT c.id, c.name, c.section, c.capacity, c.created_at, c.updated_at,
		       COUNT(s.id) AS student_count
		FROM classrooms c
		LEFT JOIN students s ON s.classroom_id = c.id
		GROUP BY c.id
		ORDER BY c.name, c.section`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classrooms []*models.Classroom
	for rows.Next() {
		c := &models.Classroom{}
		err := rows.Scan(&c.ID, &c.Name, &c.Section, &c.Capacity, &c.CreatedAt, &c.UpdatedAt, &c.StudentCount)
		if err != nil {
			return nil, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}

func GetClassroomByID(db *sql.DB, id string) (*models.Classroom, error) {
	c := &models.Classroom{}
	query := `SELECT id, name, section, capacity, created_at, updated_at FROM classrooms WHERE id = $1`
	err := db.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Section, &c.Capacity, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func GetClassroomByNameAndSection(db *sql.DB, name, section string) (*models.Classroom, error) {
	c := &models.Classroom{}
	query := `SELECT id, name, section, capacity, created_at, updated_at FROM classrooms WHERE name = $1 AND section = $2`
	err := db.QueryRow(query, name, section).Scan(&c.ID, &c.Name, &c.Section, &c.Capacity, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func CreateClassroom(db *sql.DB, c *models.Classroom) error {
	query := `INSERT INTO classrooms (name, section, capacity) VALUES ($1, $2, $3)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, c.Name, c.Section, c.Capacity).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// EnsureClassroom resolves a (name, section) pair to a classroom, creating it
// when absent. The UNIQUE(name, section) constraint guards against concurrent
// creation: on a unique violation the row was inserted by a racing request,
// so the lookup is retried instead of surfacing the conflict.
func EnsureClassroom(db *sql.DB, name, section string, capacity int) (*models.Classroom, error) {
	if c, err := GetClassroomByNameAndSection(db, name, section); err == nil {
		return c, nil
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	c := &models.Classroom{Name: name, Section: section, Capacity: capacity}
	err := CreateClassroom(db, c)
	if err == nil {
		return c, nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return GetClassroomByNameAndSection(db, name, section)
	}
	return nil, err
}

func UpdateClassroom(db *sql.DB, c *models.Classroom) error {
	query := `UPDATE classrooms SET name = $1, section = $2, capacity = $3, updated_at = NOW() WHERE id = $4`
	_, err := db.Exec(query, c.Name, c.Section, c.Capacity, c.ID)
	return err
}

func DeleteClassroom(db *sql.DB, id string) error {
	query := `DELETE FROM classrooms WHERE id = $1`
	_, err := db.Exec(query, id)
	return err
}

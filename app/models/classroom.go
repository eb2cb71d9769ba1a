package models

import "time"

// Classroom is a (grade name, section) grouping of students, e.g. ("5", "A").
// The (name, section) pair is unique at the database level.
type Classroom struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Section      string    `json:"section"`
	Capacity     int       `json:"capacity"`
	StudentCount int       `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Label returns the display form, e.g. "5 - A".
func (c *Classroom) Label() string {
	if c.Section == "" {
		return c.Name
	}
	return c.Name + " - " + c.Section
}

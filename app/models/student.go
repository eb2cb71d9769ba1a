package models

import "time"

type Student struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   time.Time  `json:"date_of_birth"`
	AdmissionDate *time.Time `json:"admission_date,omitempty"`
	RollNumber    string     `json:"roll_number"`
	ClassroomID   string     `json:"classroom_id"`
	FatherName    string     `json:"father_name,omitempty"`
	ContactEmail  string     `json:"contact_email,omitempty"`
	ContactPhone  string     `json:"contact_phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Classroom *Classroom `json:"classroom,omitempty"`
}

// FullName returns "First Last" for tables and payment rows.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

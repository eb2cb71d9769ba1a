package models

import "time"

// Attendance is one student's status for one calendar day.
// (student_id, date) is unique; marking the same day twice updates in place.
type Attendance struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`

	StudentFullName string `json:"student_full_name,omitempty"`
	RollNumber      string `json:"roll_number,omitempty"`
}

package models

import "time"

// Grade is a score for one student in one subject for one term.
// (student_id, subject, term) is unique at the database level.
type Grade struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	Subject    string    `json:"subject"`
	Term       string    `json:"term"`
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
	Percentage float64   `json:"percentage"`
	RecordedAt time.Time `json:"recorded_at"`

	StudentFullName string `json:"student_full_name,omitempty"`
	RollNumber      string `json:"roll_number,omitempty"`
}

// ComputePercentage fills Percentage from Score and MaxScore.
func (g *Grade) ComputePercentage() {
	if g.MaxScore > 0 {
		g.Percentage = g.Score / g.MaxScore * 100
	} else {
		g.Percentage = 0
	}
}

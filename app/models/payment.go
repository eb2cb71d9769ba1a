package models

import "time"

// Payment represents a fee record for a student. Balance and the overdue
// flag are never stored; they are recomputed on every read.
type Payment struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"student_id"`
	FeeType       string        `json:"fee_type"`
	TotalFee      float64       `json:"total_fee"`
	TotalPaid     float64       `json:"total_paid"`
	Balance       float64       `json:"balance"`
	PaymentDate   time.Time     `json:"payment_date"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	ReceiptNumber string        `json:"receipt_number,omitempty"`
	IsOverdue     bool          `json:"is_overdue"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	StudentFullName string `json:"student_full_name,omitempty"`
	RollNumber      string `json:"roll_number,omitempty"`
	ClassName       string `json:"class_name,omitempty"`
	Section         string `json:"section,omitempty"`
}

// ComputeDerived fills Balance and IsOverdue from the stored columns.
// A payment is overdue when the due date has passed and an outstanding
// balance remains. The comparison is between calendar dates, not instants:
// DATE columns scan as midnight UTC while today is midnight local, so an
// instant comparison would flag due-today payments in zones west of UTC.
func (p *Payment) ComputeDerived(today time.Time) {
	p.Balance = p.TotalFee - p.TotalPaid
	p.IsOverdue = p.DueDate != nil &&
		p.DueDate.Format("2006-01-02") < today.Format("2006-01-02") &&
		p.TotalPaid < p.TotalFee
}

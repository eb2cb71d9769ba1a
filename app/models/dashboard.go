package models

// DashboardStats is the snapshot rendered on the admin dashboard. Each field
// comes from an independent query; the view is eventually consistent.
type DashboardStats struct {
	TotalStudents     int        `json:"total_students"`
	TotalClassrooms   int        `json:"total_classrooms"`
	PaymentsThisMonth int        `json:"payments_this_month"`
	OverduePayments   int        `json:"overdue_payments"`
	RecentPayments    []*Payment `json:"recent_payments"`
	OverdueDetails    []*Payment `json:"overdue_details"`
}

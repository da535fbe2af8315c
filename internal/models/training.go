package models

import "time"

// TrainingRecord is the training_records row.
type TrainingRecord struct {
	TrainingID  string     `db:"training_id"`
	TenantID    string     `db:"tenant_id"`
	UserID      string     `db:"user_id"`
	CourseName  string     `db:"course_name"`
	Status      string     `db:"status"`
	AssignedAt  time.Time  `db:"assigned_at"`
	DueDate     time.Time  `db:"due_date"`
	CompletedAt *time.Time `db:"completed_at"`
	AuditFields
}

package domain

import "time"

// TrainingStatus is the completion state of a training assignment.
type TrainingStatus string

const (
	TrainingAssigned  TrainingStatus = "assigned"
	TrainingCompleted TrainingStatus = "completed"
)

// TrainingRecord is a course assigned to a user.
type TrainingRecord struct {
	TrainingID  string         `json:"trainingID"`
	TenantID    string         `json:"tenantID"`
	UserID      string         `json:"userID"`
	CourseName  string         `json:"courseName"`
	Status      TrainingStatus `json:"status"`
	AssignedAt  time.Time      `json:"assignedAt"`
	DueDate     time.Time      `json:"dueDate"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	AuditFields
}

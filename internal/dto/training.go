package dto

import "time"

// AssignTrainingRequest assigns a course to a user.
type AssignTrainingRequest struct {
	UserID     string    `json:"userID" binding:"required"`
	CourseName string    `json:"courseName" binding:"required,max=200"`
	DueDate    time.Time `json:"dueDate" binding:"required"`
}

// ListTrainingsParams defines query parameters for listing training records.
type ListTrainingsParams struct {
	UserID string `form:"userID"`
	ListParams
}

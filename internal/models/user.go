package models

import (
	"database/sql"
	"time"
)

// User represents a user of the application.
type User struct {
	UserID       string         `db:"user_id"`
	TenantID     string         `db:"tenant_id"`
	Email        string         `db:"email"`
	Name         string         `db:"name"`
	PasswordHash string         `db:"password_hash"`
	Role         string         `db:"role"`
	CompanyName  sql.NullString `db:"company_name"` // Only set for subcontractors
	IsActive     bool           `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

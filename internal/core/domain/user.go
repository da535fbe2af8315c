package domain

import "time"

// GlobalRole is a user's tenant-wide role.
type GlobalRole string

const (
	RoleSuperAdmin    GlobalRole = "super_admin"
	RoleSafetyOfficer GlobalRole = "safety_officer"
	RoleSupervisor    GlobalRole = "supervisor"
	RoleSubcontractor GlobalRole = "subcontractor"
	RoleEmployee      GlobalRole = "employee"
)

// GlobalRoles lists every valid global role.
var GlobalRoles = []GlobalRole{RoleSuperAdmin, RoleSafetyOfficer, RoleSupervisor, RoleSubcontractor, RoleEmployee}

// IsValid reports whether r is one of the known global roles.
func (r GlobalRole) IsValid() bool {
	for _, known := range GlobalRoles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (e.g., UUID)
	TenantID     string     `json:"tenantID"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         GlobalRole `json:"role"`
	CompanyName  string     `json:"companyName"` // Subcontractor company; groups subcontractor users for scoring
	IsActive     bool       `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

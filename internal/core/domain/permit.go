package domain

import "time"

// PermitStatus is the state of a work permit.
type PermitStatus string

const (
	PermitRequested PermitStatus = "requested"
	PermitApproved  PermitStatus = "approved"
	PermitDenied    PermitStatus = "denied"
	PermitExpired   PermitStatus = "expired"
)

// PermitRequest asks for permission to perform controlled work at a site within a validity window.
type PermitRequest struct {
	PermitID      string       `json:"permitID"`
	TenantID      string       `json:"tenantID"`
	SiteID        string       `json:"siteID"`
	PermitType    string       `json:"permitType"` // e.g. hot_work, confined_space, working_at_height
	Description   string       `json:"description"`
	Status        PermitStatus `json:"status"`
	StartDate     time.Time    `json:"startDate"`
	EndDate       time.Time    `json:"endDate"`
	RequestedBy   string       `json:"requestedBy"`
	DecidedBy     *string      `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time   `json:"decidedAt,omitempty"`
	DecisionNotes string       `json:"decisionNotes,omitempty"`
	ExpiredAt     *time.Time   `json:"expiredAt,omitempty"`
	IsActive      bool         `json:"isActive"`
	AuditFields
	Versioned
}

// PermitFilter narrows permit listings. Empty fields are ignored.
type PermitFilter struct {
	SiteID string
	// Status matches the observed status at AsOf, so approved permits past
	// their end date match expired and not approved.
	Status PermitStatus
	AsOf   time.Time
}

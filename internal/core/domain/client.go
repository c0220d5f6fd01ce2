package domain

import "time"

// Client is a person under care. Every client belongs to exactly one
// department; the assigned caregiver is optional.
type Client struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	DepartmentID int64      `json:"department_id"`
	CaregiverID  *int64     `json:"caregiver_id,omitempty"`
	Active       bool       `json:"active"`

	// Joined display fields.
	DepartmentName string `json:"department_name,omitempty"`
	CaregiverName  string `json:"caregiver_name,omitempty"`
}

// FullName returns "First Last".
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

package domain

// Role values are stored verbatim in the directory store; the schema keeps the
// original Dutch wire encoding so existing rows stay valid.
const (
	RoleManager     = "Manager"
	RoleCaregiver   = "Behandelaar"
	RoleSiteManager = "Vestigings Manager"
)

// User is a directory identity. The core treats users as read-only; they are
// created and mutated only by the directory store's administrative process.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"department_id,omitempty"`
	// SubjectID is the external identity-provider object id. Empty for users
	// that can only be reached through the demo path.
	SubjectID string `json:"subject_id,omitempty"`
	Active    bool   `json:"active"`

	// Joined department fields; empty for users without a department
	// (a site manager has cross-department scope and no department).
	DepartmentName string `json:"department_name,omitempty"`
	Region         string `json:"region,omitempty"`
}

// FullName returns "First Last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

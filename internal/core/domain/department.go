package domain

// Department groups users and clients. ManagerID references a user with the
// Manager role; it may be unset while a department is between managers.
type Department struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Region    string `json:"region"`
	ManagerID *int64 `json:"manager_id,omitempty"`
	Active    bool   `json:"active"`

	// Joined manager name, empty when ManagerID is unset.
	ManagerName string `json:"manager_name,omitempty"`
}

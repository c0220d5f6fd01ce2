package ports

import (
	"context"

	"github.com/zorgnet/care-access/internal/core/domain"
)

// OrganizationDepartment is one department node in the organization tree.
type OrganizationDepartment struct {
	Department       domain.Department   `json:"department"`
	Caregivers       []CaregiverCaseload `json:"caregivers"`
	TotalClientCount int                 `json:"total_client_count"`
}

// OrganizationTree is the full organization snapshot for the overview page.
// SiteManager is nil when no active site manager exists.
type OrganizationTree struct {
	SiteManager *domain.User             `json:"site_manager,omitempty"`
	Departments []OrganizationDepartment `json:"departments"`
}

// OrganizationService derives organizational views from the directory store.
// Peer visibility is organizational metadata, not protected data; no access
// filtering applies beyond department membership and active status.
type OrganizationService interface {
	// Peers returns the active users sharing the department, excluding the
	// caller. A nil department (site manager) has no peers.
	Peers(ctx context.Context, departmentID *int64, excludeUserID int64) ([]*domain.User, error)
	OrganizationTree(ctx context.Context) (*OrganizationTree, error)
}

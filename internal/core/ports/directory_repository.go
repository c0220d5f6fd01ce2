package ports

import (
	"context"

	"github.com/zorgnet/care-access/internal/core/domain"
)

// CaregiverCaseload pairs a caregiver with the number of active clients
// currently assigned to them.
type CaregiverCaseload struct {
	Caregiver     domain.User `json:"caregiver"`
	CaseloadCount int         `json:"caseload_count"`
}

// DirectoryRepository is the read contract against the directory store.
// Every method only sees active rows; inactive users, clients, departments,
// and grants are invisible to all callers.
type DirectoryRepository interface {
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	// FindUserBySubjectID matches the external subject id exactly and
	// case-sensitively.
	FindUserBySubjectID(ctx context.Context, subjectID string) (*domain.User, error)
	// FindUserByName matches on first name, or on first and last name when
	// lastName is non-empty. Ambiguous matches resolve to the first row in
	// store order.
	FindUserByName(ctx context.Context, firstName, lastName string) (*domain.User, error)

	// ListActiveClients returns all active clients in department-then-name
	// order, with department and caregiver names joined in.
	ListActiveClients(ctx context.Context) ([]*domain.Client, error)
	// ListActiveGrantsForUser returns the user's active access grants.
	ListActiveGrantsForUser(ctx context.Context, userID int64) ([]*domain.AccessGrant, error)

	// ListDepartmentPeers returns active users in a department except the
	// excluded user, ordered by role then first name.
	ListDepartmentPeers(ctx context.Context, departmentID, excludeUserID int64) ([]*domain.User, error)
	ListActiveDepartments(ctx context.Context) ([]*domain.Department, error)
	// FindSiteManager returns the active site manager, or ErrUserNotFound
	// when none exists. At most one active site manager is assumed.
	FindSiteManager(ctx context.Context) (*domain.User, error)
	// ListCaregiverCaseloads returns the department's active caregivers with
	// their caseload counts, ordered by first name.
	ListCaregiverCaseloads(ctx context.Context, departmentID int64) ([]CaregiverCaseload, error)

	CountActiveClients(ctx context.Context) (int, error)
	CountActiveClientsInDepartment(ctx context.Context, departmentID int64) (int, error)
	CountActiveClientsForCaregiver(ctx context.Context, caregiverID int64) (int, error)
}

package ports

import (
	"context"

	"github.com/zorgnet/care-access/internal/core/domain"
	"github.com/zorgnet/care-access/internal/core/palette"
)

// Reason strings attached to visible clients. Exactly one reason is recorded
// per visible client: the first rule that matched, never a union.
const (
	ReasonSiteWide      = "site-wide access"
	ReasonOwnDepartment = "manager access to own department"
	ReasonAssigned      = "assigned caregiver"
	ReasonDirectGrant   = "direct grant"
	ReasonManagerGrant  = "management-chain grant"
	ReasonDeptGrant     = "department grant"
)

// VisibleClient is one record the evaluated user may see, with the
// justification and the decorative color set.
type VisibleClient struct {
	Client domain.Client  `json:"client"`
	Reason string         `json:"reason"`
	Colors palette.Colors `json:"colors"`
}

// PolicyRule describes one access rule as it applies to a user, for display.
type PolicyRule struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
}

// AccessSummary explains which rules apply to a user and how many clients
// each scope contains.
type AccessSummary struct {
	UserName            string       `json:"user_name"`
	Role                string       `json:"role"`
	DepartmentID        *int64       `json:"department_id,omitempty"`
	DepartmentName      string       `json:"department_name"`
	TotalClients        int          `json:"total_clients"`
	ClientsInDepartment int          `json:"clients_in_department"`
	AssignedClients     int          `json:"assigned_clients"`
	Rules               []PolicyRule `json:"rules"`
}

// PolicyService resolves row-level access for users.
type PolicyService interface {
	// VisibleClients returns the clients the user may see, each annotated
	// with exactly one reason. An unknown user id yields an empty list, not
	// an error: a nonexistent identity sees nothing.
	VisibleClients(ctx context.Context, userID int64) ([]VisibleClient, error)
	// AccessSummary explains the rules in effect for the user.
	AccessSummary(ctx context.Context, userID int64) (*AccessSummary, error)
}

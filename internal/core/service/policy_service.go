package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zorgnet/care-access/internal/core/domain"
	"github.com/zorgnet/care-access/internal/core/palette"
	"github.com/zorgnet/care-access/internal/core/ports"
)

// PolicyService is the access-policy resolution engine. It decides, per
// (user, client) pair, whether access is granted and attaches the reason for
// the first rule that matched. Every call re-evaluates against the current
// store snapshot; results are never cached, so a grant or department change
// is visible on the next request.
type PolicyService struct {
	repo ports.DirectoryRepository
	log  zerolog.Logger
}

func NewPolicyService(repo ports.DirectoryRepository, log zerolog.Logger) *PolicyService {
	return &PolicyService{repo: repo, log: log}
}

// VisibleClients returns the clients the user may see, in department-then-name
// order, each annotated with exactly one reason and its display colors.
func (s *PolicyService) VisibleClients(ctx context.Context, userID int64) ([]ports.VisibleClient, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		// A nonexistent identity sees nothing; this is a deny, not a fault.
		return []ports.VisibleClient{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	clients, err := s.repo.ListActiveClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	grantsByClient, grantsByDepartment, err := s.loadGrants(ctx, userID)
	if err != nil {
		return nil, err
	}

	visible := make([]ports.VisibleClient, 0, len(clients))
	for _, c := range clients {
		reason, ok := decide(user, c, grantsByClient, grantsByDepartment)
		if !ok {
			continue
		}
		visible = append(visible, ports.VisibleClient{
			Client: *c,
			Reason: reason,
			Colors: palette.ForClient(c.DepartmentID, c.CaregiverID),
		})
	}

	s.log.Debug().
		Int64("user_id", userID).
		Str("role", user.Role).
		Int("visible", len(visible)).
		Int("total", len(clients)).
		Msg("access policy evaluated")

	return visible, nil
}

// loadGrants indexes the user's active grants by target. Rows violating the
// target XOR invariant are excluded outright: a malformed grant must never
// widen access.
func (s *PolicyService) loadGrants(ctx context.Context, userID int64) (map[int64]domain.GrantKind, map[int64]domain.GrantKind, error) {
	grants, err := s.repo.ListActiveGrantsForUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load grants: %w", err)
	}

	byClient := make(map[int64]domain.GrantKind)
	byDepartment := make(map[int64]domain.GrantKind)
	for _, g := range grants {
		if !g.TargetValid() {
			s.log.Warn().
				Int64("grant_id", g.ID).
				Int64("user_id", userID).
				Msg("access grant violates target invariant, ignoring")
			continue
		}
		if g.ClientID != nil {
			if _, seen := byClient[*g.ClientID]; !seen {
				byClient[*g.ClientID] = g.Kind
			}
			continue
		}
		if _, seen := byDepartment[*g.DepartmentID]; !seen {
			byDepartment[*g.DepartmentID] = g.Kind
		}
	}
	return byClient, byDepartment, nil
}

// decide applies the rule precedence for one client: role-based rules first,
// then the explicit-grant fallback. First match wins; a user who qualifies
// under several rules records only the first evaluated reason.
func decide(user *domain.User, c *domain.Client, byClient, byDepartment map[int64]domain.GrantKind) (string, bool) {
	switch user.Role {
	case domain.RoleSiteManager:
		return ports.ReasonSiteWide, true
	case domain.RoleManager:
		if user.DepartmentID != nil && *user.DepartmentID == c.DepartmentID {
			return ports.ReasonOwnDepartment, true
		}
	case domain.RoleCaregiver:
		if c.CaregiverID != nil && *c.CaregiverID == user.ID {
			return ports.ReasonAssigned, true
		}
	}

	// Explicit grants: a client-level target takes priority over a
	// department-level one when both exist for the same user.
	if kind, ok := byClient[c.ID]; ok {
		return grantReason(kind)
	}
	if kind, ok := byDepartment[c.DepartmentID]; ok {
		return grantReason(kind)
	}
	return "", false
}

func grantReason(kind domain.GrantKind) (string, bool) {
	switch kind {
	case domain.GrantDirect:
		return ports.ReasonDirectGrant, true
	case domain.GrantViaManager:
		return ports.ReasonManagerGrant, true
	case domain.GrantViaDepartment:
		return ports.ReasonDeptGrant, true
	}
	// Unknown kind: fail safe, treat as non-matching.
	return "", false
}

// AccessSummary explains the rule set in effect for a user together with the
// client counts per scope, for the dashboard's policy panel.
func (s *PolicyService) AccessSummary(ctx context.Context, userID int64) (*ports.AccessSummary, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountActiveClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}

	inDepartment := 0
	departmentName := "all departments"
	if user.DepartmentID != nil {
		inDepartment, err = s.repo.CountActiveClientsInDepartment(ctx, *user.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("count department clients: %w", err)
		}
		departmentName = user.DepartmentName
	}

	assigned, err := s.repo.CountActiveClientsForCaregiver(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count assigned clients: %w", err)
	}

	summary := &ports.AccessSummary{
		UserName:            user.FullName(),
		Role:                user.Role,
		DepartmentID:        user.DepartmentID,
		DepartmentName:      departmentName,
		TotalClients:        total,
		ClientsInDepartment: inDepartment,
		AssignedClients:     assigned,
	}

	switch user.Role {
	case domain.RoleSiteManager:
		summary.Rules = append(summary.Rules, ports.PolicyRule{
			Name:        "site manager rule",
			Description: "a site manager sees every client in every department",
			Effect:      fmt.Sprintf("you see all %d clients", total),
		})
	case domain.RoleManager:
		summary.Rules = append(summary.Rules, ports.PolicyRule{
			Name:        "manager rule",
			Description: fmt.Sprintf("a manager of %s sees every client in that department", departmentName),
			Effect:      fmt.Sprintf("you see %d clients in your department (of %d total)", inDepartment, total),
		})
	case domain.RoleCaregiver:
		summary.Rules = append(summary.Rules, ports.PolicyRule{
			Name:        "caregiver rule",
			Description: "a caregiver sees only the clients assigned to them",
			Effect:      fmt.Sprintf("you see %d assigned clients (of %d in your department, %d total)", assigned, inDepartment, total),
		})
	}
	summary.Rules = append(summary.Rules, ports.PolicyRule{
		Name:        "explicit grants",
		Description: "access grants can extend visibility beyond the role rules",
		Effect:      "checked per client",
	})

	return summary, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zorgnet/care-access/internal/core/domain"
	"github.com/zorgnet/care-access/internal/core/ports"
)

// OrgService derives peer and organization views from the directory store.
// It applies no row-level policy of its own beyond department membership and
// active status.
type OrgService struct {
	repo ports.DirectoryRepository
	log  zerolog.Logger
}

func NewOrgService(repo ports.DirectoryRepository, log zerolog.Logger) *OrgService {
	return &OrgService{repo: repo, log: log}
}

// Peers returns the active users in the department excluding the caller,
// ordered by role then first name. Users without a department have no peers.
func (s *OrgService) Peers(ctx context.Context, departmentID *int64, excludeUserID int64) ([]*domain.User, error) {
	if departmentID == nil {
		return []*domain.User{}, nil
	}
	return s.repo.ListDepartmentPeers(ctx, *departmentID, excludeUserID)
}

// OrganizationTree builds the full organization snapshot: the site manager
// (nil when none is active), and per department its caregivers with caseload
// counts plus the total active client count.
func (s *OrgService) OrganizationTree(ctx context.Context) (*ports.OrganizationTree, error) {
	siteManager, err := s.repo.FindSiteManager(ctx)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("load site manager: %w", err)
	}

	departments, err := s.repo.ListActiveDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}

	tree := &ports.OrganizationTree{
		SiteManager: siteManager,
		Departments: make([]ports.OrganizationDepartment, 0, len(departments)),
	}
	for _, dept := range departments {
		caregivers, err := s.repo.ListCaregiverCaseloads(ctx, dept.ID)
		if err != nil {
			return nil, fmt.Errorf("load caseloads for department %d: %w", dept.ID, err)
		}
		total, err := s.repo.CountActiveClientsInDepartment(ctx, dept.ID)
		if err != nil {
			return nil, fmt.Errorf("count clients for department %d: %w", dept.ID, err)
		}
		tree.Departments = append(tree.Departments, ports.OrganizationDepartment{
			Department:       *dept,
			Caregivers:       caregivers,
			TotalClientCount: total,
		})
	}

	return tree, nil
}

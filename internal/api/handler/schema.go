package handler

import (
	"time"

	"github.com/zorgnet/care-access/internal/core/domain"
	"github.com/zorgnet/care-access/internal/core/palette"
	"github.com/zorgnet/care-access/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// Response-only types owned by the transport layer. Intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes.

type userResponse struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	DepartmentID   *int64 `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	Region         string `json:"region,omitempty"`
}

type clientResponse struct {
	ID             int64          `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	FullName       string         `json:"full_name"`
	BirthDate      string         `json:"birth_date,omitempty"`
	DepartmentID   int64          `json:"department_id"`
	DepartmentName string         `json:"department_name,omitempty"`
	CaregiverID    *int64         `json:"caregiver_id,omitempty"`
	CaregiverName  string         `json:"caregiver_name,omitempty"`
	Reason         string         `json:"reason"`
	Colors         palette.Colors `json:"colors"`
}

type listClientsResponse struct {
	Data  []clientResponse `json:"data"`
	Total int              `json:"total"`
}

type policyRuleResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
}

type accessSummaryResponse struct {
	UserName            string               `json:"user_name"`
	Role                string               `json:"role"`
	DepartmentID        *int64               `json:"department_id,omitempty"`
	DepartmentName      string               `json:"department_name"`
	TotalClients        int                  `json:"total_clients"`
	ClientsInDepartment int                  `json:"clients_in_department"`
	AssignedClients     int                  `json:"assigned_clients"`
	Rules               []policyRuleResponse `json:"rules"`
}

type caregiverCaseloadResponse struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	CaseloadCount int    `json:"caseload_count"`
}

type organizationDepartmentResponse struct {
	ID               int64                       `json:"id"`
	Name             string                      `json:"name"`
	Region           string                      `json:"region"`
	ManagerID        *int64                      `json:"manager_id,omitempty"`
	ManagerName      string                      `json:"manager_name,omitempty"`
	Caregivers       []caregiverCaseloadResponse `json:"caregivers"`
	TotalClientCount int                         `json:"total_client_count"`
}

type organizationTreeResponse struct {
	SiteManager *userResponse                    `json:"site_manager,omitempty"`
	Departments []organizationDepartmentResponse `json:"departments"`
}

type demoTokenRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

type demoTokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type demoDashboardResponse struct {
	User          userResponse          `json:"user"`
	Clients       []clientResponse      `json:"clients"`
	Colleagues    []userResponse        `json:"colleagues"`
	AccessSummary accessSummaryResponse `json:"access_summary"`
}

// --- Mappers ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Email:          u.Email,
		Role:           u.Role,
		DepartmentID:   u.DepartmentID,
		DepartmentName: u.DepartmentName,
		Region:         u.Region,
	}
}

func toClientResponses(visible []ports.VisibleClient) []clientResponse {
	out := make([]clientResponse, 0, len(visible))
	for _, vc := range visible {
		birthDate := ""
		if vc.Client.BirthDate != nil {
			birthDate = vc.Client.BirthDate.Format(time.DateOnly)
		}
		out = append(out, clientResponse{
			ID:             vc.Client.ID,
			FirstName:      vc.Client.FirstName,
			LastName:       vc.Client.LastName,
			FullName:       vc.Client.FullName(),
			BirthDate:      birthDate,
			DepartmentID:   vc.Client.DepartmentID,
			DepartmentName: vc.Client.DepartmentName,
			CaregiverID:    vc.Client.CaregiverID,
			CaregiverName:  vc.Client.CaregiverName,
			Reason:         vc.Reason,
			Colors:         vc.Colors,
		})
	}
	return out
}

func toAccessSummaryResponse(s *ports.AccessSummary) accessSummaryResponse {
	rules := make([]policyRuleResponse, 0, len(s.Rules))
	for _, r := range s.Rules {
		rules = append(rules, policyRuleResponse(r))
	}
	return accessSummaryResponse{
		UserName:            s.UserName,
		Role:                s.Role,
		DepartmentID:        s.DepartmentID,
		DepartmentName:      s.DepartmentName,
		TotalClients:        s.TotalClients,
		ClientsInDepartment: s.ClientsInDepartment,
		AssignedClients:     s.AssignedClients,
		Rules:               rules,
	}
}

func toOrganizationTreeResponse(tree *ports.OrganizationTree) organizationTreeResponse {
	resp := organizationTreeResponse{
		Departments: make([]organizationDepartmentResponse, 0, len(tree.Departments)),
	}
	if tree.SiteManager != nil {
		sm := toUserResponse(tree.SiteManager)
		resp.SiteManager = &sm
	}
	for _, dept := range tree.Departments {
		caregivers := make([]caregiverCaseloadResponse, 0, len(dept.Caregivers))
		for _, cl := range dept.Caregivers {
			caregivers = append(caregivers, caregiverCaseloadResponse{
				ID:            cl.Caregiver.ID,
				FullName:      cl.Caregiver.FullName(),
				CaseloadCount: cl.CaseloadCount,
			})
		}
		resp.Departments = append(resp.Departments, organizationDepartmentResponse{
			ID:               dept.Department.ID,
			Name:             dept.Department.Name,
			Region:           dept.Department.Region,
			ManagerID:        dept.Department.ManagerID,
			ManagerName:      dept.Department.ManagerName,
			Caregivers:       caregivers,
			TotalClientCount: dept.TotalClientCount,
		})
	}
	return resp
}

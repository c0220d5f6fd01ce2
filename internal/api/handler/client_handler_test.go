package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/zorgnet/care-access/internal/core/domain"
	"github.com/zorgnet/care-access/internal/core/palette"
	"github.com/zorgnet/care-access/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubIdentityService struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubIdentityService) ResolveBySubjectID(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubIdentityService) ResolveByName(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubIdentityService) DemoToken(context.Context, string) (string, *domain.User, error) {
	return s.token, s.user, s.err
}

type stubPolicyService struct {
	visible []ports.VisibleClient
	summary *ports.AccessSummary
	err     error
}

func (s *stubPolicyService) VisibleClients(context.Context, int64) ([]ports.VisibleClient, error) {
	return s.visible, s.err
}

func (s *stubPolicyService) AccessSummary(context.Context, int64) (*ports.AccessSummary, error) {
	return s.summary, s.err
}

type stubOrgService struct {
	peers []*domain.User
	tree  *ports.OrganizationTree
	err   error
}

func (s *stubOrgService) Peers(context.Context, *int64, int64) ([]*domain.User, error) {
	return s.peers, s.err
}

func (s *stubOrgService) OrganizationTree(context.Context) (*ports.OrganizationTree, error) {
	return s.tree, s.err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func i64(v int64) *int64 { return &v }

func testUser() *domain.User {
	return &domain.User{
		ID:             4,
		FirstName:      "Ralph",
		LastName:       "Behandelaar",
		Email:          "ralph.behandelaar@zorgnet.nl",
		Role:           domain.RoleCaregiver,
		DepartmentID:   i64(1),
		DepartmentName: "Afdeling X",
		SubjectID:      "subject-123",
		Active:         true,
	}
}

func testVisibleClient() ports.VisibleClient {
	return ports.VisibleClient{
		Client: domain.Client{
			ID:             1,
			FirstName:      "Jan",
			LastName:       "Jansen",
			DepartmentID:   1,
			CaregiverID:    i64(4),
			DepartmentName: "Afdeling X",
			CaregiverName:  "Ralph Behandelaar",
			Active:         true,
		},
		Reason: ports.ReasonAssigned,
		Colors: palette.ForClient(1, i64(4)),
	}
}

// newAuthedContext builds an echo context as it looks after the Auth
// middleware ran.
func newAuthedContext(subjectID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if subjectID != "" {
		c.Set("subject_id", subjectID)
	}
	return c, rec
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestClientList(t *testing.T) {
	h := NewClientHandler(
		&stubIdentityService{user: testUser()},
		&stubPolicyService{visible: []ports.VisibleClient{testVisibleClient()}},
	)
	c, rec := newAuthedContext("subject-123")

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listClientsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("expected 1 client, got %+v", resp)
	}
	got := resp.Data[0]
	if got.FullName != "Jan Jansen" || got.Reason != ports.ReasonAssigned {
		t.Errorf("unexpected client payload: %+v", got)
	}
	if got.Colors.Text == "" {
		t.Error("expected color annotation in payload")
	}
}

func TestClientList_UnknownIdentityIsEmptyNotError(t *testing.T) {
	h := NewClientHandler(
		&stubIdentityService{err: domain.ErrUserNotFound},
		&stubPolicyService{},
	)
	c, rec := newAuthedContext("stranger")

	if err := h.List(c); err != nil {
		t.Fatalf("unknown identity must not be an error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listClientsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 0 || len(resp.Data) != 0 {
		t.Errorf("expected empty list, got %+v", resp)
	}
}

func TestClientList_MissingSubjectClaim(t *testing.T) {
	h := NewClientHandler(&stubIdentityService{}, &stubPolicyService{})
	c, _ := newAuthedContext("")

	err := h.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestClientList_PolicyFailurePropagates(t *testing.T) {
	h := NewClientHandler(
		&stubIdentityService{user: testUser()},
		&stubPolicyService{err: context.DeadlineExceeded},
	)
	c, _ := newAuthedContext("subject-123")

	if err := h.List(c); err == nil {
		t.Fatal("policy failure must propagate to the error handler")
	}
}

// ---------------------------------------------------------------------------
// AccessPolicy
// ---------------------------------------------------------------------------

func TestAccessPolicy(t *testing.T) {
	summary := &ports.AccessSummary{
		UserName:            "Ralph Behandelaar",
		Role:                domain.RoleCaregiver,
		DepartmentID:        i64(1),
		DepartmentName:      "Afdeling X",
		TotalClients:        20,
		ClientsInDepartment: 9,
		AssignedClients:     5,
		Rules: []ports.PolicyRule{
			{Name: "caregiver rule", Description: "d", Effect: "e"},
		},
	}
	h := NewClientHandler(
		&stubIdentityService{user: testUser()},
		&stubPolicyService{summary: summary},
	)
	c, rec := newAuthedContext("subject-123")

	if err := h.AccessPolicy(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp accessSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AssignedClients != 5 || len(resp.Rules) != 1 {
		t.Errorf("unexpected summary payload: %+v", resp)
	}
}

func TestAccessPolicy_UnknownIdentityPropagates(t *testing.T) {
	h := NewClientHandler(
		&stubIdentityService{err: domain.ErrUserNotFound},
		&stubPolicyService{},
	)
	c, _ := newAuthedContext("stranger")

	if err := h.AccessPolicy(c); err == nil {
		t.Fatal("expected the not-found error to propagate")
	}
}

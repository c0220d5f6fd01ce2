package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zorgnet/care-access/internal/core/ports"
)

// DemoHandler serves the name-based identity routes. These simulate signing in
// as a seeded user without a real identity provider and are only registered
// behind the demo gate; nothing here is reachable from a production entry
// point.
type DemoHandler struct {
	identity ports.IdentityService
	policy   ports.PolicyService
	org      ports.OrganizationService
}

func NewDemoHandler(identity ports.IdentityService, policy ports.PolicyService, org ports.OrganizationService) *DemoHandler {
	return &DemoHandler{identity: identity, policy: policy, org: org}
}

// Token handles POST /demo/token: mints a bearer token for a seeded user
// looked up by name, so demo clients go through the same Authorization flow
// as real ones.
//
// @Summary      Issue a demo bearer token for a named user
// @Tags         demo
// @Accept       json
// @Produce      json
// @Param        body  body      demoTokenRequest  true  "User name (first, or first and last)"
// @Success      200   {object}  demoTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /demo/token [post]
func (h *DemoHandler) Token(c echo.Context) error {
	var req demoTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.identity.DemoToken(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, demoTokenResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Dashboard handles GET /demo/dashboard/:name: the on-behalf-of demo flow.
// The service resolves the named user and evaluates the access policy as that
// user, assembling the same payload the authenticated dashboard uses.
//
// @Summary      Return the dashboard payload on behalf of a named user
// @Tags         demo
// @Produce      json
// @Param        name  path      string  true  "User name (first, or first and last)"
// @Success      200   {object}  demoDashboardResponse
// @Failure      404   {object}  errorResponse
// @Router       /demo/dashboard/{name} [get]
func (h *DemoHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.identity.ResolveByName(ctx, c.Param("name"))
	if err != nil {
		return err
	}

	visible, err := h.policy.VisibleClients(ctx, user.ID)
	if err != nil {
		return err
	}

	peers, err := h.org.Peers(ctx, user.DepartmentID, user.ID)
	if err != nil {
		return err
	}

	summary, err := h.policy.AccessSummary(ctx, user.ID)
	if err != nil {
		return err
	}

	colleagues := make([]userResponse, 0, len(peers))
	for _, p := range peers {
		colleagues = append(colleagues, toUserResponse(p))
	}

	return c.JSON(http.StatusOK, demoDashboardResponse{
		User:          toUserResponse(user),
		Clients:       toClientResponses(visible),
		Colleagues:    colleagues,
		AccessSummary: toAccessSummaryResponse(summary),
	})
}

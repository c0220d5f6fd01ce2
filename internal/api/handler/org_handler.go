package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zorgnet/care-access/internal/core/ports"
)

// OrgHandler serves the organization overview.
type OrgHandler struct {
	org ports.OrganizationService
}

func NewOrgHandler(org ports.OrganizationService) *OrgHandler {
	return &OrgHandler{org: org}
}

// Tree handles GET /v1/organization. The tree holds organizational metadata
// and caseload counts only, never row-level client data.
//
// @Summary      Return the organization tree with caseload counts
// @Tags         organization
// @Produce      json
// @Success      200  {object}  organizationTreeResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/organization [get]
func (h *OrgHandler) Tree(c echo.Context) error {
	tree, err := h.org.OrganizationTree(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrganizationTreeResponse(tree))
}

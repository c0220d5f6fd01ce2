package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zorgnet/care-access/internal/core/ports"
)

// UserHandler serves the caller's own profile and department peers.
type UserHandler struct {
	identity ports.IdentityService
	org      ports.OrganizationService
}

func NewUserHandler(identity ports.IdentityService, org ports.OrganizationService) *UserHandler {
	return &UserHandler{identity: identity, org: org}
}

// Me handles GET /v1/me.
//
// @Summary      Return the resolved profile of the caller
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	subjectID, err := ctxSubjectID(c)
	if err != nil {
		return err
	}

	user, err := h.identity.ResolveBySubjectID(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Colleagues handles GET /v1/colleagues.
//
// @Summary      List the caller's department colleagues
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/colleagues [get]
func (h *UserHandler) Colleagues(c echo.Context) error {
	subjectID, err := ctxSubjectID(c)
	if err != nil {
		return err
	}

	user, err := h.identity.ResolveBySubjectID(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}

	peers, err := h.org.Peers(c.Request().Context(), user.DepartmentID, user.ID)
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(peers))
	for _, p := range peers {
		out = append(out, toUserResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zorgnet/care-access/internal/api/metrics"
	"github.com/zorgnet/care-access/internal/core/domain"
	"github.com/zorgnet/care-access/internal/core/ports"
)

// ClientHandler serves the row-level filtered client views for the
// authenticated caller.
type ClientHandler struct {
	identity ports.IdentityService
	policy   ports.PolicyService
}

func NewClientHandler(identity ports.IdentityService, policy ports.PolicyService) *ClientHandler {
	return &ClientHandler{identity: identity, policy: policy}
}

// List handles GET /v1/clients.
//
// @Summary      List the clients visible to the caller
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listClientsResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	subjectID, err := ctxSubjectID(c)
	if err != nil {
		return err
	}

	start := time.Now()
	user, err := h.identity.ResolveBySubjectID(c.Request().Context(), subjectID)
	if errors.Is(err, domain.ErrUserNotFound) {
		// An unresolvable identity sees nothing; this is a deny, not a fault.
		metrics.PolicyEvaluationsTotal.WithLabelValues("unknown").Inc()
		return c.JSON(http.StatusOK, listClientsResponse{Data: []clientResponse{}})
	}
	if err != nil {
		return err
	}

	visible, err := h.policy.VisibleClients(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	metrics.PolicyEvaluationsTotal.WithLabelValues(user.Role).Inc()
	metrics.PolicyEvaluationDuration.Observe(time.Since(start).Seconds())
	for _, vc := range visible {
		metrics.ClientsGrantedTotal.WithLabelValues(vc.Reason).Inc()
	}

	return c.JSON(http.StatusOK, listClientsResponse{
		Data:  toClientResponses(visible),
		Total: len(visible),
	})
}

// AccessPolicy handles GET /v1/access-policy.
//
// @Summary      Explain the access rules in effect for the caller
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accessSummaryResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/access-policy [get]
func (h *ClientHandler) AccessPolicy(c echo.Context) error {
	subjectID, err := ctxSubjectID(c)
	if err != nil {
		return err
	}

	user, err := h.identity.ResolveBySubjectID(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}

	summary, err := h.policy.AccessSummary(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccessSummaryResponse(summary))
}

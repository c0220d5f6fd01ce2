package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubjectID extracts the subject id injected by the Auth middleware and
// fast-fails before any service call: a present, non-empty subject proves the
// middleware ran and the token carried an identity. A structurally valid token
// without an oid claim is operationally unusable and rejected with 401.
func ctxSubjectID(c echo.Context) (string, error) {
	subjectID, _ := c.Get("subject_id").(string)
	if subjectID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject identity")
	}
	return subjectID, nil
}

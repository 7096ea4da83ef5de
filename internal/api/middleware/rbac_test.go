package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/logica-uic/contest-backend/internal/core/domain"
)

func invokeRBAC(t *testing.T, role string, allowed ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/problems", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return RBAC(allowed...)(next)(c)
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	if err := invokeRBAC(t, domain.RoleOrganizer, domain.RoleOrganizer); err != nil {
		t.Fatalf("listed role rejected: %v", err)
	}
}

func TestRBAC_RejectsOtherRole(t *testing.T) {
	err := invokeRBAC(t, domain.RoleParticipant, domain.RoleOrganizer)
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestRBAC_RejectsMissingRole(t *testing.T) {
	err := invokeRBAC(t, "", domain.RoleOrganizer)
	assertHTTPStatus(t, err, http.StatusForbidden)
}

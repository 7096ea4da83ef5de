package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/logica-uic/contest-backend/pkg/sessiontok"
)

func newGuardedContext(t *testing.T, configure func(*http.Request)) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if configure != nil {
		configure(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	issuer := sessiontok.NewIssuer("guard-secret", time.Minute)
	next := func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("identity").(string))
	}
	return rec, Auth(issuer)(next)(c)
}

func TestAuth_CookieToken(t *testing.T) {
	issuer := sessiontok.NewIssuer("guard-secret", time.Minute)
	token, _, err := issuer.Issue("ann@x.com", "Ann", "participant")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	rec, err := newGuardedContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	})
	if err != nil {
		t.Fatalf("guard rejected a valid cookie token: %v", err)
	}
	if rec.Body.String() != "ann@x.com" {
		t.Fatalf("claims not injected, got %q", rec.Body.String())
	}
}

func TestAuth_BearerFallback(t *testing.T) {
	issuer := sessiontok.NewIssuer("guard-secret", time.Minute)
	token, _, err := issuer.Issue("ann@x.com", "Ann", "participant")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := newGuardedContext(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}); err != nil {
		t.Fatalf("guard rejected a valid bearer token: %v", err)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	_, err := newGuardedContext(t, nil)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := sessiontok.NewIssuer("guard-secret", -time.Minute)
	token, _, err := expired.Issue("ann@x.com", "Ann", "participant")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, gerr := newGuardedContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	})
	assertHTTPStatus(t, gerr, http.StatusUnauthorized)
}

func TestAuth_GarbageToken(t *testing.T) {
	_, err := newGuardedContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_WrongSecret(t *testing.T) {
	other := sessiontok.NewIssuer("other-secret", time.Minute)
	token, _, err := other.Issue("ann@x.com", "Ann", "participant")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, gerr := newGuardedContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	})
	assertHTTPStatus(t, gerr, http.StatusUnauthorized)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d", want, he.Code)
	}
}

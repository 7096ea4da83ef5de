package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// WelcomeHandler handles GET / — the public landing route.
type WelcomeHandler struct{}

func NewWelcomeHandler() *WelcomeHandler {
	return &WelcomeHandler{}
}

// Welcome greets unauthenticated visitors and points them at the auth routes.
//
// @Summary      Landing route
// @Tags         public
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *WelcomeHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":  "welcome to the contest backend",
		"login":    "/auth/login",
		"register": "/auth/register",
	})
}

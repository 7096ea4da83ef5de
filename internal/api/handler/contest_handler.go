package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/logica-uic/contest-backend/internal/core/ports"
)

// ContestHandler exposes the contest schedule.
type ContestHandler struct {
	service ports.ContestService
}

func NewContestHandler(service ports.ContestService) *ContestHandler {
	return &ContestHandler{service: service}
}

type createContestRequest struct {
	Name     string    `json:"contest_name" validate:"required"`
	StartsAt time.Time `json:"starts_at"    validate:"required"`
	EndsAt   time.Time `json:"ends_at"      validate:"required"`
}

// List handles GET /v1/contests.
//
// @Summary      List contests
// @Tags         contests
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   object
// @Failure      401  {object}  map[string]string
// @Router       /v1/contests [get]
func (h *ContestHandler) List(c echo.Context) error {
	contests, err := h.service.ListContests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contests)
}

// Create handles POST /v1/contests.
//
// @Summary      Schedule a contest
// @Tags         contests
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createContestRequest  true  "Contest details"
// @Success      201   {object}  object
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/contests [post]
func (h *ContestHandler) Create(c echo.Context) error {
	var req createContestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	contest, err := h.service.CreateContest(c.Request().Context(), ports.CreateContestInput{
		Name:     req.Name,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contest)
}

// Delete handles DELETE /v1/contests/:id.
//
// @Summary      Remove a contest
// @Tags         contests
// @Security     CookieAuth
// @Param        id  path  string  true  "Contest id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/contests/{id} [delete]
func (h *ContestHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteContest(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

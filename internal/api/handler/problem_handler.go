package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logica-uic/contest-backend/internal/core/ports"
)

// ProblemHandler exposes the problem catalog.
type ProblemHandler struct {
	service ports.ProblemService
}

func NewProblemHandler(service ports.ProblemService) *ProblemHandler {
	return &ProblemHandler{service: service}
}

type createProblemRequest struct {
	Name       string `json:"problem_name" validate:"required"`
	Difficulty string `json:"difficulty"   validate:"required,oneof=easy medium hard"`
	URL        string `json:"url"          validate:"required,url"`
}

// List handles GET /v1/problems.
//
// @Summary      List problems
// @Tags         problems
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   object
// @Failure      401  {object}  map[string]string
// @Router       /v1/problems [get]
func (h *ProblemHandler) List(c echo.Context) error {
	problems, err := h.service.ListProblems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, problems)
}

// Create handles POST /v1/problems.
//
// @Summary      Add a problem
// @Tags         problems
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createProblemRequest  true  "Problem details"
// @Success      201   {object}  object
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/problems [post]
func (h *ProblemHandler) Create(c echo.Context) error {
	var req createProblemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	problem, err := h.service.CreateProblem(c.Request().Context(), ports.CreateProblemInput{
		Name:       req.Name,
		Difficulty: req.Difficulty,
		URL:        req.URL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, problem)
}

// Delete handles DELETE /v1/problems/:id.
//
// @Summary      Remove a problem
// @Tags         problems
// @Security     CookieAuth
// @Param        id  path  string  true  "Problem id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/problems/{id} [delete]
func (h *ProblemHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProblem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "gigcircle.com/gigcircle/internal/data_models"
	middleware "gigcircle.com/gigcircle/internal/http/middlewares"
	"gigcircle.com/gigcircle/internal/http/validators"
)

func (h *Handler) ListGroups(c echo.Context) error {
	activeOnly, _ := strconv.ParseBool(c.QueryParam("active"))
	filter := dto.GroupFilter{
		Search:     c.QueryParam("search"),
		Category:   c.QueryParam("category"),
		ActiveOnly: activeOnly,
	}

	groups, err := h.groups.ListGroups(c.Request().Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(groups),
		"groups": groups,
	})
}

func (h *Handler) CreateGroup(c echo.Context) error {
	var req dto.CreateGroupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateGroupRequest(&req); err != nil {
		return err
	}

	group, err := h.groups.CreateGroup(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, group)
}

func (h *Handler) GetGroup(c echo.Context) error {
	view, err := h.groups.GetGroup(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) ToggleMembership(c echo.Context) error {
	result, err := h.groups.ToggleJoin(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteGroup(c echo.Context) error {
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	err := h.groups.DeleteGroup(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c), confirmed)
	if err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

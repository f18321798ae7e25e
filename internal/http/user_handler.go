package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "gigcircle.com/gigcircle/internal/data_models"
	middleware "gigcircle.com/gigcircle/internal/http/middlewares"
)

func (h *Handler) SignIn(c echo.Context) error {
	id, _ := middleware.CurrentIdentity(c)

	user, created, err := h.users.SignIn(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{
		"user":    user,
		"isAdmin": h.review.IsAdmin(user.ID),
	})
}

func (h *Handler) GetMe(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateMe(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.users.GetPublicProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) Sync(c echo.Context) error {
	view, err := h.users.Sync(c.Request().Context(), middleware.CurrentUserID(c), h.pollSeconds)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

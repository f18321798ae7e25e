package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	middleware "gigcircle.com/gigcircle/internal/http/middlewares"
	"gigcircle.com/gigcircle/internal/http/validators"
	model "gigcircle.com/gigcircle/internal/models"
)

func taskList(c echo.Context, tasks []model.Task) error {
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	filter := dto.TaskFilter{
		Search: c.QueryParam("search"),
		Status: constants.TaskStatus(c.QueryParam("status")),
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return taskList(c, tasks)
}

func (h *Handler) ListCreatedTasks(c echo.Context) error {
	tasks, err := h.tasks.ListCreatedTasks(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return taskList(c, tasks)
}

func (h *Handler) ListAssignedTasks(c echo.Context) error {
	tasks, err := h.tasks.ListAssignedTasks(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return taskList(c, tasks)
}

func (h *Handler) ListAppliedTasks(c echo.Context) error {
	tasks, err := h.tasks.ListAppliedTasks(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return taskList(c, tasks)
}

func (h *Handler) ApplyToTask(c echo.Context) error {
	task, err := h.tasks.ApplyToTask(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) AcceptApplicant(c echo.Context) error {
	var req dto.AcceptApplicantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateAcceptApplicantRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.AcceptApplicant(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c), req.ApplicantID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) MarkTaskComplete(c echo.Context) error {
	task, err := h.tasks.MarkWorkerComplete(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) VerifyTask(c echo.Context) error {
	task, err := h.tasks.VerifyAndPay(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.tasks.DeleteTask(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

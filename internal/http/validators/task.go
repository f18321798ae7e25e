package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "gigcircle.com/gigcircle/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if strings.TrimSpace(r.Deadline) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "deadline is required")
	}
	if strings.TrimSpace(r.Reward) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reward is required")
	}
	return nil
}

func ValidateAcceptApplicantRequest(r *dto.AcceptApplicantRequest) error {
	if strings.TrimSpace(r.ApplicantID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "applicantId is required")
	}
	return nil
}

package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "gigcircle.com/gigcircle/internal/data_models"
)

func ValidateCreateGroupRequest(r *dto.CreateGroupRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "location is required")
	}
	if r.MaxMembers <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "maxMembers is required")
	}
	return nil
}

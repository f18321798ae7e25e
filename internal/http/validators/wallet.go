package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "gigcircle.com/gigcircle/internal/data_models"
)

func ValidateDepositRequest(r *dto.DepositRequest) error {
	if r.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}
	if strings.TrimSpace(r.UTRNumber) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "utrNumber is required")
	}
	return nil
}

func ValidateWithdrawalRequest(r *dto.WithdrawalRequest) error {
	if r.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}
	if strings.TrimSpace(r.UPIID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "upiId is required")
	}
	return nil
}

package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "gigcircle.com/gigcircle/internal/data_models"
	middleware "gigcircle.com/gigcircle/internal/http/middlewares"
	"gigcircle.com/gigcircle/internal/http/validators"
)

const defaultHistoryLimit = 50

func (h *Handler) GetWallet(c echo.Context) error {
	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	view, err := h.wallet.History(c.Request().Context(), middleware.CurrentUserID(c), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) ListMyTransactions(c echo.Context) error {
	items, err := h.wallet.ListUserTransactions(c.Request().Context(), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(items),
		"transactions": items,
	})
}

func (h *Handler) SubmitDeposit(c echo.Context) error {
	var req dto.DepositRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateDepositRequest(&req); err != nil {
		return err
	}

	trx, err := h.wallet.SubmitDeposit(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, trx)
}

func (h *Handler) SubmitWithdrawal(c echo.Context) error {
	var req dto.WithdrawalRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateWithdrawalRequest(&req); err != nil {
		return err
	}

	w, err := h.wallet.SubmitWithdrawal(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, w)
}

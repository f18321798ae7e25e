package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"gigcircle.com/gigcircle/internal/constants"
	dto "gigcircle.com/gigcircle/internal/data_models"
	middleware "gigcircle.com/gigcircle/internal/http/middlewares"
)

func (h *Handler) ListForReview(c echo.Context) error {
	filter := dto.ReviewFilter{
		Type:   constants.TransactionType(c.QueryParam("type")),
		Status: constants.ReviewStatus(c.QueryParam("status")),
	}

	items, err := h.review.ListForReview(c.Request().Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(items),
		"transactions": items,
	})
}

func (h *Handler) ApproveDeposit(c echo.Context) error {
	return h.resolve(c, constants.ReviewApproved, func(ctx context.Context, admin, id, _ string) error {
		return h.review.ApproveDeposit(ctx, admin, id)
	})
}

func (h *Handler) RejectDeposit(c echo.Context) error {
	return h.resolve(c, constants.ReviewRejected, h.review.RejectDeposit)
}

func (h *Handler) CompleteWithdrawal(c echo.Context) error {
	return h.resolve(c, constants.ReviewCompleted, func(ctx context.Context, admin, id, _ string) error {
		return h.review.CompleteWithdrawal(ctx, admin, id)
	})
}

func (h *Handler) RejectWithdrawal(c echo.Context) error {
	return h.resolve(c, constants.ReviewRejected, h.review.RejectWithdrawal)
}

func (h *Handler) resolve(
	c echo.Context,
	status constants.ReviewStatus,
	action func(ctx context.Context, adminID, id, reason string) error,
) error {
	var req dto.ReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id := c.Param("id")
	if err := action(c.Request().Context(), middleware.CurrentUserID(c), id, req.Reason); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":     id,
		"status": status,
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	apperrors "gigcircle.com/gigcircle/internal/errors"
	middleware "gigcircle.com/gigcircle/internal/http/middlewares"
	"gigcircle.com/gigcircle/internal/services"
)

type Services struct {
	Users  *services.UserService
	Groups *services.GroupService
	Tasks  *services.TaskService
	Wallet *services.WalletService
	Review *services.ReviewService
}

type Handler struct {
	users       *services.UserService
	groups      *services.GroupService
	tasks       *services.TaskService
	wallet      *services.WalletService
	review      *services.ReviewService
	pollSeconds int
}

func NewHandler(svc Services, pollSeconds int) *Handler {
	return &Handler{
		users:       svc.Users,
		groups:      svc.Groups,
		tasks:       svc.Tasks,
		wallet:      svc.Wallet,
		review:      svc.Review,
		pollSeconds: pollSeconds,
	}
}

// fail turns a service error into an HTTP error. Anything that is not a domain exception is
// logged and reported as a generic failure.
func (h *Handler) fail(c echo.Context, err error) error {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}

	log.WithError(err).WithFields(log.Fields{
		"method":  c.Request().Method,
		"path":    c.Path(),
		"user_id": middleware.CurrentUserID(c),
	}).Error("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	return nil
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

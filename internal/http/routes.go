package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "gigcircle.com/gigcircle/internal/http/middlewares"
)

type RouteOptions struct {
	JWTSecret          string
	AdminUserID        string
	RateLimitPerMinute int
}

func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	limiter := middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute)

	e.Use(middleware.RequestLogger())
	e.GET("/health", h.Health, limiter)

	api := e.Group("", middleware.Identity(opts.JWTSecret), limiter)

	api.POST("/session", h.SignIn)
	api.GET("/me", h.GetMe)
	api.PATCH("/me", h.UpdateMe)
	api.GET("/users/:id", h.GetProfile)
	api.GET("/sync", h.Sync)

	api.GET("/groups", h.ListGroups)
	api.POST("/groups", h.CreateGroup)
	api.GET("/groups/:id", h.GetGroup)
	api.POST("/groups/:id/membership", h.ToggleMembership)
	api.DELETE("/groups/:id", h.DeleteGroup)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/created", h.ListCreatedTasks)
	api.GET("/tasks/assigned", h.ListAssignedTasks)
	api.GET("/tasks/applied", h.ListAppliedTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.POST("/tasks/:id/apply", h.ApplyToTask)
	api.POST("/tasks/:id/accept", h.AcceptApplicant)
	api.POST("/tasks/:id/complete", h.MarkTaskComplete)
	api.POST("/tasks/:id/verify", h.VerifyTask)
	api.DELETE("/tasks/:id", h.DeleteTask)

	api.GET("/wallet", h.GetWallet)
	api.GET("/wallet/transactions", h.ListMyTransactions)
	api.POST("/wallet/deposits", h.SubmitDeposit)
	api.POST("/wallet/withdrawals", h.SubmitWithdrawal)

	admin := api.Group("/admin", middleware.AdminOnly(opts.AdminUserID))
	admin.GET("/transactions", h.ListForReview)
	admin.POST("/deposits/:id/approve", h.ApproveDeposit)
	admin.POST("/deposits/:id/reject", h.RejectDeposit)
	admin.POST("/withdrawals/:id/complete", h.CompleteWithdrawal)
	admin.POST("/withdrawals/:id/reject", h.RejectWithdrawal)
}

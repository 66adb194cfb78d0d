package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tasktrack/internal/apperr"
	"tasktrack/internal/service"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	echo        *echo.Echo
	auth        *service.AuthService
	categories  *service.CategoryService
	tasks       *service.TaskService
	shares      *service.ShareService
	attachments *service.AttachmentService
	stats       *service.StatsService
}

func New(
	auth *service.AuthService,
	categories *service.CategoryService,
	tasks *service.TaskService,
	shares *service.ShareService,
	attachments *service.AttachmentService,
	stats *service.StatsService,
) *Server {
	s := &Server{
		auth:        auth,
		categories:  categories,
		tasks:       tasks,
		shares:      shares,
		attachments: attachments,
		stats:       stats,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Public routes
	e.POST("/register", s.handleRegister)
	e.POST("/login", s.handleLogin)

	// Everything else requires a bearer token.
	protected := e.Group("", s.requireAuth)
	protected.GET("/categories", s.handleListCategories)
	protected.POST("/categories", s.handleCreateCategory)
	protected.GET("/tasks", s.handleListTasks)
	protected.POST("/tasks", s.handleCreateTask)
	protected.PUT("/tasks/:id", s.handleUpdateTask)
	protected.DELETE("/tasks/:id", s.handleDeleteTask)
	protected.GET("/tasks/shared", s.handleListShared)
	protected.GET("/tasks/stats", s.handleStats)
	protected.POST("/tasks/:id/share", s.handleShareTask)
	protected.POST("/tasks/:id/attachment", s.handleAddAttachment)

	s.echo = e
	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// writeError converts service errors to the JSON error body. Anything
// without an apperr kind is a 500 for this request only.
func writeError(c echo.Context, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.JSON(statusFor(appErr.Kind()), echo.Map{"error": appErr.Error()})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"tasktrack/internal/apperr"
)

const userIDKey = "user_id"

// requireAuth validates the bearer token and stores the caller's user id
// in the request context. It rejects before any store operation runs.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header"})
		}

		userID, err := s.auth.ParseToken(parts[1])
		if err != nil {
			return writeError(c, err)
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// currentUserID returns the authenticated caller's id set by requireAuth.
func currentUserID(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("Invalid ID")
	}
	return uint(id), nil
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleListCategories(c echo.Context) error {
	summaries, err := s.categories.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	category, err := s.categories.Create(c.Request().Context(), currentUserID(c), req.Name, req.Color)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":    category.ID,
		"name":  category.Name,
		"color": category.Color,
	})
}

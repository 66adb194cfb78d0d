package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tasktrack/internal/service"
)

func (s *Server) handleListTasks(c echo.Context) error {
	summaries, err := s.tasks.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	task, err := s.tasks.Create(c.Request().Context(), currentUserID(c), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, service.TaskSummary{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
	})
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	taskID, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	task, err := s.tasks.Update(c.Request().Context(), currentUserID(c), taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, service.TaskSummary{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
	})
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	taskID, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.tasks.Delete(c.Request().Context(), currentUserID(c), taskID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}

func (s *Server) handleListShared(c echo.Context) error {
	details, err := s.shares.ListSharedWithMe(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

func (s *Server) handleShareTask(c echo.Context) error {
	taskID, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req ShareTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if err := s.shares.Share(c.Request().Context(), currentUserID(c), taskID, req.UserID, req.Permission); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task shared successfully"})
}

func (s *Server) handleAddAttachment(c echo.Context) error {
	taskID, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file provided"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file provided"})
	}
	defer src.Close()

	attachment, err := s.attachments.Add(c.Request().Context(), taskID, fileHeader.Filename, src)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       attachment.ID,
		"filename": attachment.Filename,
	})
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.stats.ForUser(c.Request().Context(), currentUserID(c), time.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

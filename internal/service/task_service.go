package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tasktrack/internal/apperr"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

// TaskSummary is the projection returned for a user's own task list.
type TaskSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
}

// TaskDetail is the full projection used wherever a task crosses a
// sharing boundary: category resolved to its name, attachments to
// their filenames.
type TaskDetail struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Priority    model.Priority `json:"priority"`
	Category    string         `json:"category,omitempty"`
	Attachments []string       `json:"attachments"`
}

// CreateTaskInput carries the fields accepted at task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     string // ISO-8601, optional
}

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *string // ISO-8601
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks       *repository.TaskRepository
	categories  *repository.CategoryRepository
	attachments *repository.AttachmentRepository
}

func NewTaskService(tasks *repository.TaskRepository, categories *repository.CategoryRepository, attachments *repository.AttachmentRepository) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, attachments: attachments}
}

// List returns summaries of all tasks owned by the user.
func (s *TaskService) List(ctx context.Context, userID uint) ([]TaskSummary, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]TaskSummary, 0, len(tasks))
	for _, task := range tasks {
		summaries = append(summaries, toSummary(&task))
	}
	return summaries, nil
}

// Create stores a new task owned by the user. The task starts open, at
// medium priority and without a category.
func (s *TaskService) Create(ctx context.Context, userID uint, input CreateTaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, apperr.Validation("title is required")
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     dueDate,
		Priority:    model.PriorityMedium,
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial update to a task the user owns. A task owned
// by someone else is reported as not found, never as forbidden.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.findOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		dueDate, err := parseDueDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}
	if input.Completed != nil && *input.Completed != task.Completed {
		task.Completed = *input.Completed
		if task.Completed {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	task.UpdatedAt = time.Now()

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task the user owns together with its shares and
// attachment records.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := s.findOwned(ctx, userID, taskID)
	if err != nil {
		return err
	}
	return s.tasks.DeleteCascade(ctx, task.ID)
}

// DetailedView builds the full projection for a task, loading its
// attachments when they are not already present.
func (s *TaskService) DetailedView(ctx context.Context, task *model.Task) (TaskDetail, error) {
	detail := TaskDetail{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		Priority:    task.Priority,
		Attachments: []string{},
	}

	if task.CategoryID != nil {
		category, err := s.categories.FindByID(ctx, *task.CategoryID)
		if err != nil {
			return TaskDetail{}, err
		}
		if category != nil {
			detail.Category = category.Name
		}
	}

	attachments := task.Attachments
	if attachments == nil {
		var err error
		attachments, err = s.attachments.ListByTask(ctx, task.ID)
		if err != nil {
			return TaskDetail{}, err
		}
	}
	for _, att := range attachments {
		detail.Attachments = append(detail.Attachments, att.Filename)
	}
	return detail, nil
}

func (s *TaskService) findOwned(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindOwned(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Task not found")
		}
		return nil, fmt.Errorf("find task %d: %w", taskID, err)
	}
	return task, nil
}

func toSummary(task *model.Task) TaskSummary {
	return TaskSummary{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
	}
}

// parseDueDate accepts ISO-8601 timestamps with or without a zone
// offset. Empty input means no due date.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.Validation(fmt.Sprintf("invalid due_date %q", raw))
}

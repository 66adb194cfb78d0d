package service

import (
	"context"

	"tasktrack/internal/apperr"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

// CategorySummary is a category annotated with its live task count.
type CategorySummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TaskCount int64  `json:"task_count"`
}

// CategoryService provides helpers around categories.
type CategoryService struct {
	categories *repository.CategoryRepository
	tasks      *repository.TaskRepository
}

func NewCategoryService(categories *repository.CategoryRepository, tasks *repository.TaskRepository) *CategoryService {
	return &CategoryService{categories: categories, tasks: tasks}
}

// List returns the user's categories in creation order with task counts.
func (s *CategoryService) List(ctx context.Context, userID uint) ([]CategorySummary, error) {
	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]CategorySummary, 0, len(categories))
	for _, cat := range categories {
		count, err := s.tasks.CountByCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CategorySummary{
			ID:        cat.ID,
			Name:      cat.Name,
			Color:     cat.Color,
			TaskCount: count,
		})
	}
	return summaries, nil
}

// Create adds a category for the user. Color falls back to the default
// when empty; no hex validation beyond that.
func (s *CategoryService) Create(ctx context.Context, userID uint, name, color string) (*model.Category, error) {
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if color == "" {
		color = model.DefaultColor
	}

	category := model.Category{UserID: userID, Name: name, Color: color}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

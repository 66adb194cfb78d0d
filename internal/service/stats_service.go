package service

import (
	"context"
	"time"

	"tasktrack/internal/repository"
)

// CategoryStats is one per-category row of the stats report.
type CategoryStats struct {
	Category       string `json:"category"`
	TotalTasks     int64  `json:"total_tasks"`
	CompletedTasks int64  `json:"completed_tasks"`
}

// Stats aggregates a user's task counts.
type Stats struct {
	TotalTasks     int64           `json:"total_tasks"`
	CompletedTasks int64           `json:"completed_tasks"`
	OverdueTasks   int64           `json:"overdue_tasks"`
	CompletionRate float64         `json:"completion_rate"`
	CategoryStats  []CategoryStats `json:"category_stats"`
}

// StatsService derives completion and overdue counts from stored tasks.
type StatsService struct {
	tasks      *repository.TaskRepository
	categories *repository.CategoryRepository
}

func NewStatsService(tasks *repository.TaskRepository, categories *repository.CategoryRepository) *StatsService {
	return &StatsService{tasks: tasks, categories: categories}
}

// ForUser computes the aggregate plus a per-category breakdown in
// category creation order. A user with no tasks gets a completion rate
// of exactly 0.
func (s *StatsService) ForUser(ctx context.Context, userID uint, now time.Time) (*Stats, error) {
	total, err := s.tasks.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.tasks.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	overdue, err := s.tasks.CountOverdueByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	stats := Stats{
		TotalTasks:     total,
		CompletedTasks: completed,
		OverdueTasks:   overdue,
		CategoryStats:  []CategoryStats{},
	}
	if total > 0 {
		stats.CompletionRate = float64(completed) / float64(total) * 100
	}

	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, cat := range categories {
		catTotal, err := s.tasks.CountByCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		catCompleted, err := s.tasks.CountCompletedByCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		stats.CategoryStats = append(stats.CategoryStats, CategoryStats{
			Category:       cat.Name,
			TotalTasks:     catTotal,
			CompletedTasks: catCompleted,
		})
	}
	return &stats, nil
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tasktrack/internal/model"
)

// ShareRepository records task-sharing grants.
type ShareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

func (r *ShareRepository) Create(ctx context.Context, share *model.TaskShare) error {
	if err := r.db.WithContext(ctx).Create(share).Error; err != nil {
		return fmt.Errorf("create share: %w", err)
	}
	return nil
}

// ListForRecipient returns every grant naming userID, oldest first.
func (r *ShareRepository) ListForRecipient(ctx context.Context, userID uint) ([]model.TaskShare, error) {
	var shares []model.TaskShare
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id ASC").Find(&shares).Error; err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	return shares, nil
}

// CountForTask returns how many grants exist for a task. Duplicates count.
func (r *ShareRepository) CountForTask(ctx context.Context, taskID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TaskShare{}).
		Where("task_id = ?", taskID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count shares: %w", err)
	}
	return count, nil
}

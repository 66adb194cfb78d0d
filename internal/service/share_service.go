package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tasktrack/internal/apperr"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

// ShareService records and resolves task-sharing grants.
//
// Two source behaviors are kept as-is: the recipient id is not checked
// against the user table, and sharing the same task to the same user
// twice records two grants.
type ShareService struct {
	shares  *repository.ShareRepository
	tasks   *repository.TaskRepository
	taskSvc *TaskService
}

func NewShareService(shares *repository.ShareRepository, tasks *repository.TaskRepository, taskSvc *TaskService) *ShareService {
	return &ShareService{shares: shares, tasks: tasks, taskSvc: taskSvc}
}

// Share grants a recipient access to a task the owner owns. Permission
// defaults to view. A task not owned by ownerID is reported as not found.
func (s *ShareService) Share(ctx context.Context, ownerID, taskID, recipientID uint, permission string) error {
	if permission == "" {
		permission = model.PermissionView
	}
	if permission != model.PermissionView && permission != model.PermissionEdit {
		return apperr.Validation(fmt.Sprintf("invalid permission %q", permission))
	}

	if _, err := s.tasks.FindOwned(ctx, ownerID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Task not found")
		}
		return fmt.Errorf("find task %d: %w", taskID, err)
	}

	share := model.TaskShare{TaskID: taskID, UserID: recipientID, Permission: permission}
	return s.shares.Create(ctx, &share)
}

// ListSharedWithMe returns the detailed view of every task shared to the
// user, in grant order. View and edit grants are returned alike.
func (s *ShareService) ListSharedWithMe(ctx context.Context, userID uint) ([]TaskDetail, error) {
	shares, err := s.shares.ListForRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]TaskDetail, 0, len(shares))
	for _, share := range shares {
		task, err := s.tasks.FindByIDWithAttachments(ctx, share.TaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Grant outlived its task; skip it.
				continue
			}
			return nil, fmt.Errorf("load shared task %d: %w", share.TaskID, err)
		}
		detail, err := s.taskSvc.DetailedView(ctx, task)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

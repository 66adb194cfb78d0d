package service

import (
	"context"
	"testing"

	"tasktrack/internal/apperr"
	"tasktrack/internal/model"
)

func TestShare_NotOwnedIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, 1, CreateTaskInput{Title: "Owned by 1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = env.shareSvc.Share(ctx, 2, task.ID, 3, "")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("sharing someone else's task should be not-found, got %v", err)
	}
}

func TestShare_DefaultPermissionIsView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, 1, CreateTaskInput{Title: "Shared"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := env.shareSvc.Share(ctx, 1, task.ID, 2, ""); err != nil {
		t.Fatalf("share failed: %v", err)
	}

	shares, err := env.shareRepo.ListForRecipient(ctx, 2)
	if err != nil {
		t.Fatalf("list shares: %v", err)
	}
	if len(shares) != 1 || shares[0].Permission != model.PermissionView {
		t.Errorf("shares = %+v, want one view grant", shares)
	}
}

func TestShare_InvalidPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, 1, CreateTaskInput{Title: "Shared"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = env.shareSvc.Share(ctx, 1, task.ID, 2, "admin")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

// Sharing twice with the same recipient records two grants. The ledger
// does not de-duplicate; this test documents that behavior.
func TestShare_DuplicateProducesTwoRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, 1, CreateTaskInput{Title: "Popular"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := env.shareSvc.Share(ctx, 1, task.ID, 2, model.PermissionView); err != nil {
		t.Fatalf("first share failed: %v", err)
	}
	if err := env.shareSvc.Share(ctx, 1, task.ID, 2, model.PermissionEdit); err != nil {
		t.Fatalf("second share failed: %v", err)
	}

	count, err := env.shareRepo.CountForTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("count shares: %v", err)
	}
	if count != 2 {
		t.Errorf("share count = %d, want 2", count)
	}
}

// The recipient id is not checked against the user table; a grant to a
// nonexistent user is accepted.
func TestShare_UnknownRecipientAccepted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.Create(ctx, 1, CreateTaskInput{Title: "Shared blind"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := env.shareSvc.Share(ctx, 1, task.ID, 9999, ""); err != nil {
		t.Errorf("grant to unknown recipient rejected: %v", err)
	}
}

func TestListSharedWithMe_ReturnsDetailedViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	viewTask, err := env.taskSvc.Create(ctx, 1, CreateTaskInput{Title: "View me"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	editTask, err := env.taskSvc.Create(ctx, 1, CreateTaskInput{Title: "Edit me"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := env.shareSvc.Share(ctx, 1, viewTask.ID, 2, model.PermissionView); err != nil {
		t.Fatalf("share failed: %v", err)
	}
	if err := env.shareSvc.Share(ctx, 1, editTask.ID, 2, model.PermissionEdit); err != nil {
		t.Fatalf("share failed: %v", err)
	}

	details, err := env.shareSvc.ListSharedWithMe(ctx, 2)
	if err != nil {
		t.Fatalf("list shared: %v", err)
	}
	// Both permission levels come back alike, in grant order.
	if len(details) != 2 {
		t.Fatalf("shared tasks = %d, want 2", len(details))
	}
	if details[0].Title != "View me" || details[1].Title != "Edit me" {
		t.Errorf("unexpected order: %q, %q", details[0].Title, details[1].Title)
	}

	other, err := env.shareSvc.ListSharedWithMe(ctx, 3)
	if err != nil {
		t.Fatalf("list shared for stranger: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("stranger sees %d shared tasks, want 0", len(other))
	}
}

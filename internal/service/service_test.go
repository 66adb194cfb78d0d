package service

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"tasktrack/internal/repository"
)

// testEnv bundles the repositories and services under test, backed by a
// throwaway SQLite file.
type testEnv struct {
	db          *gorm.DB
	users       *repository.UserRepository
	categories  *repository.CategoryRepository
	tasks       *repository.TaskRepository
	shareRepo   *repository.ShareRepository
	attachRepo  *repository.AttachmentRepository
	auth        *AuthService
	taskSvc     *TaskService
	categorySvc *CategoryService
	shareSvc    *ShareService
	statsSvc    *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	env := &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		categories: repository.NewCategoryRepository(db),
		tasks:      repository.NewTaskRepository(db),
		shareRepo:  repository.NewShareRepository(db),
		attachRepo: repository.NewAttachmentRepository(db),
	}
	env.auth = NewAuthService(env.users, []byte("test-secret"), time.Hour)
	env.taskSvc = NewTaskService(env.tasks, env.categories, env.attachRepo)
	env.categorySvc = NewCategoryService(env.categories, env.tasks)
	env.shareSvc = NewShareService(env.shareRepo, env.tasks, env.taskSvc)
	env.statsSvc = NewStatsService(env.tasks, env.categories)
	return env
}

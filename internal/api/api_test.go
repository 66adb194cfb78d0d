package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"tasktrack/internal/repository"
	"tasktrack/internal/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	shareRepo := repository.NewShareRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	authSvc := service.NewAuthService(userRepo, []byte("test-secret"), time.Hour)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo, attachmentRepo)
	categorySvc := service.NewCategoryService(categoryRepo, taskRepo)
	shareSvc := service.NewShareService(shareRepo, taskRepo, taskSvc)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, filepath.Join(t.TempDir(), "uploads"))
	statsSvc := service.NewStatsService(taskRepo, categoryRepo)

	return New(authSvc, categorySvc, taskSvc, shareSvc, attachmentSvc, statsSvc)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func registerAndLogin(t *testing.T, s *Server, username, password string) string {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/register", "", map[string]string{
		"username": username, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/login", "", map[string]string{
		"username": username, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &resp)
	if resp.AccessToken == "" {
		t.Fatal("login returned no token")
	}
	return resp.AccessToken
}

func TestRegister_Conflict(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/register", "", map[string]string{"username": "alice", "password": "pw1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: status %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/register", "", map[string]string{"username": "alice", "password": "pw2"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: status %d, want 400", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rec, &resp)
	if resp.Error != "Username already exists" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	registerAndLogin(t, s, "alice", "pw1")

	rec := doJSON(t, s, http.MethodPost, "/login", "", map[string]string{"username": "alice", "password": "nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rec, &resp)
	if resp.Error != "Invalid username or password" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/tasks", "/categories", "/tasks/stats", "/tasks/shared"} {
		rec := doJSON(t, s, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, rec.Code)
		}
	}

	rec := doJSON(t, s, http.MethodGet, "/tasks", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", rec.Code)
	}
}

func TestTaskLifecycle_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice", "pw1")

	tomorrow := time.Now().Add(24 * time.Hour).UTC().Format("2006-01-02T15:04:05")
	rec := doJSON(t, s, http.MethodPost, "/tasks", token, map[string]string{
		"title":    "Buy milk",
		"due_date": tomorrow,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created service.TaskSummary
	decode(t, rec, &created)
	if created.Title != "Buy milk" || created.Completed {
		t.Fatalf("created = %+v", created)
	}

	rec = doJSON(t, s, http.MethodGet, "/tasks", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list tasks: status %d", rec.Code)
	}
	var list []service.TaskSummary
	decode(t, rec, &list)
	if len(list) != 1 || list[0].ID != created.ID || list[0].Completed {
		t.Fatalf("list = %+v", list)
	}

	rec = doJSON(t, s, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), token, map[string]any{
		"completed": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete task: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/tasks/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: status %d", rec.Code)
	}
	var stats service.Stats
	decode(t, rec, &stats)
	if stats.TotalTasks != 1 || stats.CompletedTasks != 1 {
		t.Errorf("stats = %+v, want 1 total, 1 completed", stats)
	}
	if stats.CompletionRate != 100 {
		t.Errorf("completion rate = %v, want 100", stats.CompletionRate)
	}
}

func TestUpdateTask_CrossUserIs404(t *testing.T) {
	s := newTestServer(t)
	aliceToken := registerAndLogin(t, s, "alice", "pw1")
	bobToken := registerAndLogin(t, s, "bob", "pw2")

	rec := doJSON(t, s, http.MethodPost, "/tasks", aliceToken, map[string]string{"title": "Alice's"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d", rec.Code)
	}
	var created service.TaskSummary
	decode(t, rec, &created)

	rec = doJSON(t, s, http.MethodPut, fmt.Sprintf("/tasks/%d", created.ID), bobToken, map[string]string{"title": "Bob's now"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user update: status %d, want 404", rec.Code)
	}
	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/tasks/%d", created.ID), bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user delete: status %d, want 404", rec.Code)
	}
}

func TestCreateTask_BadDueDate(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice", "pw1")

	rec := doJSON(t, s, http.MethodPost, "/tasks", token, map[string]string{
		"title":    "Broken",
		"due_date": "not-a-date",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCategories_CreateAndListWithCounts(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice", "pw1")

	rec := doJSON(t, s, http.MethodPost, "/categories", token, map[string]string{"name": "Work"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: status %d", rec.Code)
	}
	var created struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	decode(t, rec, &created)
	if created.Color != "#000000" {
		t.Errorf("default color = %q, want #000000", created.Color)
	}

	rec = doJSON(t, s, http.MethodGet, "/categories", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list categories: status %d", rec.Code)
	}
	var list []service.CategorySummary
	decode(t, rec, &list)
	if len(list) != 1 || list[0].Name != "Work" || list[0].TaskCount != 0 {
		t.Errorf("list = %+v", list)
	}
}

func TestShareAndListShared(t *testing.T) {
	s := newTestServer(t)
	aliceToken := registerAndLogin(t, s, "alice", "pw1")
	bobToken := registerAndLogin(t, s, "bob", "pw2")

	rec := doJSON(t, s, http.MethodPost, "/tasks", aliceToken, map[string]string{"title": "Team task"})
	var created service.TaskSummary
	decode(t, rec, &created)

	// Bob is user 2; share Alice's task with him.
	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/tasks/%d/share", created.ID), aliceToken, map[string]any{
		"user_id": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("share: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/tasks/shared", bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list shared: status %d", rec.Code)
	}
	var shared []service.TaskDetail
	decode(t, rec, &shared)
	if len(shared) != 1 || shared[0].Title != "Team task" {
		t.Fatalf("shared = %+v", shared)
	}

	// Sharing a task Bob does not own is indistinguishable from missing.
	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/tasks/%d/share", created.ID), bobToken, map[string]any{
		"user_id": 1,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("share foreign task: status %d, want 404", rec.Code)
	}
}

func TestAttachment_Upload(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "alice", "pw1")

	rec := doJSON(t, s, http.MethodPost, "/tasks", token, map[string]string{"title": "With file"})
	var created service.TaskSummary
	decode(t, rec, &created)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "../secret/notes.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("contents"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/tasks/%d/attachment", created.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	s.Handler().ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("upload: status %d, body %s", res.Code, res.Body.String())
	}
	var resp struct {
		ID       uint   `json:"id"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Filename != "notes.txt" {
		t.Errorf("sanitized filename = %q, want notes.txt", resp.Filename)
	}

	// No multipart file at all is a 400.
	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/tasks/%d/attachment", created.ID), token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file: status %d, want 400", rec.Code)
	}
}

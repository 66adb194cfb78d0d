package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tasktrack/internal/apperr"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

// AttachmentService stores uploaded files and their metadata.
//
// Uploads are recorded against a task id without an ownership check,
// matching the API's historical behavior.
type AttachmentService struct {
	attachments *repository.AttachmentRepository
	uploadDir   string
}

func NewAttachmentService(attachments *repository.AttachmentRepository, uploadDir string) *AttachmentService {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &AttachmentService{attachments: attachments, uploadDir: uploadDir}
}

// Add sanitizes the client filename, writes the bytes under the upload
// directory and records the attachment. Stored names carry a uuid prefix
// so repeated uploads of the same name do not clobber each other.
func (s *AttachmentService) Add(ctx context.Context, taskID uint, filename string, src io.Reader) (*model.Attachment, error) {
	safe := SanitizeFilename(filename)
	if safe == "" {
		return nil, apperr.Validation("No file selected")
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	storedName := uuid.NewString() + "_" + safe
	path := filepath.Join(s.uploadDir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("close upload file: %w", err)
	}

	attachment := model.Attachment{TaskID: taskID, Filename: safe, FilePath: path}
	if err := s.attachments.Create(ctx, &attachment); err != nil {
		os.Remove(path)
		return nil, err
	}
	return &attachment, nil
}

// SweepOrphans deletes files in the upload directory that no attachment
// row references. Task deletion cascades rows but leaves files behind;
// this reaps them. Returns the number of files removed.
func (s *AttachmentService) SweepOrphans(ctx context.Context) (int, error) {
	paths, err := s.attachments.ListPaths(ctx)
	if err != nil {
		return 0, err
	}
	live := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		live[filepath.Clean(p)] = struct{}{}
	}

	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read upload dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.uploadDir, entry.Name())
		if _, ok := live[filepath.Clean(path)]; ok {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove orphan %q: %w", path, err)
		}
		removed++
	}
	return removed, nil
}

// SanitizeFilename reduces a client-supplied name to a safe basename:
// path separators and parent references are stripped, anything outside
// [A-Za-z0-9._-] becomes an underscore.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	safe := strings.Trim(b.String(), "._")
	if safe == "" || safe == "." || safe == ".." {
		return ""
	}
	return safe
}

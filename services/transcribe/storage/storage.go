package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xilidan/audio-transcriber/pkg/gen"
	"github.com/xilidan/audio-transcriber/services/transcribe/consts"
)

// Storage holds uploaded audio on disk for the lifetime of one pipeline run.
type Storage interface {
	Create(ctx context.Context, filename string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
	Outstanding() int
}

type storage struct {
	dir  string
	uuid gen.UUIDGenerator

	mu    sync.Mutex
	files map[string]struct{}
}

// New returns a Storage rooted at dir. An empty dir means os.TempDir().
func New(dir string, uuid gen.UUIDGenerator) Storage {
	if dir == "" {
		dir = os.TempDir()
	}
	if uuid == nil {
		uuid = gen.UUID()
	}

	return &storage{
		dir:   dir,
		uuid:  uuid,
		files: make(map[string]struct{}),
	}
}

func (s *storage) Create(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pattern := fmt.Sprintf("audio-%s-*%s", s.uuid.Next(), Extension(filename))
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	s.mu.Lock()
	s.files[path] = struct{}{}
	s.mu.Unlock()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", s.abort(ctx, path, fmt.Errorf("failed to write temp file: %w", err))
	}
	if err := f.Close(); err != nil {
		return "", s.abort(ctx, path, fmt.Errorf("failed to close temp file: %w", err))
	}

	return path, nil
}

// abort removes a partially written file. A failed removal is joined to cause
// and the file stays tracked in Outstanding.
func (s *storage) abort(ctx context.Context, path string, cause error) error {
	if err := s.Remove(ctx, path); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// Remove deletes a file created by Create. Removing an already deleted file is not an error.
func (s *storage) Remove(ctx context.Context, path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove temp file: %w", err)
	}

	s.mu.Lock()
	delete(s.files, path)
	s.mu.Unlock()
	return nil
}

// Outstanding returns the number of files created and not yet removed.
func (s *storage) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Extension returns the lower-cased extension of filename, or the default
// extension when the name has none. Only [a-z0-9] extensions are kept so a
// client cannot inject path separators into the temp file pattern.
func Extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 {
		return consts.DefaultExtension
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return consts.DefaultExtension
		}
	}
	return ext
}

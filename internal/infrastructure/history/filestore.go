package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fxrates-watch/internal/application"
	"fxrates-watch/internal/domain"

	"go.uber.org/zap"
)

var _ application.HistoryStore = (*FileStore)(nil)

// FileStore keeps the whole history as one indented JSON array.
type FileStore struct {
	Path string
	Log  *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{Path: path, Log: log}
}

// Load returns the stored entries, or an empty history when the file is
// missing, blank or cannot be decoded.
func (s *FileStore) Load(_ context.Context) []domain.Entry {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger().Debug("history_unreadable", zap.String("path", s.Path), zap.Error(err))
		}
		return []domain.Entry{}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []domain.Entry{}
	}
	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger().Warn("history_corrupt", zap.String("path", s.Path), zap.Error(err))
		return []domain.Entry{}
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries
}

// Save writes entries to a temp file next to Path and renames it into place.
func (s *FileStore) Save(_ context.Context, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("history: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("history: create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("history: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("history: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("history: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("history: chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		cleanup()
		return fmt.Errorf("history: rename: %w", err)
	}
	return nil
}

func (s *FileStore) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

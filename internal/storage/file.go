package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kvhuynh/sovereign/pkg/session"
)

// FileExporter writes and reads explicit save files in a directory. Exports
// use the canonical kingdom_<slug>_Y<year>_M<month>.json naming, so saving
// twice in the same month overwrites the earlier file.
type FileExporter struct {
	dir string
}

// NewFileExporter creates an exporter rooted at dir, creating it if needed.
func NewFileExporter(dir string) (*FileExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileExporter{dir: dir}, nil
}

// ExportSession writes the session to its canonical save file and returns the
// full path. The write goes through a temp file and rename so a crash never
// leaves a truncated save behind.
func (f *FileExporter) ExportSession(s *session.Session) (string, error) {
	data, err := s.MarshalSave()
	if err != nil {
		return "", err
	}

	path := filepath.Join(f.dir, s.SaveFilename())
	tmp, err := os.CreateTemp(f.dir, ".save-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close save file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to finalize save file: %w", err)
	}
	return path, nil
}

// ImportSession reads and validates a save file.
func (f *FileExporter) ImportSession(path string) (*session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	return session.ParseSave(data)
}

// ListSaves returns the save files currently present, newest first.
func (f *FileExporter) ListSaves() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, "kingdom_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	type stamped struct {
		path string
		mod  int64
	}
	files := make([]stamped, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		files = append(files, stamped{path: m, mod: info.ModTime().UnixNano()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mod > files[j].mod })

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

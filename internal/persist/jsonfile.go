package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// JSONFile stores the blob as a single JSON file on disk. Writes go through
// a temp file plus rename so a crash mid-write never leaves a torn blob.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) (*JSONFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &JSONFile{path: path}, nil
}

func (f *JSONFile) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read data file: %w", err)
	}
	return data, true, nil
}

func (f *JSONFile) Save(ctx context.Context, data []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// ProjectStore persists and retrieves .vvf project files.
type ProjectStore interface {
	Load(path m.Path) (*m.Project, error)
	Save(path m.Path, project *m.Project) error
}

// FileProjectStore stores projects as versioned JSON documents. Writes are
// atomic (temp file plus rename) and guarded by a sibling lock file so two
// invocations cannot clobber each other.
type FileProjectStore struct{}

// NewFileProjectStore constructs a FileProjectStore.
func NewFileProjectStore() *FileProjectStore {
	return &FileProjectStore{}
}

// Load reads and validates a project file. Items come back sorted by ID.
func (s *FileProjectStore) Load(path m.Path) (*m.Project, error) {
	lock := flock.New(lockPath(path))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock project file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("could not open project file: %w", err)
	}

	var project m.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("could not parse project file %s: %w", path, err)
	}

	if project.Version > m.ProjectVersion {
		return nil, fmt.Errorf("project file %s uses format version %d, this build supports up to %d",
			path, project.Version, m.ProjectVersion)
	}

	if err := validateItems(project.Items); err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", path, err)
	}

	project.Sort()

	return &project, nil
}

// Save writes the project atomically next to its final location.
func (s *FileProjectStore) Save(path m.Path, project *m.Project) error {
	lock := flock.New(lockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock project file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	project.Version = m.ProjectVersion
	project.Sort()

	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode project: %w", err)
	}

	return writeFileAtomic(string(path), data)
}

// ProjectDir returns the directory test commands run in: the directory
// holding the project file.
func ProjectDir(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", fmt.Errorf("could not resolve project path: %w", err)
	}

	return m.Path(filepath.Dir(abs)), nil
}

func validateItems(items []m.Item) error {
	seen := make(map[int]bool, len(items))

	for _, item := range items {
		if item.ID <= 0 {
			return fmt.Errorf("item %q has non-positive id %d", item.Name, item.ID)
		}

		if seen[item.ID] {
			return fmt.Errorf("duplicate item id %d", item.ID)
		}

		seen[item.ID] = true

		if item.Repetitions < 1 {
			return fmt.Errorf("item %d has repetitions %d", item.ID, item.Repetitions)
		}
	}

	return nil
}

func lockPath(path m.Path) string {
	return string(path) + ".lock"
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("could not write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("could not close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("could not save file: %w", err)
	}

	return nil
}

package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/staffroster/core/internal/domain/entities"
	"github.com/staffroster/core/internal/infrastructure/logger"
	"github.com/staffroster/core/internal/ports"
)

const filePerm = 0o644

// SaveObserver is notified after every snapshot write
type SaveObserver interface {
	ObserveSave(duration time.Duration, err error)
}

// FileStore keeps the whole employee set in a single JSON document keyed by id
type FileStore struct {
	path     string
	logger   *logger.Logger
	observer SaveObserver
	readOnly bool
	now      func() time.Time
}

// New creates a file store for path. observer may be nil.
func New(path string, log *logger.Logger, observer SaveObserver) *FileStore {
	return &FileStore{
		path:     path,
		logger:   log.WithComponent("snapshot"),
		observer: observer,
		now:      time.Now,
	}
}

// NewReader creates a file store that only inspects path.
// Load on a reader reports a corrupt file instead of moving it aside.
func NewReader(path string, log *logger.Logger) *FileStore {
	s := New(path, log, nil)
	s.readOnly = true
	return s
}

// Path returns the location of the snapshot file
func (s *FileStore) Path() string {
	return s.path
}

// Save replaces the snapshot file with the given employees.
// The new document becomes visible through a rename, so readers never see a partial file.
func (s *FileStore) Save(ctx context.Context, employees map[string]entities.Employee) error {
	start := s.now()
	err := s.write(employees)
	duration := s.now().Sub(start)

	if s.observer != nil {
		s.observer.ObserveSave(duration, err)
	}
	s.logger.LogSnapshotSave(s.path, len(employees), duration, err)

	return err
}

func (s *FileStore) write(employees map[string]entities.Employee) error {
	if s.readOnly {
		return fmt.Errorf("snapshot %s opened read-only", s.path)
	}
	if employees == nil {
		employees = map[string]entities.Employee{}
	}

	data, err := json.MarshalIndent(employees, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := renameio.WriteFile(s.path, data, filePerm); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}

	return nil
}

// Load reads the snapshot file. A missing file yields an empty set; an unparseable
// one is moved aside and also yields an empty set.
func (s *FileStore) Load(ctx context.Context) (map[string]entities.Employee, error) {
	s.logger.Infow("Reading snapshot", "path", s.path)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Infow("Snapshot not found, starting empty", "path", s.path)
		return map[string]entities.Employee{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var raw map[string]entities.Employee
	if err := json.Unmarshal(data, &raw); err != nil {
		if s.readOnly {
			return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
		}
		s.logger.Warnw("Snapshot is corrupt, starting empty", "path", s.path, "error", err)
		s.quarantine()
		return map[string]entities.Employee{}, nil
	}

	employees := make(map[string]entities.Employee, len(raw))
	for key, e := range raw {
		if e.ID == "" {
			e.ID = key
		}
		if err := e.Validate(); err != nil {
			s.logger.Warnw("Skipping snapshot record", "key", key, "error", err)
			continue
		}
		if e.ID != key {
			s.logger.Warnw("Snapshot record keyed under a different id", "key", key, "id", e.ID)
		}
		employees[e.ID] = e
	}

	s.logger.Infow("Snapshot loaded", "path", s.path, "employees", len(employees))

	return employees, nil
}

// quarantine keeps a corrupt file around so the next save does not destroy it
func (s *FileStore) quarantine() {
	target := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	if err := os.Rename(s.path, target); err != nil {
		s.logger.Warnw("Failed to move corrupt snapshot aside", "path", s.path, "error", err)
		return
	}
	s.logger.Warnw("Corrupt snapshot moved aside", "path", s.path, "moved_to", target)
}

// HealthCheck verifies that the snapshot directory accepts new files
func (s *FileStore) HealthCheck() error {
	dir := filepath.Dir(s.path)

	f, err := os.CreateTemp(dir, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("snapshot directory not writable: %w", err)
	}

	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("snapshot directory cleanup failed: %w", err)
	}

	return nil
}

// Info describes the snapshot file as it currently is on disk
func (s *FileStore) Info() ports.SnapshotInfo {
	info := ports.SnapshotInfo{Path: s.path}

	st, err := os.Stat(s.path)
	if err != nil {
		return info
	}

	info.Exists = true
	info.Size = st.Size()
	info.ModTime = st.ModTime().UTC().Format(time.RFC3339)

	return info
}

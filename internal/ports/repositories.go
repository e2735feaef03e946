package ports

import (
	"context"

	"github.com/staffroster/core/internal/domain/entities"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	Create(ctx context.Context, name string, age uint8, position string) (*entities.Employee, error)
	GetByID(ctx context.Context, id string) (*entities.Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Employee, error)
	Len() int
	Stale() bool
	Flush(ctx context.Context) error
}

// SnapshotStore persists the whole employee set as a single document
type SnapshotStore interface {
	Save(ctx context.Context, employees map[string]entities.Employee) error
	Load(ctx context.Context) (map[string]entities.Employee, error)
}

// SnapshotInfo describes the persisted document
type SnapshotInfo struct {
	Path    string `json:"path"`
	Exists  bool   `json:"exists"`
	Size    int64  `json:"size_bytes"`
	ModTime string `json:"modified_at,omitempty"`
}

package repository

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/staffroster/core/internal/domain/entities"
	"github.com/staffroster/core/internal/ports"
)

// EmployeeRepositoryImpl is the authoritative in-memory employee set.
// One mutex guards the map and the snapshot write that follows every mutation,
// so the file is never written out of order with respect to the map.
type EmployeeRepositoryImpl struct {
	mu        sync.Mutex
	employees map[string]entities.Employee
	snapshots ports.SnapshotStore
	stale     bool
	newID     func() (uuid.UUID, error)
}

// NewEmployeeRepository loads the current snapshot and returns a ready repository
func NewEmployeeRepository(ctx context.Context, snapshots ports.SnapshotStore) (ports.EmployeeRepository, error) {
	employees, err := snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	if employees == nil {
		employees = make(map[string]entities.Employee)
	}

	return &EmployeeRepositoryImpl{
		employees: employees,
		snapshots: snapshots,
		newID:     uuid.NewRandom,
	}, nil
}

// Create stores a new employee under a freshly generated id.
// When the snapshot write fails the employee is still kept in memory and returned
// together with an error wrapping entities.ErrSnapshotStale.
func (r *EmployeeRepositoryImpl) Create(ctx context.Context, name string, age uint8, position string) (*entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.freshID()
	if err != nil {
		return nil, err
	}

	employee := entities.NewEmployee(id, name, age, position)
	r.employees[id] = employee

	return &employee, r.persist(ctx)
}

func (r *EmployeeRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	employee, ok := r.employees[id]
	if !ok {
		return nil, entities.ErrEmployeeNotFound
	}

	return &employee, nil
}

// Delete removes the employee if present. Deleting an unknown id is not an error.
func (r *EmployeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.employees, id)

	return r.persist(ctx)
}

// List returns a copy of every employee ordered by id
func (r *EmployeeRepositoryImpl) List(ctx context.Context) ([]*entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	employees := make([]*entities.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		e := e
		employees = append(employees, &e)
	}

	sort.Slice(employees, func(i, j int) bool {
		return employees[i].ID < employees[j].ID
	})

	return employees, nil
}

func (r *EmployeeRepositoryImpl) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.employees)
}

// Stale reports whether the last snapshot write failed
func (r *EmployeeRepositoryImpl) Stale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stale
}

// Flush rewrites the snapshot if a previous write failed
func (r *EmployeeRepositoryImpl) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.stale {
		return nil
	}

	return r.persist(ctx)
}

// persist must be called with mu held
func (r *EmployeeRepositoryImpl) persist(ctx context.Context) error {
	if err := r.snapshots.Save(ctx, maps.Clone(r.employees)); err != nil {
		r.stale = true
		return fmt.Errorf("%w: %w", entities.ErrSnapshotStale, err)
	}

	r.stale = false
	return nil
}

// freshID must be called with mu held
func (r *EmployeeRepositoryImpl) freshID() (string, error) {
	for {
		id, err := r.newID()
		if err != nil {
			return "", fmt.Errorf("generate employee id: %w", err)
		}

		if _, taken := r.employees[id.String()]; !taken {
			return id.String(), nil
		}
	}
}

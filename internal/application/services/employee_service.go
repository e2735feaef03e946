package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/staffroster/core/internal/domain/entities"
	"github.com/staffroster/core/internal/infrastructure/logger"
	"github.com/staffroster/core/internal/ports"
)

// EmployeeService handles employee-related operations
type EmployeeService struct {
	employeeRepo ports.EmployeeRepository
	strict       bool
	logger       *logger.Logger
}

// NewEmployeeService creates a new employee service.
// With strict set, a failed snapshot write fails the request; otherwise it is only logged.
func NewEmployeeService(employeeRepo ports.EmployeeRepository, strict bool, logger *logger.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		strict:       strict,
		logger:       logger.WithComponent("employees"),
	}
}

// CreateEmployee creates a new employee
func (s *EmployeeService) CreateEmployee(ctx context.Context, req ports.CreateEmployeeRequest) (*entities.Employee, error) {
	if req.Age == nil {
		return nil, fmt.Errorf("%w: age is required", entities.ErrInvalidEmployee)
	}
	// the snapshot is JSON, which cannot carry invalid UTF-8 unchanged
	if !utf8.ValidString(req.Name) || !utf8.ValidString(req.Position) {
		return nil, fmt.Errorf("%w: name and position must be valid UTF-8", entities.ErrInvalidEmployee)
	}

	employee, err := s.employeeRepo.Create(ctx, req.Name, *req.Age, req.Position)
	if err != nil {
		if employee != nil && errors.Is(err, entities.ErrSnapshotStale) {
			return employee, s.staleWrite("create", employee.ID, err)
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Infow("Employee created", "employee_id", employee.ID)

	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*entities.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee %s: %w", id, err)
	}

	return employee, nil
}

// DeleteEmployee deletes an employee; unknown ids are accepted
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	err := s.employeeRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrSnapshotStale) {
			return s.staleWrite("delete", id, err)
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.logger.Infow("Employee deleted", "employee_id", id)

	return nil
}

// ListEmployees returns every employee
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*entities.Employee, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// Flush retries a failed snapshot write, if any
func (s *EmployeeService) Flush(ctx context.Context) error {
	if !s.employeeRepo.Stale() {
		return nil
	}

	if err := s.employeeRepo.Flush(ctx); err != nil {
		s.logger.WithError(err).Warnw("Snapshot still stale")
		return err
	}

	s.logger.Infow("Snapshot reconciled")
	return nil
}

// RunReconciler retries stale snapshot writes every interval until ctx is done
func (s *EmployeeService) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = s.Flush(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *EmployeeService) staleWrite(op, id string, err error) error {
	s.logger.WithError(err).Warnw("Employee change not persisted",
		"operation", op,
		"employee_id", id,
		"strict", s.strict,
	)

	if s.strict {
		return fmt.Errorf("%s employee %s: %w", op, id, err)
	}

	return nil
}

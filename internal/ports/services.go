package ports

import (
	"context"

	"github.com/staffroster/core/internal/domain/entities"
)

// EmployeeService interface for employee management operations
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*entities.Employee, error)
	GetEmployee(ctx context.Context, id string) (*entities.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	ListEmployees(ctx context.Context) ([]*entities.Employee, error)
}

// CreateEmployeeRequest is the payload accepted by POST /employees.
// Age is a pointer so that a missing field fails validation instead of becoming zero.
// Name and position are stored exactly as sent but must not be blank.
type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Age      *uint8 `json:"age" validate:"required"`
	Position string `json:"position" validate:"required,notblank,max=100"`
}

// ErrorResponse is returned for failed requests
type ErrorResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

package entities

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrSnapshotStale    = errors.New("snapshot is behind the in-memory store")
	ErrInvalidEmployee  = errors.New("invalid employee")
)

// Employee represents a single employee record
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Age      uint8  `json:"age"`
	Position string `json:"position"`
}

// NewEmployee creates an employee with the given id; fields are stored as given
func NewEmployee(id, name string, age uint8, position string) Employee {
	return Employee{
		ID:       id,
		Name:     name,
		Age:      age,
		Position: position,
	}
}

// Validate checks that the employee can be stored
func (e Employee) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidEmployee)
	}
	return nil
}

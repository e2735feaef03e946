package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffroster/core/internal/domain/entities"
	"github.com/staffroster/core/internal/infrastructure/logger"
	"github.com/staffroster/core/internal/ports"
)

// EmployeeHandler handles employee-related requests
type EmployeeHandler struct {
	employeeService ports.EmployeeService
	logger          *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService ports.EmployeeService, logger *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          logger,
	}
}

// Register mounts the employee routes on g
func (h *EmployeeHandler) Register(g *echo.Group) {
	g.POST("", h.CreateEmployee)
	g.GET("", h.ListEmployees)
	g.GET("/:id", h.GetEmployee)
	g.DELETE("/:id", h.DeleteEmployee)
}

// CreateEmployee handles employee creation
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param employee body ports.CreateEmployeeRequest true "Employee"
// @Success 201 {object} entities.Employee
// @Failure 400 {object} ports.ErrorResponse
// @Failure 500 {object} ports.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	var req ports.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.employeeService.CreateEmployee(c.Request().Context(), req)
	if err != nil {
		return h.mutationError(err, employee)
	}

	c.Response().Header().Set(echo.HeaderLocation, c.Path()+"/"+employee.ID)
	return c.JSON(http.StatusCreated, employee)
}

// ListEmployees handles listing all employees
// @Summary List employees
// @Tags Employees
// @Produce json
// @Success 200 {array} entities.Employee
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c echo.Context) error {
	employees, err := h.employeeService.ListEmployees(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List employees failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list employees").SetInternal(err)
	}

	return c.JSON(http.StatusOK, employees)
}

// GetEmployee handles getting a single employee
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} entities.Employee
// @Failure 404 {object} ports.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c echo.Context) error {
	id := c.Param("id")

	employee, err := h.employeeService.GetEmployee(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrEmployeeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Employee not found")
		}
		h.logger.Errorw("Get employee failed", "error", err, "employee_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get employee").SetInternal(err)
	}

	return c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles employee deletion
// @Summary Delete employee
// @Tags Employees
// @Param id path string true "Employee ID"
// @Success 204
// @Failure 500 {object} ports.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	id := c.Param("id")

	if err := h.employeeService.DeleteEmployee(c.Request().Context(), id); err != nil {
		return h.mutationError(err, &entities.Employee{ID: id})
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandler) mutationError(err error, employee *entities.Employee) error {
	switch {
	case errors.Is(err, entities.ErrInvalidEmployee):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrSnapshotStale) && employee != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, ports.ErrorResponse{
			Message: "Change applied in memory but not persisted",
			ID:      employee.ID,
		}).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store employee").SetInternal(err)
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/employee-portal/secure-api/internal/api/dto"
	"github.com/employee-portal/secure-api/internal/domain"
	"github.com/employee-portal/secure-api/internal/service"
	apperrors "github.com/employee-portal/secure-api/pkg/util/errorutil"
	"github.com/employee-portal/secure-api/pkg/util/validation"
)

// EmployeeHandler serves the protected employee endpoints.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Data handles GET /api/employee/data.
func (h *EmployeeHandler) Data(c *fiber.Ctx) error {
	return c.JSON("This is protected Employee data.")
}

// AdminDashboard handles GET /api/admin/dashboard.
func (h *EmployeeHandler) AdminDashboard(c *fiber.Ctx) error {
	return c.JSON("Welcome to the admin dashboard.")
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": toResponses(employees)})
}

// Get handles GET /api/employees/:id.
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.Get(c.UserContext(), id)
	if err != nil {
		return notFoundOr(err, id)
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(*employee)})
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	req, err := parseEmployee(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.Create(c.UserContext(), req.ToDomain(0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(*employee)})
}

// Update handles PUT /api/employees/:id.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}
	req, err := parseEmployee(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.Update(c.UserContext(), id, req.ToDomain(id))
	if err != nil {
		return notFoundOr(err, id)
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(*employee)})
}

// Delete handles DELETE /api/employees/:id.
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}
	if err := h.employees.Delete(c.UserContext(), id); err != nil {
		return notFoundOr(err, id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func employeeID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid employee id")
	}
	return int64(id), nil
}

func parseEmployee(c *fiber.Ctx) (dto.EmployeeRequest, error) {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validation.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}

func notFoundOr(err error, id int64) error {
	mapped := apperrors.ToDomainError(err)
	if mapped.Code == "NOT_FOUND" {
		return apperrors.NewNotFound("employee", map[string]any{"id": id})
	}
	return mapped
}

func toResponses(employees []domain.Employee) []dto.EmployeeResponse {
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, dto.NewEmployeeResponse(e))
	}
	return out
}

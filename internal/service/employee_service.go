package service

import (
	"context"

	"github.com/employee-portal/secure-api/internal/domain"
	"github.com/employee-portal/secure-api/internal/repository"
)

// EmployeeService coordinates employee reads and writes.
type EmployeeService struct {
	employees repository.EmployeeRepository
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

// List returns every employee ordered by id.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

// Get returns a single employee.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// Create stores a new employee and assigns its id.
func (s *EmployeeService) Create(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	employee.ID = 0
	if err := s.employees.Create(ctx, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	return s.employees.Delete(ctx, id)
}

// Update replaces the mutable fields of an existing employee.
func (s *EmployeeService) Update(ctx context.Context, id int64, employee domain.Employee) (*domain.Employee, error) {
	employee.ID = id
	if err := s.employees.Update(ctx, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/employee-portal/secure-api/internal/domain"
)

type memoryEmployeeRepository struct {
	mu        sync.RWMutex
	nextID    int64
	employees map[int64]domain.Employee
}

// NewMemoryEmployeeRepository returns a process-local implementation seeded
// with the given employees. It is used when no database is configured.
func NewMemoryEmployeeRepository(seed []domain.Employee) EmployeeRepository {
	r := &memoryEmployeeRepository{employees: make(map[int64]domain.Employee, len(seed))}
	for _, employee := range seed {
		r.employees[employee.ID] = cloneEmployee(employee)
		if employee.ID > r.nextID {
			r.nextID = employee.ID
		}
	}
	return r
}

func (r *memoryEmployeeRepository) List(_ context.Context) ([]domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Employee, 0, len(r.employees))
	for _, employee := range r.employees {
		out = append(out, cloneEmployee(employee))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryEmployeeRepository) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	employee, ok := r.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := cloneEmployee(employee)
	return &clone, nil
}

func (r *memoryEmployeeRepository) Create(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	employee.ID = r.nextID
	r.employees[employee.ID] = cloneEmployee(*employee)
	return nil
}

func (r *memoryEmployeeRepository) Update(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[employee.ID]; !ok {
		return ErrNotFound
	}
	r.employees[employee.ID] = cloneEmployee(*employee)
	return nil
}

func (r *memoryEmployeeRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return ErrNotFound
	}
	delete(r.employees, id)
	return nil
}

func cloneEmployee(e domain.Employee) domain.Employee {
	e.Skills = append([]domain.Skill(nil), e.Skills...)
	return e
}

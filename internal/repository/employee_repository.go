package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/employee-portal/secure-api/internal/domain"
)

// ErrNotFound is returned by every EmployeeRepository implementation when the
// id does not exist.
var ErrNotFound = errors.New("record not found")

// EmployeeRepository defines persistence access for employees.
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id int64) error
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, name, salary, permanent, department_id, department_name, skills, date_of_birth`

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id)
	employee, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return employee, err
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, salary, permanent, department_id, department_name, skills, date_of_birth)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		employee.Name,
		employee.Salary,
		employee.Permanent,
		employee.Department.ID,
		employee.Department.Name,
		skillsOrEmpty(employee.Skills),
		employee.DateOfBirth,
	).Scan(&employee.ID)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees
        SET name=$1, salary=$2, permanent=$3, department_id=$4, department_name=$5,
            skills=$6, date_of_birth=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		employee.Name,
		employee.Salary,
		employee.Permanent,
		employee.Department.ID,
		employee.Department.Name,
		skillsOrEmpty(employee.Skills),
		employee.DateOfBirth,
		employee.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Salary,
		&employee.Permanent,
		&employee.Department.ID,
		&employee.Department.Name,
		&employee.Skills,
		&employee.DateOfBirth,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func skillsOrEmpty(skills []domain.Skill) []domain.Skill {
	if skills == nil {
		return []domain.Skill{}
	}
	return skills
}

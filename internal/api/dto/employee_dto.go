package dto

import (
	"time"

	"github.com/employee-portal/secure-api/internal/domain"
)

// DepartmentDTO is the wire form of domain.Department.
type DepartmentDTO struct {
	ID   int    `json:"id" validate:"gte=0"`
	Name string `json:"name" validate:"required,max=100"`
}

// SkillDTO is the wire form of domain.Skill.
type SkillDTO struct {
	ID   int    `json:"id" validate:"gte=0"`
	Name string `json:"name" validate:"required,max=100"`
}

// EmployeeRequest payload for create and update.
type EmployeeRequest struct {
	Name        string        `json:"name" validate:"required,max=200"`
	Salary      float64       `json:"salary" validate:"gte=0"`
	Permanent   bool          `json:"permanent"`
	Department  DepartmentDTO `json:"department" validate:"required"`
	Skills      []SkillDTO    `json:"skills" validate:"omitempty,dive"`
	DateOfBirth time.Time     `json:"date_of_birth" validate:"required"`
}

// EmployeeResponse is the wire form of domain.Employee.
type EmployeeResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Salary      float64       `json:"salary"`
	Permanent   bool          `json:"permanent"`
	Department  DepartmentDTO `json:"department"`
	Skills      []SkillDTO    `json:"skills"`
	DateOfBirth time.Time     `json:"date_of_birth"`
}

// ToDomain maps the request onto an employee with the given id.
func (r EmployeeRequest) ToDomain(id int64) domain.Employee {
	skills := make([]domain.Skill, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, domain.Skill{ID: s.ID, Name: s.Name})
	}
	return domain.Employee{
		ID:          id,
		Name:        r.Name,
		Salary:      r.Salary,
		Permanent:   r.Permanent,
		Department:  domain.Department{ID: r.Department.ID, Name: r.Department.Name},
		Skills:      skills,
		DateOfBirth: r.DateOfBirth,
	}
}

// NewEmployeeResponse maps a domain employee to its wire form.
func NewEmployeeResponse(e domain.Employee) EmployeeResponse {
	skills := make([]SkillDTO, 0, len(e.Skills))
	for _, s := range e.Skills {
		skills = append(skills, SkillDTO{ID: s.ID, Name: s.Name})
	}
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Salary:      e.Salary,
		Permanent:   e.Permanent,
		Department:  DepartmentDTO{ID: e.Department.ID, Name: e.Department.Name},
		Skills:      skills,
		DateOfBirth: e.DateOfBirth,
	}
}

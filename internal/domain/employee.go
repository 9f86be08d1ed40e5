package domain

import "time"

// Department groups employees.
type Department struct {
	ID   int
	Name string
}

// Skill is a named competency held by an employee.
type Skill struct {
	ID   int
	Name string
}

// Employee is the protected resource served by the employee endpoints.
type Employee struct {
	ID          int64
	Name        string
	Salary      float64
	Permanent   bool
	Department  Department
	Skills      []Skill
	DateOfBirth time.Time
}

// StandardEmployees returns the seed list used when no database is configured.
func StandardEmployees() []Employee {
	return []Employee{
		{
			ID:         1,
			Name:       "Alice",
			Salary:     60000,
			Permanent:  true,
			Department: Department{ID: 1, Name: "HR"},
			Skills: []Skill{
				{ID: 1, Name: "Communication"},
				{ID: 2, Name: "Leadership"},
			},
			DateOfBirth: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/employee-portal/secure-api/internal/domain"
)

func TestMemoryEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEmployeeRepository(domain.StandardEmployees())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].Name)
	assert.Equal(t, "HR", list[0].Department.Name)

	bob := domain.Employee{Name: "Bob", Salary: 50000, Skills: []domain.Skill{{ID: 3, Name: "Go"}}}
	require.NoError(t, repo.Create(ctx, &bob))
	assert.Equal(t, int64(2), bob.ID)

	got, err := repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	got.Skills[0].Name = "mutated"
	again, err := repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", again.Skills[0].Name, "callers must not alias stored state")

	bob.Salary = 55000
	require.NoError(t, repo.Update(ctx, &bob))
	got, err = repo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(55000), got.Salary)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(2), list[1].ID)
}

func TestMemoryEmployeeRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEmployeeRepository(nil)

	_, err := repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Update(ctx, &domain.Employee{ID: 99, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryEmployeeRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEmployeeRepository(domain.StandardEmployees())

	require.NoError(t, repo.Delete(ctx, 1))

	_, err := repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, repo.Delete(ctx, 1), ErrNotFound)

	next := domain.Employee{Name: "Dana"}
	require.NoError(t, repo.Create(ctx, &next))
	assert.Equal(t, int64(2), next.ID, "ids are not reused after delete")
}

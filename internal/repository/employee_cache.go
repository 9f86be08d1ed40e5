package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/employee-portal/secure-api/internal/domain"
)

// ErrCacheMiss is returned by a CacheStore when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheStore is the byte-oriented key/value store used for read caching.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const employeeListKey = "employees:all"

func employeeKey(id int64) string {
	return "employees:" + strconv.FormatInt(id, 10)
}

type cachedEmployeeRepository struct {
	base   EmployeeRepository
	cache  CacheStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmployeeRepository wraps base with a read-through cache. Writes go
// to base first and then evict the affected keys. Cache failures fall back to
// base and are only logged.
func NewCachedEmployeeRepository(base EmployeeRepository, cache CacheStore, ttl time.Duration, logger *zap.Logger) EmployeeRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedEmployeeRepository{base: base, cache: cache, ttl: ttl, logger: logger}
}

func (r *cachedEmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	if r.load(ctx, employeeListKey, &employees) {
		return employees, nil
	}

	employees, err := r.base.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, employeeListKey, employees)
	return employees, nil
}

func (r *cachedEmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var employee domain.Employee
	if r.load(ctx, employeeKey(id), &employee) {
		return &employee, nil
	}

	found, err := r.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, employeeKey(id), found)
	return found, nil
}

func (r *cachedEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if err := r.base.Create(ctx, employee); err != nil {
		return err
	}
	r.evict(ctx, employeeListKey)
	return nil
}

func (r *cachedEmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if err := r.base.Update(ctx, employee); err != nil {
		return err
	}
	r.evict(ctx, employeeListKey, employeeKey(employee.ID))
	return nil
}

func (r *cachedEmployeeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.base.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, employeeListKey, employeeKey(id))
	return nil
}

func (r *cachedEmployeeRepository) load(ctx context.Context, key string, dst any) bool {
	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			r.logger.Warn("employee cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("employee cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *cachedEmployeeRepository) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("employee cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
		r.logger.Warn("employee cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *cachedEmployeeRepository) evict(ctx context.Context, keys ...string) {
	if err := r.cache.Del(ctx, keys...); err != nil {
		r.logger.Warn("employee cache evict failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

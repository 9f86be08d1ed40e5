package config

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables the
// employee read cache.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CacheTTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token issuance and validation parameters.
type AuthConfig struct {
	JWTSecret             string
	Issuer                string
	Audience              string
	AccessTokenTTLMinutes int
	ClockSkewSeconds      int
	// Roles is the closed set of roles a token may carry.
	Roles []string
	// DefaultUserID and DefaultRole form the implicit identity handed out by
	// the anonymous issuance endpoint.
	DefaultUserID int64
	DefaultRole   string
	// OperationRoles maps operation ids to the roles allowed to call them.
	OperationRoles map[string][]string
}

// DefaultOperationRoles is the role table used unless AUTH_OPERATION_ROLES
// overrides entries. An empty slice means any authenticated caller.
func DefaultOperationRoles() map[string][]string {
	return map[string][]string{
		"employee.data":    {"Admin", "POC"},
		"admin.dashboard":  {"Admin"},
		"employees.list":   {"Admin", "POC"},
		"employees.get":    {"Admin", "POC"},
		"employees.create": {"Admin"},
		"employees.update": {"Admin"},
		"employees.delete": {"Admin"},
		"auth.me":          {},
	}
}

// Load reads configuration from environment variables, applying defaults where possible.
// Malformed auth settings are reported rather than defaulted.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	authCfg, err := loadAuth()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "secure-api"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:            os.Getenv("REDIS_ADDR"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			DB:              redisDB,
			CacheTTLSeconds: getEnvAsInt("EMPLOYEE_CACHE_TTL_SECONDS", 60),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: authCfg,
	}

	return cfg, nil
}

func loadAuth() (AuthConfig, error) {
	ttl, err := strconv.Atoi(getEnv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "10"))
	if err != nil {
		return AuthConfig{}, fmt.Errorf("invalid AUTH_ACCESS_TOKEN_TTL_MINUTES: %w", err)
	}
	skew, err := strconv.Atoi(getEnv("AUTH_CLOCK_SKEW_SECONDS", "0"))
	if err != nil {
		return AuthConfig{}, fmt.Errorf("invalid AUTH_CLOCK_SKEW_SECONDS: %w", err)
	}
	userID, err := strconv.ParseInt(getEnv("AUTH_DEFAULT_USER_ID", "123"), 10, 64)
	if err != nil {
		return AuthConfig{}, fmt.Errorf("invalid AUTH_DEFAULT_USER_ID: %w", err)
	}

	roles := splitList(getEnv("AUTH_ROLES", "Admin,POC"), ",")
	operations := DefaultOperationRoles()
	if raw := os.Getenv("AUTH_OPERATION_ROLES"); raw != "" {
		overrides, err := ParseOperationRoles(raw)
		if err != nil {
			return AuthConfig{}, fmt.Errorf("invalid AUTH_OPERATION_ROLES: %w", err)
		}
		if err := checkOperationRoles(overrides, roles); err != nil {
			return AuthConfig{}, fmt.Errorf("invalid AUTH_OPERATION_ROLES: %w", err)
		}
		for op, allowed := range overrides {
			operations[op] = allowed
		}
	}

	return AuthConfig{
		JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
		Issuer:                getEnv("AUTH_ISSUER", "mySystem"),
		Audience:              getEnv("AUTH_AUDIENCE", "myUsers"),
		AccessTokenTTLMinutes: ttl,
		ClockSkewSeconds:      skew,
		Roles:                 roles,
		DefaultUserID:         userID,
		DefaultRole:           getEnv("AUTH_DEFAULT_ROLE", "Admin"),
		OperationRoles:        operations,
	}, nil
}

// AnyAuthenticated is the role list that opens an operation to every caller
// holding a valid token.
const AnyAuthenticated = "*"

// ParseOperationRoles parses "op=RoleA|RoleB;op2=*". An entry must name at
// least one role or be exactly AnyAuthenticated.
func ParseOperationRoles(raw string) (map[string][]string, error) {
	table := make(map[string][]string)
	for _, entry := range splitList(raw, ";") {
		op, list, found := strings.Cut(entry, "=")
		op = strings.TrimSpace(op)
		if !found || op == "" {
			return nil, fmt.Errorf("entry %q must look like operation=Role|Role", entry)
		}
		if strings.TrimSpace(list) == AnyAuthenticated {
			table[op] = []string{}
			continue
		}
		roles := splitList(list, "|")
		if len(roles) == 0 {
			return nil, fmt.Errorf("operation %q has no roles; use %q to allow any authenticated caller", op, AnyAuthenticated)
		}
		if slices.Contains(roles, AnyAuthenticated) {
			return nil, fmt.Errorf("operation %q mixes %q with named roles", op, AnyAuthenticated)
		}
		table[op] = roles
	}
	return table, nil
}

// checkOperationRoles rejects entries naming a role outside known.
func checkOperationRoles(table map[string][]string, known []string) error {
	ops := make([]string, 0, len(table))
	for op := range table {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	for _, op := range ops {
		for _, role := range table[op] {
			if !slices.Contains(known, role) {
				return fmt.Errorf("operation %q names role %q, which is not in AUTH_ROLES %v", op, role, known)
			}
		}
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// ClockSkew returns the tolerated issuer/validator clock difference.
func (a AuthConfig) ClockSkew() time.Duration {
	return time.Duration(a.ClockSkewSeconds) * time.Second
}

// ConnMaxIdle returns the idle timeout for pooled connections.
func (p PostgresConfig) ConnMaxIdle() time.Duration {
	return time.Duration(p.ConnMaxIdleSec) * time.Second
}

// ConnMaxLife returns the maximum lifetime of pooled connections.
func (p PostgresConfig) ConnMaxLife() time.Duration {
	return time.Duration(p.ConnMaxLifeSec) * time.Second
}

// CacheTTL returns how long cached employee reads live.
func (r RedisConfig) CacheTTL() time.Duration {
	if r.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

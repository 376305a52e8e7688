package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full service configuration
type Config struct {
	// DevMode allows the built-in admin credentials and JWT secret.
	DevMode bool `mapstructure:"devMode"`

	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	AI      AIConfig      `mapstructure:"ai"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Survey  SurveyConfig  `mapstructure:"survey"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	CORSOrigins     string        `mapstructure:"corsOrigins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// StorageConfig selects the record store backend
type StorageConfig struct {
	Driver        string `mapstructure:"driver"` // sqlite or mongo
	SQLitePath    string `mapstructure:"sqlitePath"`
	MongoURI      string `mapstructure:"mongoURI"`
	MongoDatabase string `mapstructure:"mongoDatabase"`
}

// RedisConfig configures the session cache; an empty Addr keeps sessions in process
type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	SessionTTL time.Duration `mapstructure:"sessionTTL"`
}

type AuthConfig struct {
	AdminUsername string        `mapstructure:"adminUsername"`
	AdminPassword string        `mapstructure:"adminPassword"`
	JWTSecret     string        `mapstructure:"jwtSecret"`
	TokenTTL      time.Duration `mapstructure:"tokenTTL"`
}

// SurveyConfig bounds the answer scale and optionally replaces the built-in questions
type SurveyConfig struct {
	ScaleMin    int    `mapstructure:"scaleMin"`
	ScaleMax    int    `mapstructure:"scaleMax"`
	CatalogPath string `mapstructure:"catalogPath"`
	MaxSessions int    `mapstructure:"maxSessions"` // in-process cache size
}

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string][]string{
	"devMode":               {"DEV_MODE"},
	"server.port":           {"SERVER_PORT", "PORT"},
	"server.corsOrigins":    {"CORS_ALLOWED_ORIGINS"},
	"log.level":             {"LOG_LEVEL"},
	"log.format":            {"LOG_FORMAT"},
	"storage.driver":        {"STORAGE_DRIVER"},
	"storage.sqlitePath":    {"SQLITE_PATH"},
	"storage.mongoURI":      {"MONGO_URI"},
	"storage.mongoDatabase": {"MONGO_DATABASE"},
	"redis.addr":            {"REDIS_URI", "REDIS_ADDR"},
	"redis.password":        {"REDIS_PASSWORD"},
	"ai.apiKey":             {"GEMINI_API_KEY"},
	"ai.model":              {"GEMINI_MODEL"},
	"ai.language":           {"ANALYSIS_LANGUAGE"},
	"auth.adminUsername":    {"ADMIN_USERNAME"},
	"auth.adminPassword":    {"ADMIN_PASSWORD"},
	"auth.jwtSecret":        {"JWT_SECRET"},
	"survey.catalogPath":    {"CATALOG_PATH"},
}

// Development-only credentials. validateConfig rejects them outside dev mode.
const (
	defaultAdminPassword = "password123"
	defaultJWTSecret     = "change-me-in-production"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("devMode", false)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdownTimeout", 30*time.Second)
	v.SetDefault("server.corsOrigins", "*")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlitePath", "data/records.db")
	v.SetDefault("storage.mongoURI", "mongodb://localhost:27017")
	v.SetDefault("storage.mongoDatabase", "careervision")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.sessionTTL", 2*time.Hour)

	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.baseURL", "https://generativelanguage.googleapis.com/v1beta/models")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.language", "Korean")
	v.SetDefault("ai.timeoutMs", 30000)

	v.SetDefault("auth.adminUsername", "admin")
	v.SetDefault("auth.adminPassword", defaultAdminPassword)
	v.SetDefault("auth.jwtSecret", defaultJWTSecret)
	v.SetDefault("auth.tokenTTL", 12*time.Hour)

	v.SetDefault("survey.scaleMin", 1)
	v.SetDefault("survey.scaleMax", 5)
	v.SetDefault("survey.catalogPath", "")
	v.SetDefault("survey.maxSessions", 10000)
}

// Load reads .env (if present), config.yaml (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return load(v)
}

// LoadFile reads configuration from an explicit file path plus the environment.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Remove redis:// prefix if present
	cfg.Redis.Addr = strings.TrimPrefix(cfg.Redis.Addr, "redis://")

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Storage.Driver {
	case "sqlite":
		if cfg.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlitePath is required for the sqlite driver")
		}
	case "mongo":
		if cfg.Storage.MongoURI == "" || cfg.Storage.MongoDatabase == "" {
			return fmt.Errorf("storage.mongoURI and storage.mongoDatabase are required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", cfg.Storage.Driver)
	}
	if cfg.Survey.ScaleMin >= cfg.Survey.ScaleMax {
		return fmt.Errorf("survey.scaleMin (%d) must be below survey.scaleMax (%d)", cfg.Survey.ScaleMin, cfg.Survey.ScaleMax)
	}
	if cfg.AI.TimeoutMS <= 0 {
		return fmt.Errorf("ai.timeoutMs must be positive")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret is required")
	}
	if cfg.InsecureDefaults() && !cfg.DevMode {
		return fmt.Errorf("auth.adminPassword and auth.jwtSecret must be changed from their defaults (or set devMode)")
	}
	if cfg.Survey.MaxSessions <= 0 {
		return fmt.Errorf("survey.maxSessions must be positive")
	}
	return nil
}

// InsecureDefaults reports whether the admin password or JWT secret is still
// the development default.
func (c *Config) InsecureDefaults() bool {
	return c.Auth.AdminPassword == defaultAdminPassword || c.Auth.JWTSecret == defaultJWTSecret
}

// AnalysisTimeout is the per-call deadline for the analysis service
func (c *Config) AnalysisTimeout() time.Duration {
	return time.Duration(c.AI.TimeoutMS) * time.Millisecond
}


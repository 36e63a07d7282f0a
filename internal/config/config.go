package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Поддерживаемые драйверы базы данных
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	LLM       LLMConfig       `mapstructure:"llm"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig содержит настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	Port         string
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	// Driver: "postgres" (по умолчанию) или "sqlite" для локальной разработки
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Path - файл базы SQLite
	Path string
}

// RedisConfig содержит настройки подключения к Redis.
// Redis необязателен: без адреса ограничение частоты генерации отключено.
type RedisConfig struct {
	Mode       string   `mapstructure:"mode"`
	Addrs      []string `mapstructure:"addrs"`
	Addr       string   `mapstructure:"addr"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
	MasterName string   `mapstructure:"master_name"`
}

// Enabled сообщает, задан ли адрес Redis
func (r *RedisConfig) Enabled() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

// LLMConfig содержит настройки API генерации текста
type LLMConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	Temperature    float64       `mapstructure:"temperature"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
}

// CORSConfig содержит разрешенные источники фронтенда
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig содержит лимит на генерацию викторин
type RateLimitConfig struct {
	GenerateMax    int           `mapstructure:"generate_max"`
	GenerateWindow time.Duration `mapstructure:"generate_window"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	// Генерация может ждать внешний API до ~14 секунд пауз плюс время ответов
	vip.SetDefault("server.write_timeout", 60)

	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.path", "quizgen.db")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("llm.base_url", "https://api.openai.com/v1")
	vip.SetDefault("llm.model", "gpt-3.5-turbo")
	vip.SetDefault("llm.temperature", 0.7)
	vip.SetDefault("llm.max_tokens", 2000)
	vip.SetDefault("llm.max_attempts", 3)
	vip.SetDefault("llm.initial_backoff", 2*time.Second)

	vip.SetDefault("cors.allowed_origins", []string{"http://localhost:5000", "http://127.0.0.1:5000"})

	vip.SetDefault("rate_limit.generate_max", 10)
	vip.SetDefault("rate_limit.generate_window", time.Minute)
}

func bindEnv(vip *viper.Viper) {
	// Привязка для Server
	_ = vip.BindEnv("server.port", "SERVER_PORT")
	_ = vip.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	_ = vip.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")

	// Привязка для секции Database
	_ = vip.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = vip.BindEnv("database.host", "DATABASE_HOST")
	_ = vip.BindEnv("database.port", "DATABASE_PORT")
	_ = vip.BindEnv("database.user", "DATABASE_USER")
	_ = vip.BindEnv("database.password", "DATABASE_PASSWORD")
	_ = vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	_ = vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	_ = vip.BindEnv("database.path", "DATABASE_PATH")

	// Привязка для секции Redis
	_ = vip.BindEnv("redis.mode", "REDIS_MODE")
	_ = vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	_ = vip.BindEnv("redis.addr", "REDIS_ADDR")
	_ = vip.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = vip.BindEnv("redis.db", "REDIS_DB")
	_ = vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для API генерации
	_ = vip.BindEnv("llm.api_key", "OPENAI_API_KEY")
	_ = vip.BindEnv("llm.base_url", "OPENAI_BASE_URL")
	_ = vip.BindEnv("llm.model", "OPENAI_MODEL")
	_ = vip.BindEnv("llm.temperature", "OPENAI_TEMPERATURE")
	_ = vip.BindEnv("llm.max_tokens", "OPENAI_MAX_TOKENS")
	_ = vip.BindEnv("llm.max_attempts", "OPENAI_MAX_ATTEMPTS")
	_ = vip.BindEnv("llm.initial_backoff", "OPENAI_INITIAL_BACKOFF")

	_ = vip.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	_ = vip.BindEnv("rate_limit.generate_max", "RATE_LIMIT_GENERATE_MAX")
	_ = vip.BindEnv("rate_limit.generate_window", "RATE_LIMIT_GENERATE_WINDOW")
}

// Load загружает конфигурацию: умолчания, затем файл (если есть), затем переменные окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр, без глобального состояния

	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файла может не быть, тогда работаем на переменных окружения
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				log.Printf("[Config] Config file '%s' not found, using environment and defaults", configPath)
			} else {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if os.Getenv("GIN_MODE") != "release" {
		cfg.logSummary()
	}
	if cfg.LLM.APIKey == "" {
		log.Println("[Config] WARN: OPENAI_API_KEY is not set, quiz generation requests will fail")
	}

	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("sqlite database path is required (check DATABASE_PATH env var)")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (expected %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("OPENAI_MAX_ATTEMPTS must be at least 1, got %d", c.LLM.MaxAttempts)
	}
	if c.LLM.InitialBackoff < 0 {
		return fmt.Errorf("OPENAI_INITIAL_BACKOFF must not be negative")
	}
	if c.RateLimit.GenerateMax < 1 || c.RateLimit.GenerateWindow <= 0 {
		return fmt.Errorf("generate rate limit must be positive (check RATE_LIMIT_GENERATE_MAX, RATE_LIMIT_GENERATE_WINDOW)")
	}
	return nil
}

// logSummary выводит конфигурацию без секретов
func (c *Config) logSummary() {
	log.Printf("--- Loaded configuration ---")
	log.Printf("Server Port: %s (read %ds, write %ds)", c.Server.Port, c.Server.ReadTimeout, c.Server.WriteTimeout)
	log.Printf("Database Driver: %s", c.Database.Driver)
	if c.Database.Driver == DriverPostgres {
		log.Printf("Database Host: %s:%s, Name: %s, User: %s, SSLMode: %s",
			c.Database.Host, c.Database.Port, c.Database.DBName, c.Database.User, c.Database.SSLMode)
	} else {
		log.Printf("Database Path: %s", c.Database.Path)
	}
	log.Printf("Redis Enabled: %t", c.Redis.Enabled())
	log.Printf("LLM Model: %s, Base URL: %s, Key Set: %t", c.LLM.Model, c.LLM.BaseURL, c.LLM.APIKey != "")
	log.Printf("LLM Retry: %d attempts, initial backoff %s", c.LLM.MaxAttempts, c.LLM.InitialBackoff)
	log.Printf("CORS Origins: %v", c.CORS.AllowedOrigins)
	log.Printf("----------------------------")
}

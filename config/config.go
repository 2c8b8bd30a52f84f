package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tdnguyen2104/virtual-queue/internal/domain"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Log      LogConfig
	Services []domain.ServiceConfig
}

type ServerConfig struct {
	HTTPPort     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisConfig struct {
	Enabled      bool
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
}

type KafkaConfig struct {
	Enabled              bool
	Brokers              []string
	ProducerRetryMax     int
	ProducerRequiredAcks int
}

type LogConfig struct {
	Level    string
	Mode     string
	Encoding string
}

// DefaultServices is the built-in service set, used when QUEUE_SERVICES is
// not configured.
var DefaultServices = []domain.ServiceConfig{
	{ID: "cashier", DisplayName: "Cashier", DailyCapacity: 5, AvgServiceMinutes: 4},
	{ID: "doctor", DisplayName: "Doctor Consultation", DailyCapacity: 4, AvgServiceMinutes: 12},
	{ID: "consult", DisplayName: "General Consultation", DailyCapacity: 6, AvgServiceMinutes: 8},
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	services, err := ParseServices(getEnv("QUEUE_SERVICES", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid QUEUE_SERVICES: %w", err)
	}

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			HTTPPort:     getEnvAsInt("SERVER_HTTP_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_MIRROR_ENABLED", false),
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			MaxRetries:   getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Kafka: KafkaConfig{
			Enabled:              getEnvAsBool("KAFKA_ENABLED", false),
			Brokers:              getEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			ProducerRetryMax:     getEnvAsInt("KAFKA_PRODUCER_RETRY_MAX", 3),
			ProducerRequiredAcks: getEnvAsInt("KAFKA_PRODUCER_REQUIRED_ACKS", 1),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Mode:     getEnv("LOG_MODE", "development"),
			Encoding: getEnv("LOG_ENCODING", "console"),
		},
		Services: services,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ParseServices parses a comma-separated service list of the form
// "id:Display Name:dailyCapacity:avgServiceMinutes". An empty spec yields
// the default service set.
func ParseServices(spec string) ([]domain.ServiceConfig, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return DefaultServices, nil
	}

	var services []domain.ServiceConfig
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("entry %q: want id:name:capacity:avgMinutes", entry)
		}

		id := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])
		if id == "" || name == "" {
			return nil, fmt.Errorf("entry %q: id and name must be non-empty", entry)
		}

		capacity, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || capacity <= 0 {
			return nil, fmt.Errorf("entry %q: capacity must be a positive integer", entry)
		}

		avgMinutes, err := strconv.Atoi(strings.TrimSpace(parts[3]))
		if err != nil || avgMinutes <= 0 {
			return nil, fmt.Errorf("entry %q: avg minutes must be a positive integer", entry)
		}

		services = append(services, domain.ServiceConfig{
			ID:                id,
			DisplayName:       name,
			DailyCapacity:     capacity,
			AvgServiceMinutes: avgMinutes,
		})
	}

	return services, nil
}

func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.HTTPPort)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when the mirror is enabled")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when kafka is enabled")
	}

	if len(c.Services) == 0 {
		return fmt.Errorf("at least one service must be configured")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

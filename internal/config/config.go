package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config 排房服务配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig

	// 数据源配置
	Feeds struct {
		// CSV/XLSX 数据目录（rooms_main / rooms_status_today / house_view_today / checkins_today）
		DataDir string

		// 静态房档来源
		// 选项：file（数据目录文件）、postgres（rooms 表）
		InventorySource string
	}

	// 约束提取配置
	Extractor struct {
		// 选项：keyword（关键词匹配，无外部依赖）、llm（模型提取，失败时回退关键词）
		Mode string

		Model   string // 如 "llama3" 或 "gpt-4o"
		BaseURL string // OpenAI 兼容端点（Ollama 为 http://localhost:11434/v1）
		APIKey  string

		// 单次模型调用超时（秒）
		TimeoutSeconds int

		// 提取调参文件路径（YAML，可选，见 extraction.go）
		ConfigPath string
	}

	// 排房服务特定配置
	Allocator struct {
		// 运行模式
		// 选项：once（单轮排房后退出）、polling（按间隔轮询）
		RunMode string

		// 轮询模式配置
		Polling struct {
			Interval int // 轮询间隔（秒），默认 300 秒
		}

		// 对账快照缓存配置（发布到 Redis 供其他服务读取）
		Snapshot struct {
			Enabled    bool
			TTLSeconds int // 快照 TTL（秒），默认 600 秒
		}
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	// .env 存在时优先加载（本地开发）
	_ = godotenv.Load()

	cfg := &Config{}

	// 从环境变量加载（默认值）
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "hotel")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 10)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Feeds.DataDir = getEnv("FEEDS_DATA_DIR", "data")
	cfg.Feeds.InventorySource = getEnv("INVENTORY_SOURCE", "file")

	cfg.Extractor.Mode = getEnv("EXTRACTOR_MODE", "keyword")
	cfg.Extractor.Model = getEnv("EXTRACTOR_MODEL", "llama3")
	cfg.Extractor.BaseURL = getEnv("EXTRACTOR_BASE_URL", "http://localhost:11434/v1")
	cfg.Extractor.APIKey = getEnv("EXTRACTOR_API_KEY", "ollama")
	cfg.Extractor.TimeoutSeconds = getEnvInt("EXTRACTOR_TIMEOUT", 15)
	cfg.Extractor.ConfigPath = getEnv("EXTRACTION_CONFIG_PATH", "")

	cfg.Allocator.RunMode = getEnv("RUN_MODE", "once")
	cfg.Allocator.Polling.Interval = getEnvInt("POLLING_INTERVAL", 300)
	cfg.Allocator.Snapshot.Enabled = getEnv("SNAPSHOT_ENABLED", "false") == "true"
	cfg.Allocator.Snapshot.TTLSeconds = getEnvInt("SNAPSHOT_TTL", 600)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// Package config 提供应用配置管理
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	App      AppConfig
	Telegram TelegramConfig
	Database DatabaseConfig
	Quotes   QuotesConfig
	Log      LogConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string
	Version string
	Debug   bool
}

// TelegramConfig Telegram Bot 配置
type TelegramConfig struct {
	Token    string
	Timeout  int
	AdminIDs []int64 `mapstructure:"admin_ids"`
}

// DatabaseConfig JSON 数据文件配置
type DatabaseConfig struct {
	File string
}

// QuotesConfig 名言 API 配置
// TextField/AuthorField 是远程返回元素中的字段名，更换供应商时只需改配置
type QuotesConfig struct {
	APIURL        string `mapstructure:"api_url"`
	TextField     string `mapstructure:"text_field"`
	AuthorField   string `mapstructure:"author_field"`
	CacheDuration int    `mapstructure:"cache_duration"`
	Timeout       int    `mapstructure:"timeout"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string
	Output string
}

// Load 加载配置文件
// 优先级: 环境变量 > 配置文件 > 默认值
func Load() (*Config, error) {
	// 先加载 .env（不存在则忽略）
	_ = godotenv.Load()

	v := viper.New()

	// 设置默认值
	setDefaults(v)

	// 配置文件
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/task-telegram")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// 自动读取环境变量
	v.AutomaticEnv()

	// 读取配置文件 (如果不存在则使用默认值)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 环境变量覆盖
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}

	if ids := os.Getenv("ADMIN_IDS"); ids != "" {
		cfg.Telegram.AdminIDs = parseAdminIDs(ids)
	}

	if file := os.Getenv("DATABASE_FILE"); file != "" {
		cfg.Database.File = file
	}

	if apiURL := os.Getenv("QUOTES_API_URL"); apiURL != "" {
		cfg.Quotes.APIURL = apiURL
	}

	if d := os.Getenv("CACHE_DURATION"); d != "" {
		if sec, err := strconv.Atoi(d); err == nil {
			cfg.Quotes.CacheDuration = sec
		}
	}

	// 验证必需配置
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// parseAdminIDs 解析逗号分隔的管理员 ID 列表
func parseAdminIDs(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// App 默认值
	v.SetDefault("app.name", "Task Telegram Bot")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", false)

	// Telegram 默认值
	v.SetDefault("telegram.timeout", 60)
	v.SetDefault("telegram.admin_ids", []int64{})

	// Database 默认值
	v.SetDefault("database.file", "data/database.json")

	// Quotes 默认值 (ZenQuotes 返回 [{"q": ..., "a": ...}])
	v.SetDefault("quotes.api_url", "https://zenquotes.io/api/random")
	v.SetDefault("quotes.text_field", "q")
	v.SetDefault("quotes.author_field", "a")
	v.SetDefault("quotes.cache_duration", 3600)
	v.SetDefault("quotes.timeout", 10)

	// Log 默认值
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
}

// validate 验证配置
func (c *Config) validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}

	if c.Telegram.Timeout <= 0 {
		c.Telegram.Timeout = 60
	}

	if c.Database.File == "" {
		return fmt.Errorf("database.file is required")
	}

	if c.Quotes.APIURL == "" {
		return fmt.Errorf("quotes.api_url is required")
	}

	if c.Quotes.TextField == "" {
		c.Quotes.TextField = "q"
	}

	if c.Quotes.AuthorField == "" {
		c.Quotes.AuthorField = "a"
	}

	if c.Quotes.CacheDuration <= 0 {
		c.Quotes.CacheDuration = 3600
	}

	if c.Quotes.Timeout <= 0 {
		c.Quotes.Timeout = 10
	}

	return nil
}

// GetTimeout 获取长轮询超时时间
func (c *TelegramConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// IsAdmin 检查用户是否为管理员
func (c *TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// GetCacheDuration 获取名言缓存有效期
func (c *QuotesConfig) GetCacheDuration() time.Duration {
	return time.Duration(c.CacheDuration) * time.Second
}

// GetTimeout 获取名言请求超时时间
func (c *QuotesConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

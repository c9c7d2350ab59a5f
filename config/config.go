package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port        int      `yaml:"port"`
	MongoURI    string   `yaml:"mongo_uri"`
	MongoDB     string   `yaml:"mongo_db"`
	JWTKey      string   `yaml:"-"` // 只从环境变量读取
	Debug       bool     `yaml:"debug"`
	CORSOrigins []string `yaml:"cors_origins"`
	MaxUploadMB int64    `yaml:"max_upload_mb"`
	// ReminderHour 每日提醒推送的整点，-1 关闭
	ReminderHour int `yaml:"reminder_hour"`

	Storage StorageConfig `yaml:"storage"`
	AMQP    AMQPConfig    `yaml:"amqp"`

	// 环境变量解析失败的记录，由 Validate 统一报告
	envProblems []string
}

// DefaultJWTKey 仅供本地调试的签名密钥，非 debug 模式下不允许使用
const DefaultJWTKey = "your-secret-key"

// StorageConfig 对象存储配置，Endpoint 为空时使用内存存储
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// AMQPConfig 事件推送配置，URL 为空时不推送
type AMQPConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Port:         8080,
		MongoURI:     "mongodb://127.0.0.1:27017",
		MongoDB:      "crm",
		JWTKey:       DefaultJWTKey,
		Debug:        true,
		CORSOrigins:  []string{"http://localhost:3001", "http://localhost:5173"},
		MaxUploadMB:  20,
		ReminderHour: 8,
		Storage: StorageConfig{
			Bucket: "client-files",
		},
		AMQP: AMQPConfig{
			Exchange: "crm.events",
		},
	}
}

// LoadConfig 加载配置：默认值 < CONFIG_FILE 指定的YAML文件 < 环境变量（含 .env）
func LoadConfig() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = c.envInt("PORT", c.Port)
	c.MongoURI = getEnv("MONGO_URI", c.MongoURI)
	c.MongoDB = getEnv("MONGO_DB", c.MongoDB)
	c.JWTKey = getEnv("JWT_KEY", c.JWTKey)
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		c.Debug = mode == "debug"
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}
	c.MaxUploadMB = int64(c.envInt("MAX_UPLOAD_MB", int(c.MaxUploadMB)))
	c.ReminderHour = c.envInt("REMINDER_HOUR", c.ReminderHour)

	c.Storage.Endpoint = getEnv("STORAGE_ENDPOINT", c.Storage.Endpoint)
	c.Storage.AccessKey = getEnv("STORAGE_ACCESS_KEY", c.Storage.AccessKey)
	c.Storage.SecretKey = getEnv("STORAGE_SECRET_KEY", c.Storage.SecretKey)
	c.Storage.Bucket = getEnv("STORAGE_BUCKET", c.Storage.Bucket)
	if v := os.Getenv("STORAGE_USE_SSL"); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			c.envProblems = append(c.envProblems, fmt.Sprintf("STORAGE_USE_SSL 不是布尔值: %q", v))
		} else {
			c.Storage.UseSSL = useSSL
		}
	}

	c.AMQP.URL = getEnv("AMQP_URL", c.AMQP.URL)
	c.AMQP.Exchange = getEnv("AMQP_EXCHANGE", c.AMQP.Exchange)
}

// Validate 校验配置，一次返回全部问题
func (c *Config) Validate() error {
	problems := append([]string(nil), c.envProblems...)

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("端口无效: %d", c.Port))
	}
	if c.MongoURI == "" {
		problems = append(problems, "MONGO_URI 不能为空")
	}
	if c.MongoDB == "" {
		problems = append(problems, "MONGO_DB 不能为空")
	}
	if c.JWTKey == "" {
		problems = append(problems, "JWT_KEY 不能为空")
	} else if !c.Debug && c.JWTKey == DefaultJWTKey {
		problems = append(problems, "非 debug 模式必须通过 JWT_KEY 设置签名密钥")
	}
	if c.MaxUploadMB <= 0 {
		problems = append(problems, fmt.Sprintf("上传大小限制无效: %dMB", c.MaxUploadMB))
	}
	if c.ReminderHour < -1 || c.ReminderHour > 23 {
		problems = append(problems, fmt.Sprintf("提醒时间无效: %d", c.ReminderHour))
	}
	if c.Storage.Bucket == "" {
		problems = append(problems, "STORAGE_BUCKET 不能为空")
	}
	if c.Storage.Endpoint != "" && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		problems = append(problems, "配置了 STORAGE_ENDPOINT 时必须提供访问密钥")
	}
	if c.AMQP.URL != "" {
		if u, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("AMQP_URL 无效: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("AMQP_URL 协议无效: %s", u.Scheme))
		}
		if c.AMQP.Exchange == "" {
			problems = append(problems, "配置了 AMQP_URL 时 AMQP_EXCHANGE 不能为空")
		}
	}

	if len(problems) > 0 {
		return errors.New("配置校验失败: " + strings.Join(problems, "; "))
	}
	return nil
}

// MaxUploadBytes 上传大小限制（字节）
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// envInt 读取整数环境变量，无法解析时保留原值并记录问题
func (c *Config) envInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		c.envProblems = append(c.envProblems, fmt.Sprintf("%s 不是整数: %q", key, value))
		return defaultValue
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

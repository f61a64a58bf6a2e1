package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Wikipedia  WikipediaConfig  `mapstructure:"wikipedia"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Trace      TraceConfig      `mapstructure:"trace"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig AI 服务配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"` // openai, azure, ark, demo
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Timeout  time.Duration   `mapstructure:"timeout"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
}

// GenerationConfig 段落生成策略
// 字数范围、上下文长度与 token 倍数都是可调参数
type GenerationConfig struct {
	MinWords        int    `mapstructure:"min_words"`
	MaxWords        int    `mapstructure:"max_words"`
	TokenMultiplier int    `mapstructure:"token_multiplier"`
	ContextMaxChars int    `mapstructure:"context_max_chars"`
	SystemPrompt    string `mapstructure:"system_prompt"`
}

// WikipediaConfig 知识源配置
type WikipediaConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	BaseURL   string        `mapstructure:"base_url"` // 为空时按 language 拼接
	Language  string        `mapstructure:"language"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TraceConfig OpenTelemetry 追踪配置
type TraceConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Default 返回与 cmd 中 viper 默认值一致的配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         5000,
			Mode:         "release",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		AI: AIConfig{
			Provider: "openai",
			Model:    "gpt-3.5-turbo",
			Timeout:  60 * time.Second,
			Options: AIOptionsConfig{
				Temperature: 0.7,
			},
		},
		Generation: DefaultGeneration(),
		Wikipedia: WikipediaConfig{
			Enabled:   true,
			Language:  "en",
			UserAgent: "WordSalad/1.0 (https://github.com/sri-nivas1227/WordSalad)",
			Timeout:   10 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stdout",
			TimeFormat: "RFC3339",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Trace: TraceConfig{
			ServiceName: "wordsalad",
			SampleRate:  1.0,
		},
	}
}

// DefaultGeneration 默认生成策略
func DefaultGeneration() GenerationConfig {
	return GenerationConfig{
		MinWords:        10,
		MaxWords:        500,
		TokenMultiplier: 3,
		ContextMaxChars: 500,
		SystemPrompt:    "You are a helpful assistant that writes precise, factual paragraphs with exact word counts.",
	}
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	return c.Generation.Validate()
}

// Validate 验证生成策略
func (g *GenerationConfig) Validate() error {
	if g.MinWords < 1 {
		return errors.New("generation.min_words must be at least 1")
	}
	if g.MaxWords < g.MinWords {
		return errors.New("generation.max_words must not be less than generation.min_words")
	}
	if g.TokenMultiplier <= 0 {
		return errors.New("generation.token_multiplier must be positive")
	}
	if g.ContextMaxChars < 0 {
		return errors.New("generation.context_max_chars must not be negative")
	}
	return nil
}

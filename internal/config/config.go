package config

import (
	"fmt"
	"strings"

	"github.com/payrail-go/internal/logger"

	"github.com/spf13/viper"
)

// Config SDK 配置结构
type Config struct {
	Mode    string        `mapstructure:"mode"` // debug / release
	Gateway GatewayConfig `mapstructure:"gateway"`
	Log     LogConfig     `mapstructure:"log"`
}

// GatewayConfig 支付网关配置
type GatewayConfig struct {
	APIBase       string `mapstructure:"api_base"`       // 网关地址
	PrivateKey    string `mapstructure:"private_key"`    // 商户私钥（basic auth 用户名）
	ReturnURL     string `mapstructure:"return_url"`     // 默认同步跳转地址
	TimeoutMS     int    `mapstructure:"timeout_ms"`     // 单次请求超时
	WebhookSecret string `mapstructure:"webhook_secret"` // 回调签名密钥，留空则不校验
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// Load 加载配置（yaml + 环境变量）
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("../")   // 如果从 cmd 子目录运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("mode", "debug")
	viper.SetDefault("gateway.api_base", "https://api.payrail.example/v1")
	viper.SetDefault("gateway.private_key", "")
	viper.SetDefault("gateway.return_url", "")
	viper.SetDefault("gateway.timeout_ms", 12000)
	viper.SetDefault("gateway.webhook_secret", "")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "payrail.log")
	viper.SetDefault("log.max_size_mb", 50)
	viper.SetDefault("log.max_backups", 5)
	viper.SetDefault("log.max_age_days", 14)
	viper.SetDefault("log.compress", true)

	// 环境变量支持（gateway.private_key -> GATEWAY_PRIVATE_KEY）
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config unmarshal failed: %w", err))
	}

	return &cfg
}

package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置：先读 config.yaml，再用环境变量覆盖
func Init() {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		cfg := defaultConfig()

		if err := v.ReadInConfig(); err == nil {
			if err := v.Unmarshal(cfg); err != nil {
				panic(fmt.Sprintf("解析配置文件失败: %v", err))
			}
		}

		// 环境变量优先级最高，前缀 SAS（Student Activity System）
		if err := envconfig.Process("SAS", cfg); err != nil {
			panic(fmt.Sprintf("读取环境变量配置失败: %v", err))
		}

		instance = cfg
	})
}

// Get 获取全局配置，未初始化时自动加载
func Get() *Config {
	if instance == nil {
		Init()
	}
	return instance
}

func defaultConfig() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8080",
		Prefix: "api",
		Mode:   ModeDebug,
		JWT: JWT{
			AccessExpire: 7 * 24 * 3600,
		},
		QR: QR{
			TokenExpire: 180, // 与二维码刷新周期一致
		},
		Scan: Scan{
			AllowDirectCheckout:     false,
			DuplicateAlertThreshold: 3,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

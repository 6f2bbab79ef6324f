package config

import (
	"fmt"
	"github.com/spf13/viper"
)

// Config 存储所有配置信息
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`

	// Redis配置（实时协作通道）
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// 实时同步配置
	EnableRealTime       bool `mapstructure:"ENABLE_REAL_TIME"`
	ReconnectionDelayMs  int  `mapstructure:"RECONNECTION_DELAY_MS"`
	ReconnectionAttempts int  `mapstructure:"RECONNECTION_ATTEMPTS"`
	ConnectTimeoutMs     int  `mapstructure:"CONNECT_TIMEOUT_MS"`

	// 本地数据目录（设置、用户身份）
	DataDir string `mapstructure:"DATA_DIR"`
}

// LoadConfig 从环境变量或配置文件加载配置
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ENABLE_REAL_TIME", false)
	viper.SetDefault("RECONNECTION_DELAY_MS", 2000)
	viper.SetDefault("RECONNECTION_ATTEMPTS", 3)
	viper.SetDefault("CONNECT_TIMEOUT_MS", 10000)
	viper.SetDefault("DATA_DIR", ".taskflow")

	err = viper.ReadInConfig()
	if err != nil {
		// 允许配置文件不存在，此时会从环境变量中读取
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}

// GetRedisConnString 返回Redis连接字符串
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// Ininicializing common application configuration
package config

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	App    AppConfig    `mapstructure:"app"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
}

type ServerConfig struct {
	AppVersion   string        `mapstructure:"app_version"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Idle_timeout time.Duration `mapstructure:"idle_timeout"`
	Env          string        `mapstructure:"environment"`
	Mode         string        `mapstructure:"mode"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

type AppConfig struct {
	WorkDir           string `mapstructure:"work_dir"`
	Quality           int    `mapstructure:"quality"`
	MaxFiles          int    `mapstructure:"max_files"`
	CompressionLevel  int    `mapstructure:"compression_level"`
	MaxConcurrentJobs int    `mapstructure:"max_concurrent_jobs"`
	ArchiveName       string `mapstructure:"archive_name"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

// LoadConfig reads ./config/config.yaml. A missing file is not an error:
// defaults and CONVERTER_* environment variables are used instead.
func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	viperInstance.SetEnvPrefix("converter")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	err := viperInstance.ReadInConfig()

	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.timeout", 5*time.Minute)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_body_bytes", int64(512<<20))

	// App defaults
	v.SetDefault("app.work_dir", "./workspace")
	v.SetDefault("app.quality", 80)
	v.SetDefault("app.max_files", 100)
	v.SetDefault("app.compression_level", 9)
	v.SetDefault("app.max_concurrent_jobs", runtime.NumCPU())
	v.SetDefault("app.archive_name", "converted_images.zip")

	// Kafka defaults
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka.topic", "image-conversions")
	v.SetDefault("kafka.group_id", "image-conversion-log")
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

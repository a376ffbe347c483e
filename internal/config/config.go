/*
 * @description: neoscan 配置管理，负责日志等周边子系统的配置加载
 */
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是 neoscan 的顶层配置，扫描参数始终来自命令行，这里只承载不随
// 扫描生命周期变化的环境配置（目前只有日志）。
type Config struct {
	Log *LogConfig `yaml:"log"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`       // debug/info/warn/error/fatal
	Format     string `yaml:"format"`      // text/json
	Output     string `yaml:"output"`      // stdout/stderr/file
	FilePath   string `yaml:"file_path"`   // 当 output=file 时必填
	MaxSize    int    `yaml:"max_size"`    // MB
	MaxBackups int    `yaml:"max_backups"` // 保留的备份文件数
	MaxAge     int    `yaml:"max_age"`     // 保留天数
	Compress   bool   `yaml:"compress"`
	Caller     bool   `yaml:"caller"`
}

// DefaultConfig 返回命令行模式下的默认配置：只输出到 stdout，级别 info。
func DefaultConfig() *Config {
	return &Config{
		Log: &LogConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stdout",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load 从 YAML 文件加载配置；文件不存在时静默返回默认配置，因为 neoscan
// 作为单机 CLI 工具不强制要求配置文件存在。
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Log == nil {
		cfg.Log = DefaultConfig().Log
	}
	return cfg, nil
}

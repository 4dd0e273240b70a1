package config

// Config 配置文件结构
type Config struct {
	// DefaultStyle 未显式指定 --style 时使用的消息风格
	DefaultStyle string `json:"default_style" yaml:"default_style"`
	// Exclude 追加到内置排除列表的路径条目
	Exclude []string `json:"exclude" yaml:"exclude"`
	// Debug 等价于常开的 --debug
	Debug bool `json:"debug" yaml:"debug"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{DefaultStyle: "conventional"}
}

// Manager 配置管理器接口
type Manager interface {
	// Load 加载配置文件；文件不存在时返回默认配置
	Load() (*Config, error)
	// Save 保存配置文件（原子操作）
	Save(config *Config) error
}

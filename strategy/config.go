package strategy

// Config holds quoting parameters for a single maker. Immutable after
// construction except BaseSpread, which is seeded from the market's initial
// spread.
type Config struct {
	WindowSize    int     `yaml:"windowSize" json:"windowSize"`       // 失衡窗口采样条数
	BaseSpread    float64 `yaml:"baseSpread" json:"baseSpread"`       // 基础价差（绝对概率点）
	MinSpread     float64 `yaml:"minSpread" json:"minSpread"`         // 最小价差
	MaxSpread     float64 `yaml:"maxSpread" json:"maxSpread"`         // 最大价差
	InventorySkew float64 `yaml:"inventorySkew" json:"inventorySkew"` // 库存倾斜系数
}

// DefaultConfig returns the standard quoting parameters.
func DefaultConfig() Config {
	return Config{
		WindowSize:    20,
		BaseSpread:    0.05,
		MinSpread:     0.01,
		MaxSpread:     0.5,
		InventorySkew: 0.001,
	}
}

// Validate checks the config is usable.
func (c Config) Validate() bool {
	if c.WindowSize <= 0 {
		return false
	}
	if c.MinSpread <= 0 || c.MaxSpread <= 0 || c.MinSpread > c.MaxSpread {
		return false
	}
	if c.InventorySkew < 0 {
		return false
	}
	return true
}

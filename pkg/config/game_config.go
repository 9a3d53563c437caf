package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 内嵌默认配置文件路径
const DefaultConfigPath = "data/config/game.yaml"

// GameConfig 游戏配置数据结构
// 包含画布、生成、物理、消除、连击、特效等全部可调参数
//
// 速度、加速度、衰减步长的单位均为"每帧"（tick），与 Tick 调度频率绑定
type GameConfig struct {
	Canvas       CanvasConfig       `yaml:"canvas"`
	Spawn        SpawnConfig        `yaml:"spawn"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Pop          PopConfig          `yaml:"pop"`
	Combo        ComboConfig        `yaml:"combo"`
	Particles    ParticleConfig     `yaml:"particles"`
	FloatingText FloatingTextConfig `yaml:"floatingText"`
	Shake        ShakeConfig        `yaml:"shake"`
	Banner       BannerConfig       `yaml:"banner"`
	HoverColor   string             `yaml:"hoverColor"` // 悬停高亮颜色，如 "#ffc107"
}

// CanvasConfig 画布尺寸（逻辑像素）
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnConfig 生成调度配置
type SpawnConfig struct {
	TotalObjects     int     `yaml:"totalObjects"`     // 全部关卡的气泡总数
	GroupSize        int     `yaml:"groupSize"`        // 每关气泡数量
	MinRadius        float64 `yaml:"minRadius"`        // 最小半径
	MaxRadius        float64 `yaml:"maxRadius"`        // 最大半径
	SpawnChance      float64 `yaml:"spawnChance"`      // 每帧生成概率
	SpawnDepth       float64 `yaml:"spawnDepth"`       // 画布下方随机生成深度
	BaseSpeed        float64 `yaml:"baseSpeed"`        // 上升基础速度
	LevelSpeedFactor float64 `yaml:"levelSpeedFactor"` // 每关速度增量
	LateralJitter    float64 `yaml:"lateralJitter"`    // 水平速度抖动幅度
}

// PhysicsConfig 物理引擎配置
type PhysicsConfig struct {
	MaxSpeed          float64 `yaml:"maxSpeed"`          // 速度上限（硬约束）
	Elasticity        float64 `yaml:"elasticity"`        // 碰撞后速度保留比例，必须小于 1
	CorrectionFactor  float64 `yaml:"correctionFactor"`  // 每帧位置修正比例（软修正）
	FloorRestitution  float64 `yaml:"floorRestitution"`  // 地面反弹系数
	ZeroDistanceNudge float64 `yaml:"zeroDistanceNudge"` // 圆心重合时的固定位移
}

// PopConfig 消除动画配置
// FadeStep >= 1 时为"瞬间消除"风格
type PopConfig struct {
	FadeStep float64 `yaml:"fadeStep"` // 每帧透明度衰减
	GrowStep float64 `yaml:"growStep"` // 每帧半径增长
}

// ComboConfig 连击配置
type ComboConfig struct {
	Window    int `yaml:"window"`    // 连击窗口（帧）
	Threshold int `yaml:"threshold"` // 连击文字升级阈值
}

// ParticleConfig 粒子爆发配置
type ParticleConfig struct {
	Count     int     `yaml:"count"`
	MinSpeed  float64 `yaml:"minSpeed"`
	MaxSpeed  float64 `yaml:"maxSpeed"`
	MinRadius float64 `yaml:"minRadius"`
	MaxRadius float64 `yaml:"maxRadius"`
	Friction  float64 `yaml:"friction"`
	Gravity   float64 `yaml:"gravity"`
	FadeStep  float64 `yaml:"fadeStep"`
}

// FloatingTextConfig 浮动文字配置
type FloatingTextConfig struct {
	Life      int     `yaml:"life"`      // 存活帧数
	FadeTicks int     `yaml:"fadeTicks"` // 最后多少帧开始淡出
	RiseSpeed float64 `yaml:"riseSpeed"` // 上升速度
	Size      float64 `yaml:"size"`      // 普通文字字号
	ComboSize float64 `yaml:"comboSize"` // 连击文字字号
	BigSize   float64 `yaml:"bigSize"`   // 升级/新纪录文字字号
}

// ShakeConfig 屏幕震动配置
type ShakeConfig struct {
	Pop     float64 `yaml:"pop"`     // 消除时震动幅度
	Record  float64 `yaml:"record"`  // 新纪录震动幅度
	Decay   float64 `yaml:"decay"`   // 每帧衰减倍数
	Epsilon float64 `yaml:"epsilon"` // 低于此值归零
}

// BannerConfig 关卡横幅配置（秒）
type BannerConfig struct {
	Duration float64 `yaml:"duration"`
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Spawn: SpawnConfig{
			TotalObjects:     150,
			GroupSize:        10,
			MinRadius:        15,
			MaxRadius:        35,
			SpawnChance:      0.05,
			SpawnDepth:       100,
			BaseSpeed:        1,
			LevelSpeedFactor: 0.5,
			LateralJitter:    1,
		},
		Physics: PhysicsConfig{
			MaxSpeed:          12,
			Elasticity:        0.9,
			CorrectionFactor:  0.2,
			FloorRestitution:  0.8,
			ZeroDistanceNudge: 0.1,
		},
		Pop:   PopConfig{FadeStep: 0.05, GrowStep: 0.5},
		Combo: ComboConfig{Window: 60, Threshold: 3},
		Particles: ParticleConfig{
			Count:     12,
			MinSpeed:  1,
			MaxSpeed:  4,
			MinRadius: 1.5,
			MaxRadius: 3.5,
			Friction:  0.95,
			Gravity:   0.1,
			FadeStep:  0.02,
		},
		FloatingText: FloatingTextConfig{
			Life:      60,
			FadeTicks: 20,
			RiseSpeed: 1,
			Size:      18,
			ComboSize: 26,
			BigSize:   36,
		},
		Shake:      ShakeConfig{Pop: 3, Record: 12, Decay: 0.9, Epsilon: 0.5},
		Banner:     BannerConfig{Duration: 2},
		HoverColor: "#ffc107",
	}
}

// TotalLevels 返回关卡总数（totalObjects / groupSize）
func (c *GameConfig) TotalLevels() int {
	if c.Spawn.GroupSize <= 0 {
		return 0
	}
	return c.Spawn.TotalObjects / c.Spawn.GroupSize
}

// LoadGameConfig 从YAML文件加载游戏配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*GameConfig - 解析后的配置（未出现的字段使用默认值）
//	error - 如果文件读取、解析或验证失败，返回错误信息
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析YAML数据
// 在默认配置之上覆盖，因此配置文件只需写出需要修改的字段
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validateGameConfig(cfg); err != nil {
		return nil, err
	}

	// 最高关卡的初速度超过速度上限时会被立即截断，仅提示不报错
	topSpeed := cfg.Spawn.BaseSpeed + float64(cfg.TotalLevels())*cfg.Spawn.LevelSpeedFactor
	if topSpeed > cfg.Physics.MaxSpeed {
		log.Printf("[Config] Warning: top level speed %.2f exceeds maxSpeed %.2f", topSpeed, cfg.Physics.MaxSpeed)
	}

	return cfg, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *GameConfig) {
	if cfg.HoverColor == "" {
		cfg.HoverColor = "#ffc107"
	}

	// 淡出段不能长于生命周期
	if cfg.FloatingText.FadeTicks > cfg.FloatingText.Life {
		cfg.FloatingText.FadeTicks = cfg.FloatingText.Life
	}
}

// validateGameConfig 验证配置的完整性和合法性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %.0fx%.0f", cfg.Canvas.Width, cfg.Canvas.Height)
	}

	s := cfg.Spawn
	if s.TotalObjects < 1 {
		return fmt.Errorf("spawn.totalObjects must be at least 1, got %d", s.TotalObjects)
	}
	if s.GroupSize < 1 {
		return fmt.Errorf("spawn.groupSize must be at least 1, got %d", s.GroupSize)
	}
	if s.TotalObjects%s.GroupSize != 0 {
		return fmt.Errorf("spawn.totalObjects (%d) must be a multiple of spawn.groupSize (%d)", s.TotalObjects, s.GroupSize)
	}
	if s.MinRadius <= 0 || s.MaxRadius < s.MinRadius {
		return fmt.Errorf("spawn radius range invalid: [%.1f, %.1f]", s.MinRadius, s.MaxRadius)
	}
	if s.MaxRadius*2 >= cfg.Canvas.Width {
		return fmt.Errorf("spawn.maxRadius %.1f does not fit canvas width %.0f", s.MaxRadius, cfg.Canvas.Width)
	}
	if s.SpawnChance <= 0 || s.SpawnChance > 1 {
		return fmt.Errorf("spawn.spawnChance must be in (0, 1], got %v", s.SpawnChance)
	}
	if s.SpawnDepth < 0 {
		return fmt.Errorf("spawn.spawnDepth cannot be negative, got %v", s.SpawnDepth)
	}

	p := cfg.Physics
	if p.MaxSpeed <= 0 {
		return fmt.Errorf("physics.maxSpeed must be positive, got %v", p.MaxSpeed)
	}
	if p.Elasticity <= 0 || p.Elasticity >= 1 {
		return fmt.Errorf("physics.elasticity must be in (0, 1), got %v", p.Elasticity)
	}
	if p.CorrectionFactor <= 0 || p.CorrectionFactor > 1 {
		return fmt.Errorf("physics.correctionFactor must be in (0, 1], got %v", p.CorrectionFactor)
	}
	if p.FloorRestitution < 0 || p.FloorRestitution > 1 {
		return fmt.Errorf("physics.floorRestitution must be in [0, 1], got %v", p.FloorRestitution)
	}
	if p.ZeroDistanceNudge <= 0 {
		return fmt.Errorf("physics.zeroDistanceNudge must be positive, got %v", p.ZeroDistanceNudge)
	}

	if cfg.Pop.FadeStep <= 0 {
		return fmt.Errorf("pop.fadeStep must be positive, got %v", cfg.Pop.FadeStep)
	}
	if cfg.Pop.GrowStep < 0 {
		return fmt.Errorf("pop.growStep cannot be negative, got %v", cfg.Pop.GrowStep)
	}

	if cfg.Combo.Window < 1 {
		return fmt.Errorf("combo.window must be at least 1, got %d", cfg.Combo.Window)
	}

	pc := cfg.Particles
	if pc.Count < 0 {
		return fmt.Errorf("particles.count cannot be negative, got %d", pc.Count)
	}
	if pc.FadeStep <= 0 {
		return fmt.Errorf("particles.fadeStep must be positive, got %v", pc.FadeStep)
	}
	if pc.MaxSpeed < pc.MinSpeed || pc.MaxRadius < pc.MinRadius {
		return fmt.Errorf("particles speed/radius ranges invalid")
	}

	if cfg.FloatingText.Life < 1 {
		return fmt.Errorf("floatingText.life must be at least 1, got %d", cfg.FloatingText.Life)
	}

	if cfg.Shake.Decay <= 0 || cfg.Shake.Decay >= 1 {
		return fmt.Errorf("shake.decay must be in (0, 1), got %v", cfg.Shake.Decay)
	}

	if cfg.Banner.Duration <= 0 {
		return fmt.Errorf("banner.duration must be positive, got %v", cfg.Banner.Duration)
	}

	return nil
}

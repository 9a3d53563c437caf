package game

import (
	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/config"
)

// Phase 进度状态机状态
type Phase int

const (
	// PhaseInProgress 关卡进行中（CurrentLevel 为当前关卡）
	PhaseInProgress Phase = iota
	// PhaseCompleted 全部关卡完成（终态）
	PhaseCompleted
)

// Pointer 指针状态
// Valid 为 false 表示指针不在画布内，悬停和命中判定均为 false
type Pointer struct {
	X, Y  float64
	Valid bool
}

// GameState 一局游戏的全部可变状态
//
// 由 Engine 独占持有，各系统通过参数接收，不保存反向引用。
// 重新开始 = 构造一个新的 GameState，而不是逐字段重置
type GameState struct {
	Config *config.GameConfig

	// 存活实体集合
	Circles   []*components.Circle
	Particles []*components.Particle
	Texts     []*components.FloatingText

	EliminatedCount int // 单调不减
	EscapedCount    int // 从顶部飞出的数量
	CurrentLevel    int // [1, TotalLevels]
	SpawnedInLevel  int // [0, GroupSize]
	TotalLevels     int

	ComboCount int
	ComboTimer int

	HighScore           int
	NewRecordCelebrated bool

	ScreenShake float64
	Banner      *components.Banner

	Phase   Phase
	Pointer Pointer

	TickCount uint64
	Events    EventQueue
}

// NewGameState 创建初始状态
//
// 参数：
//   - cfg: 游戏配置
//   - highScore: 持久化的最高分（读取失败时传 0）
func NewGameState(cfg *config.GameConfig, highScore int) *GameState {
	if highScore < 0 {
		highScore = 0
	}
	return &GameState{
		Config:       cfg,
		Circles:      make([]*components.Circle, 0, cfg.Spawn.GroupSize),
		Particles:    make([]*components.Particle, 0, 64),
		Texts:        make([]*components.FloatingText, 0, 8),
		CurrentLevel: 1,
		TotalLevels:  cfg.TotalLevels(),
		HighScore:    highScore,
		Phase:        PhaseInProgress,
	}
}

// Score 当前得分（等于消除数）
func (gs *GameState) Score() int {
	return gs.EliminatedCount
}

// CompletionPercent 完成百分比 [0, 100]
func (gs *GameState) CompletionPercent() float64 {
	total := gs.Config.Spawn.TotalObjects
	if total <= 0 {
		return 0
	}
	return float64(gs.EliminatedCount) / float64(total) * 100
}

// IsCompleted 是否已全部通关
func (gs *GameState) IsCompleted() bool {
	return gs.Phase == PhaseCompleted
}

// Publish 推送事件到帧内队列
func (gs *GameState) Publish(ev Event) {
	gs.Events.Push(ev)
}

// Renderables 按绘制顺序返回全部可渲染实体：气泡、粒子、文字
func (gs *GameState) Renderables() []components.Renderable {
	out := make([]components.Renderable, 0, len(gs.Circles)+len(gs.Particles)+len(gs.Texts))
	for _, c := range gs.Circles {
		out = append(out, c)
	}
	for _, p := range gs.Particles {
		out = append(out, p)
	}
	for _, t := range gs.Texts {
		out = append(out, t)
	}
	return out
}

// CircleAt 自顶向下（后绘制的优先）查找指针下可点击的气泡
// 指针无效时返回 nil
func (gs *GameState) CircleAt(x, y float64, valid bool) *components.Circle {
	if !valid {
		return nil
	}
	for i := len(gs.Circles) - 1; i >= 0; i-- {
		c := gs.Circles[i]
		if c.IsAlive() && c.Contains(x, y) {
			return c
		}
	}
	return nil
}

// Occupied 指针下是否有尚未移除的气泡（包括淡出中的）
func (gs *GameState) Occupied(x, y float64) bool {
	for _, c := range gs.Circles {
		if !c.MarkedForDeletion && c.Contains(x, y) {
			return true
		}
	}
	return false
}

// Hovered 返回当前指针悬停的气泡
func (gs *GameState) Hovered() *components.Circle {
	return gs.CircleAt(gs.Pointer.X, gs.Pointer.Y, gs.Pointer.Valid)
}

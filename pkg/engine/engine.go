// Package engine 气泡猎人核心引擎
//
// Engine 独占持有 GameState，按固定顺序驱动各系统：
//
//	Spawn → Physics → Lifecycle → Score → Effects → Level
//
// 渲染、音频、持久化作为协作方：渲染读取 State()，音频通过 Register 订阅事件，
// 最高分通过 HighScoreStore 读写。引擎本身不依赖任何显示或计时器，可在测试中直接驱动
package engine

import (
	"log"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/config"
	"github.com/decker502/bubblehunter/pkg/game"
	"github.com/decker502/bubblehunter/pkg/systems"
)

// Engine 帧调度器
type Engine struct {
	cfg   *config.GameConfig
	store game.HighScoreStore
	rng   game.RandomSource

	state  *game.GameState
	router *game.Router

	spawn     *systems.SpawnSystem
	physics   *systems.PhysicsSystem
	lifecycle *systems.LifecycleSystem
	score     *systems.ScoreSystem
	effects   *systems.EffectsSystem
	level     *systems.LevelSystem
}

// New 创建引擎并开始第一局
//
// 参数:
//   - cfg: 游戏配置（nil 时使用默认配置）
//   - store: 最高分存储，可为 nil（最高分从 0 开始且不持久化）
//   - rng: 随机数来源，nil 时使用基于时间的来源
func New(cfg *config.GameConfig, store game.HighScoreStore, rng game.RandomSource) *Engine {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if rng == nil {
		rng = game.NewRandomSource(0)
	}

	e := &Engine{
		cfg:       cfg,
		store:     store,
		rng:       rng,
		router:    game.NewRouter(),
		spawn:     systems.NewSpawnSystem(rng),
		physics:   systems.NewPhysicsSystem(),
		lifecycle: systems.NewLifecycleSystem(),
		score:     systems.NewScoreSystem(store),
		effects:   systems.NewEffectsSystem(rng),
		level:     systems.NewLevelSystem(),
	}

	// 计分先于特效，特效读取的是更新后的连击数
	e.router.Register(e.score)
	e.router.Register(e.effects)

	e.state = game.NewGameState(cfg, e.loadHighScore())
	return e
}

// Register 订阅事件（音频、UI 等协作方）
// 在内部系统之后调用
func (e *Engine) Register(h game.Handler) {
	e.router.Register(h)
}

// Tick 推进一帧
//
// 参数:
//   - dt: 帧时间（秒），仅用于横幅补间；物理按帧推进
//
// 返回:
//   - bool: 游戏仍在进行时返回 true；进入 Completed 后返回 false，
//     此后模拟冻结，只继续推进残留的视觉特效
func (e *Engine) Tick(dt float64) bool {
	gs := e.state
	if gs.IsCompleted() {
		e.effects.Update(gs, dt)
		return false
	}

	gs.TickCount++

	e.spawn.Update(gs)
	e.physics.Update(gs)
	e.lifecycle.Update(gs)

	e.score.Update(gs)
	e.router.DispatchAll(gs)

	e.effects.Update(gs, dt)

	e.level.Update(gs)
	e.router.DispatchAll(gs)

	return !gs.IsCompleted()
}

// Click 处理一次点击
// 自顶向下命中测试，每次点击最多消除一个气泡。
// 只有指针下完全没有气泡时才算未命中并立即清零连击；
// 落在淡出中的气泡上的重复点击不改变任何状态
//
// 返回:
//   - bool: 是否消除了新的气泡
func (e *Engine) Click(x, y float64) bool {
	gs := e.state
	if gs.IsCompleted() {
		return false
	}

	if c := gs.CircleAt(x, y, true); c != nil {
		c.StartFadeOut()
		return true
	}
	if gs.Occupied(x, y) {
		return false
	}

	gs.Publish(game.Event{Type: game.EventMiss, X: x, Y: y})
	e.router.DispatchAll(gs)
	return false
}

// PointerMove 更新指针位置
func (e *Engine) PointerMove(x, y float64) {
	e.state.Pointer = game.Pointer{X: x, Y: y, Valid: true}
}

// PointerLeave 指针离开画布，清除悬停
func (e *Engine) PointerLeave() {
	e.state.Pointer = game.Pointer{}
}

// Hovered 当前悬停的气泡
func (e *Engine) Hovered() *components.Circle {
	return e.state.Hovered()
}

// Restart 重新开始
// 构造全新的 GameState，最高分重新从存储读取；指针状态保留
func (e *Engine) Restart() {
	pointer := e.state.Pointer
	e.state = game.NewGameState(e.cfg, e.loadHighScore())
	e.state.Pointer = pointer
	log.Printf("[Engine] Restarted (high score %d)", e.state.HighScore)
}

// Finished 是否已全部通关
func (e *Engine) Finished() bool {
	return e.state.IsCompleted()
}

// State 当前状态（只读使用）
func (e *Engine) State() *game.GameState {
	return e.state
}

// Config 当前配置
func (e *Engine) Config() *config.GameConfig {
	return e.cfg
}

func (e *Engine) loadHighScore() int {
	if e.store == nil {
		return 0
	}
	return e.store.GetHighScore()
}

package engine

import (
	"image/color"
	"testing"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/config"
	"github.com/decker502/bubblehunter/pkg/game"
	"github.com/decker502/bubblehunter/pkg/systems"
)

// neverSpawn 生成判定恒失败，气泡由测试手动放置
type neverSpawn struct{}

func (neverSpawn) Float64() float64 { return 0.99 }

const dt = 1.0 / 60

// placeRow 在画布中部放置 n 个互不重叠的静止气泡
func placeRow(gs *game.GameState, n int) []*components.Circle {
	out := make([]*components.Circle, 0, n)
	for i := 0; i < n; i++ {
		c := components.NewCircle(50+float64(i)*70, 300, 20, 0, 0, color.RGBA{R: 90, G: 160, B: 220, A: 255})
		out = append(out, systems.Place(gs, c))
	}
	return out
}

// tickUntil 最多推进 limit 帧，直到条件满足
func tickUntil(e *Engine, limit int, done func(*game.GameState) bool) {
	for i := 0; i < limit && !done(e.State()); i++ {
		e.Tick(dt)
	}
}

// eventCounter 统计事件次数
func eventCounter(e *Engine, types ...game.EventType) map[game.EventType]int {
	counts := make(map[game.EventType]int)
	e.Register(game.HandlerFunc{
		Types: types,
		Fn:    func(_ *game.GameState, ev game.Event) { counts[ev.Type]++ },
	})
	return counts
}

// TestScenario_ClearLevel 放置 10 个气泡并全部点中：消除 10，进入第 2 关
func TestScenario_ClearLevel(t *testing.T) {
	e := New(config.DefaultGameConfig(), nil, neverSpawn{})
	counts := eventCounter(e, game.EventLevelUp, game.EventPopped)
	circles := placeRow(e.State(), 10)

	for _, c := range circles {
		if !e.Click(c.X, c.Y) {
			t.Fatalf("click at (%v, %v) should hit", c.X, c.Y)
		}
	}
	tickUntil(e, 200, func(gs *game.GameState) bool { return gs.EliminatedCount == 10 })

	gs := e.State()
	if gs.EliminatedCount != 10 {
		t.Fatalf("EliminatedCount: got %d, want 10", gs.EliminatedCount)
	}
	if gs.CurrentLevel != 2 {
		t.Errorf("CurrentLevel: got %d, want 2", gs.CurrentLevel)
	}
	if gs.SpawnedInLevel != 0 {
		t.Errorf("SpawnedInLevel: got %d, want 0", gs.SpawnedInLevel)
	}
	if counts[game.EventPopped] != 10 || counts[game.EventLevelUp] != 1 {
		t.Errorf("events: %v", counts)
	}
}

// TestScenario_MissResetsCombo 点击空白处清零连击，消除数不变
func TestScenario_MissResetsCombo(t *testing.T) {
	e := New(config.DefaultGameConfig(), nil, neverSpawn{})
	gs := e.State()
	gs.ComboCount = 3
	gs.ComboTimer = 30
	gs.EliminatedCount = 4

	if e.Click(700, 50) {
		t.Fatal("click on empty space should miss")
	}
	if gs.ComboCount != 0 {
		t.Errorf("ComboCount: got %d, want 0", gs.ComboCount)
	}
	if gs.EliminatedCount != 4 {
		t.Errorf("EliminatedCount: got %d, want 4", gs.EliminatedCount)
	}
}

// TestClick_FadingCircleKeepsCombo 对淡出中的气泡重复点击：连击、计时、消除数都不变，也不算未命中
func TestClick_FadingCircleKeepsCombo(t *testing.T) {
	e := New(config.DefaultGameConfig(), nil, neverSpawn{})
	counts := eventCounter(e, game.EventMiss)
	gs := e.State()
	c := systems.Place(gs, components.NewCircle(400, 300, 20, 0, 0, components.ColorCyan))
	gs.ComboCount = 3
	gs.ComboTimer = 40
	gs.EliminatedCount = 7

	if !e.Click(400, 300) {
		t.Fatal("first click should pop the circle")
	}
	e.Tick(dt)
	if !c.IsFading || c.MarkedForDeletion {
		t.Fatalf("circle should still be fading: fading=%v marked=%v", c.IsFading, c.MarkedForDeletion)
	}

	combo, timer, eliminated := gs.ComboCount, gs.ComboTimer, gs.EliminatedCount
	if e.Click(400, 300) {
		t.Error("second click on a fading circle should not pop anything new")
	}

	if gs.ComboCount != combo || gs.ComboTimer != timer {
		t.Errorf("combo changed: (%d, %d) -> (%d, %d)", combo, timer, gs.ComboCount, gs.ComboTimer)
	}
	if gs.EliminatedCount != eliminated {
		t.Errorf("EliminatedCount: got %d, want %d", gs.EliminatedCount, eliminated)
	}
	if counts[game.EventMiss] != 0 {
		t.Errorf("Miss events: got %d, want 0", counts[game.EventMiss])
	}
	if gs.ComboCount != 3 {
		t.Errorf("ComboCount: got %d, want 3", gs.ComboCount)
	}
}

// TestScenario_NewRecord 首次超过已存最高分 5：持久化一次，新纪录事件一次
func TestScenario_NewRecord(t *testing.T) {
	store := &game.MemoryScoreStore{HighScore: 5}
	e := New(config.DefaultGameConfig(), store, neverSpawn{})
	counts := eventCounter(e, game.EventNewRecord)

	if e.State().HighScore != 5 {
		t.Fatalf("HighScore: got %d, want 5", e.State().HighScore)
	}

	for _, c := range placeRow(e.State(), 6) {
		e.Click(c.X, c.Y)
	}
	tickUntil(e, 200, func(gs *game.GameState) bool { return gs.EliminatedCount == 6 })

	if len(store.SetCalls) != 1 || store.SetCalls[0] != 6 {
		t.Errorf("SetCalls: got %v, want [6]", store.SetCalls)
	}
	if counts[game.EventNewRecord] != 1 {
		t.Errorf("NewRecord events: got %d, want 1", counts[game.EventNewRecord])
	}

	// 同一局内继续刷新纪录：持久化新值，但不再庆祝
	for _, c := range placeRow(e.State(), 2) {
		e.Click(c.X, c.Y)
	}
	tickUntil(e, 200, func(gs *game.GameState) bool { return gs.EliminatedCount == 8 })
	if counts[game.EventNewRecord] != 1 {
		t.Errorf("NewRecord events after more pops: got %d, want 1", counts[game.EventNewRecord])
	}
	if store.HighScore != 8 {
		t.Errorf("stored high score: got %d, want 8", store.HighScore)
	}
}

// TestClick_TopMostOnly 重叠区域只消除最上层的气泡
func TestClick_TopMostOnly(t *testing.T) {
	e := New(config.DefaultGameConfig(), nil, neverSpawn{})
	gs := e.State()
	bottom := systems.Place(gs, components.NewCircle(200, 200, 30, 0, 0, components.ColorCyan))
	top := systems.Place(gs, components.NewCircle(220, 200, 30, 0, 0, components.ColorPink))

	if !e.Click(210, 200) {
		t.Fatal("expected hit")
	}
	if !top.IsFading || bottom.IsFading {
		t.Errorf("top fading=%v bottom fading=%v", top.IsFading, bottom.IsFading)
	}

	// 再次点击同一位置命中下层
	if !e.Click(210, 200) || !bottom.IsFading {
		t.Error("second click should pop the bottom circle")
	}
}

// TestPointerHover 悬停与离开
func TestPointerHover(t *testing.T) {
	e := New(config.DefaultGameConfig(), nil, neverSpawn{})
	c := systems.Place(e.State(), components.NewCircle(400, 300, 25, 0, 0, components.ColorGold))

	e.PointerMove(410, 300)
	if e.Hovered() != c {
		t.Error("pointer inside circle should hover it")
	}
	e.PointerLeave()
	if e.Hovered() != nil {
		t.Error("pointer leave should clear hover")
	}
}

// TestRestart 重新开始构造全新状态
func TestRestart(t *testing.T) {
	store := &game.MemoryScoreStore{HighScore: 3}
	e := New(config.DefaultGameConfig(), store, neverSpawn{})
	for _, c := range placeRow(e.State(), 5) {
		e.Click(c.X, c.Y)
	}
	tickUntil(e, 200, func(gs *game.GameState) bool { return gs.EliminatedCount == 5 })
	e.PointerMove(10, 10)
	old := e.State()

	e.Restart()
	gs := e.State()
	if gs == old {
		t.Fatal("Restart should build a new state")
	}
	if gs.EliminatedCount != 0 || gs.CurrentLevel != 1 || len(gs.Circles) != 0 || len(gs.Particles) != 0 {
		t.Errorf("state not reset: eliminated=%d level=%d", gs.EliminatedCount, gs.CurrentLevel)
	}
	if gs.HighScore != 5 || gs.NewRecordCelebrated {
		t.Errorf("HighScore=%d celebrated=%v", gs.HighScore, gs.NewRecordCelebrated)
	}
	if !gs.Pointer.Valid {
		t.Error("pointer should survive restart")
	}
}

// TestTick_CompletedFreezes 通关后模拟冻结
func TestTick_CompletedFreezes(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Spawn.TotalObjects = 2
	cfg.Spawn.GroupSize = 1
	e := New(cfg, nil, neverSpawn{})
	counts := eventCounter(e, game.EventGameCompleted)

	for level := 1; level <= 2; level++ {
		c := placeRow(e.State(), 1)[0]
		e.Click(c.X, c.Y)
		tickUntil(e, 200, func(gs *game.GameState) bool { return gs.EliminatedCount == level })
	}

	if !e.Finished() {
		t.Fatal("game should be completed")
	}
	if counts[game.EventGameCompleted] != 1 {
		t.Errorf("GameCompleted events: got %d", counts[game.EventGameCompleted])
	}

	ticks := e.State().TickCount
	if e.Tick(dt) {
		t.Error("Tick should report finished")
	}
	if e.State().TickCount != ticks {
		t.Error("simulation should not advance after completion")
	}
	if e.Click(0, 0) {
		t.Error("clicks are ignored after completion")
	}
}

// TestTick_MaxSpeedInvariant 随机模拟中存活气泡速度始终不超过上限
func TestTick_MaxSpeedInvariant(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Spawn.SpawnChance = 0.5
	e := New(cfg, nil, game.NewRandomSource(99))

	for i := 0; i < 3000 && !e.Finished(); i++ {
		e.Tick(dt)
		for _, c := range e.State().Circles {
			if c.IsAlive() && c.Speed() > cfg.Physics.MaxSpeed+1e-9 {
				t.Fatalf("tick %d: speed %v", i, c.Speed())
			}
		}
		if i%7 == 0 {
			for _, c := range e.State().Circles {
				if c.IsAlive() && c.Y < cfg.Canvas.Height {
					e.Click(c.X, c.Y)
					break
				}
			}
		}
	}

	gs := e.State()
	if gs.EliminatedCount+gs.EscapedCount > cfg.Spawn.TotalObjects {
		t.Errorf("eliminated %d + escaped %d exceeds total", gs.EliminatedCount, gs.EscapedCount)
	}
}

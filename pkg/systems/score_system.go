package systems

import (
	"log"

	"github.com/decker502/bubblehunter/pkg/game"
)

// ScoreSystem 连击与最高分
//
// 事件驱动：
//   - Popped: 连击数 +1，重置连击窗口，检查最高分
//   - Miss: 立即清零连击
//
// 连击窗口在 Update 中逐帧递减，归零时清零连击数
type ScoreSystem struct {
	store game.HighScoreStore
}

// NewScoreSystem 创建计分系统
//
// 参数:
//   - store: 最高分持久化协作方，可为 nil（不持久化）
func NewScoreSystem(store game.HighScoreStore) *ScoreSystem {
	return &ScoreSystem{store: store}
}

// EventTypes 实现 game.Handler
func (s *ScoreSystem) EventTypes() []game.EventType {
	return []game.EventType{game.EventPopped, game.EventMiss}
}

// HandleEvent 实现 game.Handler
func (s *ScoreSystem) HandleEvent(gs *game.GameState, ev game.Event) {
	switch ev.Type {
	case game.EventPopped:
		s.onPopped(gs, ev)
	case game.EventMiss:
		gs.ComboCount = 0
		gs.ComboTimer = 0
	}
}

func (s *ScoreSystem) onPopped(gs *game.GameState, ev game.Event) {
	gs.ComboCount++
	gs.ComboTimer = gs.Config.Combo.Window
	if gs.ComboCount >= 2 {
		gs.Publish(game.Event{Type: game.EventCombo, X: ev.X, Y: ev.Y, Count: gs.ComboCount})
	}

	if gs.EliminatedCount <= gs.HighScore {
		return
	}

	gs.HighScore = gs.EliminatedCount
	if s.store != nil {
		s.store.SetHighScore(gs.HighScore)
	}

	if !gs.NewRecordCelebrated {
		gs.NewRecordCelebrated = true
		log.Printf("[ScoreSystem] New record: %d", gs.HighScore)
		gs.Publish(game.Event{Type: game.EventNewRecord, X: ev.X, Y: ev.Y, Count: gs.HighScore})
	}
}

// Update 连击窗口倒计时
func (s *ScoreSystem) Update(gs *game.GameState) {
	if gs.ComboTimer <= 0 {
		return
	}
	gs.ComboTimer--
	if gs.ComboTimer == 0 {
		gs.ComboCount = 0
	}
}

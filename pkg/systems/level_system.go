package systems

import (
	"fmt"
	"log"

	"github.com/decker502/bubblehunter/pkg/game"
)

// LevelSystem 关卡推进状态机
//
// InProgress(level) → InProgress(level+1)：本关配额已全部生成且场上无气泡
// InProgress(totalLevels) → Completed：同样条件，且没有下一关（终态）
type LevelSystem struct{}

// NewLevelSystem 创建关卡系统
func NewLevelSystem() *LevelSystem {
	return &LevelSystem{}
}

// LevelCleared 当前关卡是否满足推进条件
func LevelCleared(gs *game.GameState) bool {
	return gs.SpawnedInLevel == gs.Config.Spawn.GroupSize && len(gs.Circles) == 0
}

// Update 检查并执行关卡推进
// 返回是否发生了状态迁移
func (s *LevelSystem) Update(gs *game.GameState) bool {
	if gs.IsCompleted() || !LevelCleared(gs) {
		return false
	}

	if gs.CurrentLevel < gs.TotalLevels {
		gs.CurrentLevel++
		gs.SpawnedInLevel = 0
		log.Printf("[LevelSystem] Level %d started", gs.CurrentLevel)
		gs.Publish(game.Event{Type: game.EventLevelUp, Level: gs.CurrentLevel})
		return true
	}

	gs.Phase = game.PhaseCompleted
	log.Printf("[LevelSystem] All %d levels cleared, score %d", gs.TotalLevels, gs.EliminatedCount)
	gs.Publish(game.Event{Type: game.EventGameCompleted, Level: gs.CurrentLevel, Count: gs.EliminatedCount})
	return true
}

// LevelLabel 关卡显示文字
func LevelLabel(level int) string {
	return fmt.Sprintf("LEVEL %d", level)
}

package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HighScoreStore 持久化协作方
// 读取失败视为"无记录"返回 0；写入失败只记录日志，不影响游戏循环
type HighScoreStore interface {
	GetHighScore() int
	SetHighScore(score int)
}

// ScoreData 存档数据
type ScoreData struct {
	HighScore   int `yaml:"highScore"`   // 最高消除数
	BestLevel   int `yaml:"bestLevel"`   // 到达过的最高关卡
	GamesPlayed int `yaml:"gamesPlayed"` // 已开始的局数
}

// 存储路径常量（固定逻辑键）
const (
	scoreObject   = "bubblehunter"
	scoreProperty = "highscore"
)

// propStore gdata.Manager 中用到的方法子集
type propStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// ScoreManager 最高分管理器
//
// 职责：
//   - 通过 gdata 读写最高分和统计数据
//   - gdataManager 为 nil 时进入降级模式（仅内存）
type ScoreManager struct {
	store propStore
	data  ScoreData
}

// NewScoreManager 创建最高分管理器并尝试加载存档
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewScoreManager(gdataManager *gdata.Manager) *ScoreManager {
	if gdataManager == nil {
		return newScoreManager(nil)
	}
	return newScoreManager(gdataManager)
}

func newScoreManager(store propStore) *ScoreManager {
	sm := &ScoreManager{store: store}
	if err := sm.Load(); err != nil {
		log.Printf("[ScoreManager] Warning: Failed to load score data: %v (high score = 0)", err)
	}
	return sm
}

// Load 从 gdata 加载存档
// 失败时数据重置为零值并返回错误
func (sm *ScoreManager) Load() error {
	sm.data = ScoreData{}

	if sm.store == nil {
		return nil
	}
	if !sm.store.ObjectPropExists(scoreObject, scoreProperty) {
		return nil
	}

	raw, err := sm.store.LoadObjectProp(scoreObject, scoreProperty)
	if err != nil {
		return fmt.Errorf("failed to load score data: %w", err)
	}

	var loaded ScoreData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal score data: %w", err)
	}
	if loaded.HighScore < 0 {
		loaded.HighScore = 0
	}

	sm.data = loaded
	log.Printf("[ScoreManager] Loaded high score %d", sm.data.HighScore)
	return nil
}

// Save 保存存档
// 降级模式下直接返回 nil
func (sm *ScoreManager) Save() error {
	if sm.store == nil {
		return nil
	}

	raw, err := yaml.Marshal(&sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal score data: %w", err)
	}
	if err := sm.store.SaveObjectProp(scoreObject, scoreProperty, raw); err != nil {
		return fmt.Errorf("failed to save score data: %w", err)
	}
	return nil
}

// GetHighScore 实现 HighScoreStore
func (sm *ScoreManager) GetHighScore() int {
	return sm.data.HighScore
}

// SetHighScore 实现 HighScoreStore
// 只接受更高的分数
func (sm *ScoreManager) SetHighScore(score int) {
	if score <= sm.data.HighScore {
		return
	}
	sm.data.HighScore = score
	if err := sm.Save(); err != nil {
		log.Printf("[ScoreManager] Warning: %v", err)
	}
}

// RecordLevel 记录到达的关卡
func (sm *ScoreManager) RecordLevel(level int) {
	if level <= sm.data.BestLevel {
		return
	}
	sm.data.BestLevel = level
	if err := sm.Save(); err != nil {
		log.Printf("[ScoreManager] Warning: %v", err)
	}
}

// RecordGameStart 开局计数
func (sm *ScoreManager) RecordGameStart() {
	sm.data.GamesPlayed++
	if err := sm.Save(); err != nil {
		log.Printf("[ScoreManager] Warning: %v", err)
	}
}

// Data 返回存档副本
func (sm *ScoreManager) Data() ScoreData {
	return sm.data
}

// MemoryScoreStore 内存最高分存储，用于测试和无存储环境
type MemoryScoreStore struct {
	HighScore int
	SetCalls  []int
}

// GetHighScore 实现 HighScoreStore
func (m *MemoryScoreStore) GetHighScore() int {
	return m.HighScore
}

// SetHighScore 实现 HighScoreStore
func (m *MemoryScoreStore) SetHighScore(score int) {
	m.SetCalls = append(m.SetCalls, score)
	m.HighScore = score
}

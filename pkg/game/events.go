package game

import "image/color"

// EventType 游戏事件类型
type EventType int

const (
	// EventPopped 气泡淡出完成、计入消除数
	// 触发：LifecycleSystem | 消费：ScoreSystem, EffectsSystem, 音频
	EventPopped EventType = iota

	// EventMiss 点击未命中任何气泡
	// 触发：Engine.Click | 消费：ScoreSystem（重置连击）
	EventMiss

	// EventCombo 连击数提升（>= 2）
	// 触发：ScoreSystem | 消费：音频
	EventCombo

	// EventNewRecord 本局首次超过最高分
	// 触发：ScoreSystem | 消费：EffectsSystem, 音频
	EventNewRecord

	// EventLevelUp 进入下一关
	// 触发：LevelSystem | 消费：EffectsSystem, 音频, UI
	EventLevelUp

	// EventGameCompleted 全部关卡完成
	// 触发：LevelSystem | 消费：EffectsSystem, UI
	EventGameCompleted

	// EventEscaped 气泡从顶部飞出（不计分）
	// 触发：PhysicsSystem
	EventEscaped
)

// String 返回事件名称（日志用）
func (t EventType) String() string {
	switch t {
	case EventPopped:
		return "Popped"
	case EventMiss:
		return "Miss"
	case EventCombo:
		return "Combo"
	case EventNewRecord:
		return "NewRecord"
	case EventLevelUp:
		return "LevelUp"
	case EventGameCompleted:
		return "GameCompleted"
	case EventEscaped:
		return "Escaped"
	default:
		return "Unknown"
	}
}

// Event 游戏事件
// 各字段按事件类型选择性填充
type Event struct {
	Type EventType

	X, Y   float64    // 发生位置（Popped / Escaped / Miss）
	Radius float64    // 气泡半径（Popped）
	Color  color.RGBA // 气泡颜色（Popped）

	Count int // Popped: 当前消除数；Combo: 连击数；NewRecord: 新纪录分数
	Level int // LevelUp: 新关卡；GameCompleted: 最终关卡
}

// Handler 事件处理者
type Handler interface {
	// HandleEvent 处理单个事件，在分发阶段同步调用
	HandleEvent(gs *GameState, ev Event)

	// EventTypes 返回关注的事件类型，注册时使用
	EventTypes() []EventType
}

// HandlerFunc 函数适配器，便于外部协作方（音频、UI）订阅
type HandlerFunc struct {
	Types []EventType
	Fn    func(gs *GameState, ev Event)
}

// HandleEvent 实现 Handler
func (h HandlerFunc) HandleEvent(gs *GameState, ev Event) {
	h.Fn(gs, ev)
}

// EventTypes 实现 Handler
func (h HandlerFunc) EventTypes() []EventType {
	return h.Types
}

// EventQueue 帧内事件队列（FIFO）
type EventQueue struct {
	pending []Event
}

// Push 追加事件
func (q *EventQueue) Push(ev Event) {
	q.pending = append(q.pending, ev)
}

// Len 返回待处理事件数
func (q *EventQueue) Len() int {
	return len(q.pending)
}

// Consume 取出全部待处理事件并清空队列
func (q *EventQueue) Consume() []Event {
	if len(q.pending) == 0 {
		return nil
	}
	events := q.pending
	q.pending = nil
	return events
}

// Router 事件路由
//
// 架构：
//   - 单线程同步分发
//   - 同一事件类型可注册多个处理者，按注册顺序调用
//   - 处理者可以在处理过程中推送新事件，DispatchAll 会继续处理直到队列为空
type Router struct {
	handlers map[EventType][]Handler
}

// NewRouter 创建事件路由
func NewRouter() *Router {
	return &Router{handlers: make(map[EventType][]Handler)}
}

// Register 按处理者声明的类型注册
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// HandlerCount 返回某类型的处理者数量
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}

// DispatchAll 分发 GameState 队列中的全部事件
// 返回本次分发的事件数
func (r *Router) DispatchAll(gs *GameState) int {
	dispatched := 0
	for gs.Events.Len() > 0 {
		for _, ev := range gs.Events.Consume() {
			for _, h := range r.handlers[ev.Type] {
				h.HandleEvent(gs, ev)
			}
			dispatched++
		}
	}
	return dispatched
}

package terminal

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/bubblehunter/pkg/engine"
)

// FrameInterval 终端前端的帧间隔（约 60 FPS）
const FrameInterval = 16 * time.Millisecond

// Runner 终端主循环
//
// 职责：
//   - 把 tcell 鼠标/键盘事件翻译为引擎的指针和点击调用
//   - 按固定间隔推进引擎并重绘
type Runner struct {
	screen   tcell.Screen
	engine   *engine.Engine
	renderer *Renderer

	// 鼠标左键上一次的状态，只在按下沿触发点击
	buttonDown bool
	// OnRestart 重新开始后的回调（统计开局数等），可为 nil
	OnRestart func()
}

// NewRunner 创建终端主循环
func NewRunner(screen tcell.Screen, eng *engine.Engine, renderer *Renderer) *Runner {
	return &Runner{
		screen:   screen,
		engine:   eng,
		renderer: renderer,
	}
}

// HandleEvent 处理一个 tcell 事件
//
// 返回：
//   - bool: false 表示用户请求退出
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'r', 'R':
				r.restart()
			}
		}

	case *tcell.EventMouse:
		r.handleMouse(ev)

	case *tcell.EventResize:
		r.screen.Sync()
	}
	return true
}

func (r *Runner) handleMouse(ev *tcell.EventMouse) {
	cfg := r.engine.Config()
	col, row := ev.Position()
	x, y, inside := r.renderer.CellToCanvas(col, row, cfg.Canvas.Width, cfg.Canvas.Height)
	if inside {
		r.engine.PointerMove(x, y)
	} else {
		r.engine.PointerLeave()
	}

	pressed := ev.Buttons()&tcell.Button1 != 0
	clicked := pressed && !r.buttonDown
	r.buttonDown = pressed
	if !clicked || !inside {
		return
	}

	if r.engine.Finished() {
		r.restart()
		return
	}
	r.engine.Click(x, y)
}

func (r *Runner) restart() {
	r.engine.Restart()
	if r.OnRestart != nil {
		r.OnRestart()
	}
}

// Step 推进一帧并重绘
func (r *Runner) Step() {
	r.engine.Tick(FrameInterval.Seconds())
	r.renderer.Draw(r.engine.State())
}

// Run 运行主循环，直到用户退出或 ctx 取消
// 调用方负责 screen.Init / screen.Fini
func (r *Runner) Run(ctx context.Context) error {
	r.screen.EnableMouse()
	defer r.screen.DisableMouse()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				// 屏幕已 Fini
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !r.HandleEvent(ev) {
				log.Printf("[Terminal] Quit requested")
				return nil
			}

		case <-ticker.C:
			r.Step()
		}
	}
}

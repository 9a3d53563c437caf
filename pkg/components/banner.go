package components

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Banner 屏幕中央的横幅消息（关卡提升、全部通关）
//
// 动画由 gween 驱动：缩放先弹出，透明度随后淡出。
// Persistent 横幅（通关）淡入后保持显示，直到重新开始
type Banner struct {
	Text       string
	Subtext    string
	Alpha      float64
	Scale      float64
	Persistent bool
	Done       bool

	alpha *gween.Tween
	scale *gween.Tween
}

// NewBanner 创建横幅
//
// 参数：
//   - text: 主标题
//   - subtext: 副标题（可为空）
//   - duration: 动画总时长（秒）
//   - persistent: 是否常驻
func NewBanner(text, subtext string, duration float64, persistent bool) *Banner {
	b := &Banner{
		Text:       text,
		Subtext:    subtext,
		Persistent: persistent,
		Scale:      0.6,
	}

	popIn := float32(duration * 0.3)
	b.scale = gween.New(0.6, 1, popIn, ease.OutCubic)

	if persistent {
		b.Alpha = 0
		b.alpha = gween.New(0, 1, popIn, ease.OutCubic)
	} else {
		b.Alpha = 1
		b.alpha = gween.New(1, 0, float32(duration), ease.InOutCubic)
	}
	return b
}

// Update 推进动画
// dt 为秒
func (b *Banner) Update(dt float64) {
	if b.Done {
		return
	}

	scale, _ := b.scale.Update(float32(dt))
	b.Scale = float64(scale)

	alpha, finished := b.alpha.Update(float32(dt))
	b.Alpha = float64(alpha)

	if finished && !b.Persistent {
		b.Done = true
	}
}

package systems

import (
	"image/color"

	"github.com/decker502/bubblehunter/pkg/components"
	"github.com/decker502/bubblehunter/pkg/config"
	"github.com/decker502/bubblehunter/pkg/game"
)

// fixedRand 循环返回固定序列
type fixedRand struct {
	values []float64
	next   int
}

func (r *fixedRand) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func constRand(v float64) *fixedRand {
	return &fixedRand{values: []float64{v}}
}

func newTestState() *game.GameState {
	return game.NewGameState(config.DefaultGameConfig(), 0)
}

func newTestCircle(x, y, radius, vx, vy float64) *components.Circle {
	return components.NewCircle(x, y, radius, vx, vy, color.RGBA{R: 200, G: 80, B: 80, A: 255})
}

// kineticEnergy 以半径为质量
func kineticEnergy(c *components.Circle) float64 {
	return 0.5 * c.Mass() * (c.VelocityX*c.VelocityX + c.VelocityY*c.VelocityY)
}

func countEvents(events []game.Event, t game.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

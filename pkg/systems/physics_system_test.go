package systems

import (
	"math"
	"testing"

	"github.com/decker502/bubblehunter/pkg/config"
	"github.com/decker502/bubblehunter/pkg/game"
)

// TestResolvePair_HeadOn 等质量正面碰撞：速度交换并按弹性系数衰减
func TestResolvePair_HeadOn(t *testing.T) {
	p := config.DefaultGameConfig().Physics
	a := newTestCircle(100, 100, 10, 1, 0)
	b := newTestCircle(115, 100, 10, -1, 0)

	if !ResolvePair(a, b, &p) {
		t.Fatal("overlapping pair should report collision")
	}

	if math.Abs(a.VelocityX-(-0.9)) > 1e-9 || math.Abs(b.VelocityX-0.9) > 1e-9 {
		t.Errorf("velocities: got a=%v b=%v, want -0.9 / 0.9", a.VelocityX, b.VelocityX)
	}
	if math.Abs(a.VelocityY) > 1e-9 || math.Abs(b.VelocityY) > 1e-9 {
		t.Errorf("tangential velocity should stay 0: a=%v b=%v", a.VelocityY, b.VelocityY)
	}
}

// TestResolvePair_Depenetration 重叠的气泡对修正后距离严格增大
func TestResolvePair_Depenetration(t *testing.T) {
	p := config.DefaultGameConfig().Physics
	rng := game.NewRandomSource(42)

	for i := 0; i < 200; i++ {
		a := newTestCircle(400, 300, game.RandRange(rng, 15, 35), game.RandRange(rng, -5, 5), game.RandRange(rng, -5, 5))
		b := newTestCircle(400+game.RandRange(rng, -30, 30), 300+game.RandRange(rng, -30, 30),
			game.RandRange(rng, 15, 35), game.RandRange(rng, -5, 5), game.RandRange(rng, -5, 5))

		before := math.Hypot(b.X-a.X, b.Y-a.Y)
		if before >= a.Radius+b.Radius || before == 0 {
			continue
		}
		ResolvePair(a, b, &p)
		after := math.Hypot(b.X-a.X, b.Y-a.Y)
		if after <= before {
			t.Fatalf("case %d: distance did not increase: %v -> %v", i, before, after)
		}
	}
}

// TestResolvePair_EnergyNonIncreasing 气泡对动能不增加
func TestResolvePair_EnergyNonIncreasing(t *testing.T) {
	p := config.DefaultGameConfig().Physics
	rng := game.NewRandomSource(7)

	for i := 0; i < 500; i++ {
		a := newTestCircle(0, 0, game.RandRange(rng, 15, 35), game.RandRange(rng, -8, 8), game.RandRange(rng, -8, 8))
		b := newTestCircle(game.RandRange(rng, -40, 40), game.RandRange(rng, -40, 40),
			game.RandRange(rng, 15, 35), game.RandRange(rng, -8, 8), game.RandRange(rng, -8, 8))

		before := kineticEnergy(a) + kineticEnergy(b)
		ResolvePair(a, b, &p)
		after := kineticEnergy(a) + kineticEnergy(b)
		if after > before+1e-9 {
			t.Fatalf("case %d: kinetic energy grew %v -> %v", i, before, after)
		}
	}
}

// TestResolvePair_Cases 边界情况
func TestResolvePair_Cases(t *testing.T) {
	p := config.DefaultGameConfig().Physics

	t.Run("不重叠不处理", func(t *testing.T) {
		a := newTestCircle(0, 0, 10, 1, 0)
		b := newTestCircle(20, 0, 10, -1, 0)
		if ResolvePair(a, b, &p) {
			t.Error("touching circles should not collide")
		}
		if a.VelocityX != 1 || b.X != 20 {
			t.Error("state should be unchanged")
		}
	})

	t.Run("圆心重合只位移", func(t *testing.T) {
		a := newTestCircle(50, 50, 10, 1, 2)
		b := newTestCircle(50, 50, 10, 3, 4)
		if !ResolvePair(a, b, &p) {
			t.Fatal("coincident circles overlap")
		}
		if b.X != 50+p.ZeroDistanceNudge || b.Y != 50 {
			t.Errorf("b position: got (%v, %v)", b.X, b.Y)
		}
		if a.VelocityX != 1 || b.VelocityX != 3 {
			t.Error("velocity resolution should be skipped")
		}
	})

	t.Run("正在分离只做位置修正", func(t *testing.T) {
		a := newTestCircle(0, 0, 10, -1, 0)
		b := newTestCircle(15, 0, 10, 1, 0)
		ResolvePair(a, b, &p)
		if a.VelocityX != -1 || b.VelocityX != 1 {
			t.Errorf("separating pair velocities changed: a=%v b=%v", a.VelocityX, b.VelocityX)
		}
		if a.X >= 0 || b.X <= 15 {
			t.Errorf("positions should still be corrected: a=%v b=%v", a.X, b.X)
		}
	})
}

// TestPhysicsUpdate_Boundaries 侧墙、地面与顶部飞出
func TestPhysicsUpdate_Boundaries(t *testing.T) {
	tests := []struct {
		name           string
		x, y, vx, vy   float64
		wantVX, wantVY float64
		wantEscaped    bool
	}{
		{"左墙反弹", 5, 300, -2, 0, 2, 0, false},
		{"右墙反弹", 795, 300, 2, 0, -2, 0, false},
		{"离开左墙不再翻转", 5, 300, 2, 0, 2, 0, false},
		{"地面下落反弹", 400, 590, 0, 5, 0, -4, false},
		{"地面下方上升不受影响", 400, 650, 0, -2, 0, -2, false},
		{"顶部飞出", 400, -19.5, 0, -1, 0, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := newTestState()
			c := newTestCircle(tt.x, tt.y, 20, tt.vx, tt.vy)
			gs.Circles = append(gs.Circles, c)

			NewPhysicsSystem().Update(gs)

			if math.Abs(c.VelocityX-tt.wantVX) > 1e-9 || math.Abs(c.VelocityY-tt.wantVY) > 1e-9 {
				t.Errorf("velocity: got (%v, %v), want (%v, %v)", c.VelocityX, c.VelocityY, tt.wantVX, tt.wantVY)
			}
			if c.MarkedForDeletion != tt.wantEscaped {
				t.Errorf("MarkedForDeletion: got %v, want %v", c.MarkedForDeletion, tt.wantEscaped)
			}
			if tt.wantEscaped {
				if gs.EscapedCount != 1 || gs.EliminatedCount != 0 {
					t.Errorf("escaped=%d eliminated=%d", gs.EscapedCount, gs.EliminatedCount)
				}
				if countEvents(gs.Events.Consume(), game.EventEscaped) != 1 {
					t.Error("expected one Escaped event")
				}
			}
		})
	}
}

// TestPhysicsUpdate_SkipsFading 淡出中的气泡不移动、不碰撞
func TestPhysicsUpdate_SkipsFading(t *testing.T) {
	gs := newTestState()
	fading := newTestCircle(300, 300, 20, 0, 0)
	fading.StartFadeOut()
	other := newTestCircle(310, 300, 20, -1, 0)
	gs.Circles = append(gs.Circles, fading, other)

	if n := NewPhysicsSystem().Update(gs); n != 0 {
		t.Errorf("collisions: got %d, want 0", n)
	}
	if fading.X != 300 || fading.Y != 300 {
		t.Errorf("fading circle moved to (%v, %v)", fading.X, fading.Y)
	}
	if other.X != 309 {
		t.Errorf("other circle X: got %v, want 309", other.X)
	}
}

// TestClampSpeed 速度上限
func TestClampSpeed(t *testing.T) {
	c := newTestCircle(0, 0, 10, 30, 40)
	ClampSpeed(c, 12)
	if math.Abs(c.Speed()-12) > 1e-9 {
		t.Errorf("Speed(): got %v, want 12", c.Speed())
	}
	if math.Abs(c.VelocityX/c.VelocityY-0.75) > 1e-9 {
		t.Error("direction should be preserved")
	}

	slow := newTestCircle(0, 0, 10, 1, 1)
	ClampSpeed(slow, 12)
	if slow.VelocityX != 1 || slow.VelocityY != 1 {
		t.Error("slow circle should be unchanged")
	}
}

// TestPhysics_MaxSpeedInvariant 长时间模拟中每帧所有存活气泡速度不超过上限
func TestPhysics_MaxSpeedInvariant(t *testing.T) {
	gs := newTestState()
	gs.Config.Spawn.SpawnChance = 1
	gs.Config.Spawn.GroupSize = 30
	gs.Config.Spawn.TotalObjects = 30
	rng := game.NewRandomSource(2024)

	spawn := NewSpawnSystem(rng)
	physics := NewPhysicsSystem()
	lifecycle := NewLifecycleSystem()
	maxSpeed := gs.Config.Physics.MaxSpeed

	for tick := 0; tick < 1500; tick++ {
		spawn.Update(gs)
		// 注入能量，模拟多体同时碰撞
		if tick%50 == 0 {
			for _, c := range gs.Circles {
				c.VelocityX *= 3
				c.VelocityY *= 3
			}
		}
		physics.Update(gs)
		lifecycle.Update(gs)
		gs.Events.Consume()

		for _, c := range gs.Circles {
			if c.IsAlive() && c.Speed() > maxSpeed+1e-9 {
				t.Fatalf("tick %d: speed %v exceeds %v", tick, c.Speed(), maxSpeed)
			}
		}
	}
}

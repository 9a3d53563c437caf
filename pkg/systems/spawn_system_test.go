package systems

import (
	"math"
	"testing"
)

// TestSpawnSystem_Gate 概率未命中时不生成
func TestSpawnSystem_Gate(t *testing.T) {
	gs := newTestState()
	s := NewSpawnSystem(constRand(0.99))

	for i := 0; i < 100; i++ {
		if c := s.Update(gs); c != nil {
			t.Fatal("spawn should be gated")
		}
	}
	if gs.SpawnedInLevel != 0 || len(gs.Circles) != 0 {
		t.Errorf("spawned=%d circles=%d", gs.SpawnedInLevel, len(gs.Circles))
	}
}

// TestSpawnSystem_Placement 生成位置与速度
func TestSpawnSystem_Placement(t *testing.T) {
	gs := newTestState()
	gs.CurrentLevel = 3
	s := NewSpawnSystem(constRand(0))

	c := s.Update(gs)
	if c == nil {
		t.Fatal("expected a circle")
	}

	cfg := gs.Config
	if c.Radius != cfg.Spawn.MinRadius {
		t.Errorf("Radius: got %v, want %v", c.Radius, cfg.Spawn.MinRadius)
	}
	if c.X != c.Radius {
		t.Errorf("X: got %v, want %v", c.X, c.Radius)
	}
	if c.Y != cfg.Canvas.Height+c.Radius {
		t.Errorf("Y: got %v, want below canvas", c.Y)
	}
	wantVY := -(cfg.Spawn.BaseSpeed + 3*cfg.Spawn.LevelSpeedFactor)
	if math.Abs(c.VelocityY-wantVY) > 1e-9 {
		t.Errorf("VelocityY: got %v, want %v", c.VelocityY, wantVY)
	}
	if c.VelocityX != -cfg.Spawn.LateralJitter {
		t.Errorf("VelocityX: got %v, want %v", c.VelocityX, -cfg.Spawn.LateralJitter)
	}
	if gs.SpawnedInLevel != 1 {
		t.Errorf("SpawnedInLevel: got %d, want 1", gs.SpawnedInLevel)
	}
}

// TestSpawnSystem_OverlapDeferred 与存活气泡重叠时放弃，不计配额
func TestSpawnSystem_OverlapDeferred(t *testing.T) {
	gs := newTestState()
	s := NewSpawnSystem(constRand(0))

	if s.Update(gs) == nil {
		t.Fatal("first spawn should succeed")
	}
	if c := s.Update(gs); c != nil {
		t.Fatal("second spawn at same spot should be rejected")
	}
	if gs.SpawnedInLevel != 1 || len(gs.Circles) != 1 {
		t.Errorf("spawned=%d circles=%d, want 1/1", gs.SpawnedInLevel, len(gs.Circles))
	}

	// 淡出中的气泡不阻挡生成
	gs.Circles[0].StartFadeOut()
	if s.Update(gs) == nil {
		t.Error("fading circle should not block spawning")
	}
}

// TestSpawnSystem_Quota 配额用完后不再生成
func TestSpawnSystem_Quota(t *testing.T) {
	gs := newTestState()
	gs.SpawnedInLevel = gs.Config.Spawn.GroupSize
	if NewSpawnSystem(constRand(0)).Update(gs) != nil {
		t.Error("quota exhausted, spawn should stop")
	}
}

// TestSpawnSystem_RadiusRange 随机半径与横坐标在范围内
func TestSpawnSystem_RadiusRange(t *testing.T) {
	gs := newTestState()
	gs.Config.Spawn.GroupSize = 1000
	s := NewSpawnSystem(&fixedRand{values: []float64{0.01, 0.37, 0.92, 0.55, 0.18, 0.73, 0.4}})

	for i := 0; i < 200; i++ {
		c := s.Update(gs)
		if c == nil {
			continue
		}
		cfg := gs.Config
		if c.Radius < cfg.Spawn.MinRadius || c.Radius > cfg.Spawn.MaxRadius {
			t.Fatalf("radius %v out of range", c.Radius)
		}
		if c.X-c.Radius < 0 || c.X+c.Radius > cfg.Canvas.Width {
			t.Fatalf("x %v with radius %v outside canvas", c.X, c.Radius)
		}
		gs.Circles = gs.Circles[:0]
	}
}

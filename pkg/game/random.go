package game

import (
	"math/rand/v2"
	"time"
)

// RandomSource 随机数来源
// 生成判定、初速度抖动、色相选择、粒子方向都通过它取值，便于测试时注入固定序列
type RandomSource interface {
	// Float64 返回 [0, 1) 的随机数
	Float64() float64
}

// NewRandomSource 创建随机数来源
// seed 为 0 时使用当前时间（不可复现）
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandRange 返回 [min, max) 区间内的随机数
func RandRange(rng RandomSource, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

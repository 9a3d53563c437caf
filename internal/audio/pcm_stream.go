package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// PCMStream 16 位小端立体声 PCM 数据
// 实现 io.ReadSeeker 与 Length()，可直接交给 audio.Context.NewPlayer
type PCMStream struct {
	data       []byte
	sampleRate int64
	offset     int64
}

// bufferFrames 每次从 beep 拉取的帧数
const bufferFrames = 512

// RenderPCM 将有限长度的 beep 流完整渲染到内存
//
// Parameters:
//   - s: 有限长度的音频流（无限流会一直渲染，调用方需用 beep.Take 截断）
//   - sampleRate: 采样率（Hz）
func RenderPCM(s beep.Streamer, sampleRate int64) *PCMStream {
	buf := make([][2]float64, bufferFrames)
	var data []byte

	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			data = appendSample(data, buf[i][0])
			data = appendSample(data, buf[i][1])
		}
		if !ok || n == 0 {
			break
		}
	}

	return &PCMStream{data: data, sampleRate: sampleRate}
}

func appendSample(data []byte, v float64) []byte {
	v = math.Max(-1, math.Min(1, v))
	pcm := int16(v * math.MaxInt16)
	return append(data, byte(pcm), byte(pcm>>8))
}

// Read implements io.Reader.
func (p *PCMStream) Read(b []byte) (n int, err error) {
	if p.offset >= int64(len(p.data)) {
		return 0, io.EOF
	}
	n = copy(b, p.data[p.offset:])
	p.offset += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (p *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = p.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(p.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	p.offset = newOffset
	return newOffset, nil
}

// Length returns the total length in bytes.
func (p *PCMStream) Length() int64 {
	return int64(len(p.data))
}

// Bytes 返回原始 PCM 数据
func (p *PCMStream) Bytes() []byte {
	return p.data
}

// SampleRate returns the sample rate in Hz.
func (p *PCMStream) SampleRate() int64 {
	return p.sampleRate
}

// Duration 播放时长（秒）
func (p *PCMStream) Duration() float64 {
	if p.sampleRate == 0 {
		return 0
	}
	// 每帧 2 声道 × 2 字节
	return float64(len(p.data)/4) / float64(p.sampleRate)
}

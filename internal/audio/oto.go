package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/san-kum/pulsejet/internal/dynamo"
)

// oto allows a single context per process, so it is shared across opens.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

func otoContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx, otoRate = ctx, sampleRate
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoRate != sampleRate {
		return nil, dynamo.Wrap("oto", dynamo.ErrAudioUnavailable)
	}
	return otoCtx, nil
}

// OtoHost plays through oto, which needs no cgo on most platforms.
type OtoHost struct{}

func (OtoHost) Open(sampleRate, frames int, render RenderFunc) (Stream, error) {
	ctx, err := otoContext(sampleRate)
	if err != nil {
		return nil, dynamo.Wrap("oto", err)
	}
	r := &otoReader{render: render, buf: make([]float32, frames)}
	player := ctx.NewPlayer(r)
	player.Play()
	return &otoStream{player: player}, nil
}

// otoReader adapts a RenderFunc to the io.Reader oto pulls from.
type otoReader struct {
	render RenderFunc
	buf    []float32
}

func (r *otoReader) Read(p []byte) (int, error) {
	n := len(p) / 4
	if n == 0 {
		return 0, nil
	}
	if cap(r.buf) < n {
		r.buf = make([]float32, n)
	}
	samples := r.buf[:n]
	r.render(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

type otoStream struct {
	player *oto.Player
	once   sync.Once
	err    error
}

func (s *otoStream) Close() error {
	s.once.Do(func() {
		s.player.Pause()
		s.err = s.player.Close()
	})
	return s.err
}

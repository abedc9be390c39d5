package audio

import (
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
)

// Schedule yields the parameters in effect at a simulated time.
type Schedule func(simTime float64) params.Params

// Constant holds p for the whole render.
func Constant(p params.Params) Schedule {
	return func(float64) params.Params { return p }
}

// Sweep interpolates the engine controls linearly from a to b over d.
func Sweep(a, b params.Params, d time.Duration) Schedule {
	span := d.Seconds()
	return func(t float64) params.Params {
		k := 1.0
		if span > 0 {
			k = dynamo.Clamp01(t / span)
		}
		p := a
		p.TubeLength = a.TubeLength + (b.TubeLength-a.TubeLength)*k
		p.PulseFrequency = a.PulseFrequency + (b.PulseFrequency-a.PulseFrequency)*k
		p.FuelFlow = a.FuelFlow + (b.FuelFlow-a.FuelFlow)*k
		return p
	}
}

// Session renders an engine offline as a beep.Streamer. Engine updates are
// applied once per frame interval, the same cadence the live driver uses,
// so exported audio matches what the window would play.
type Session struct {
	engine   *Engine
	host     *OfflineHost
	schedule Schedule

	frameLen  int // samples per frame
	untilNext int
	frame     int
	mono      []float32
	err       error
}

// NewSession builds a running engine on an offline host. fps sets the
// update cadence.
func NewSession(cfg Config, fps int, schedule Schedule, log zerolog.Logger) (*Session, error) {
	if fps <= 0 {
		fps = 60
	}
	host := &OfflineHost{}
	e := NewEngine(host, cfg, log)

	first := schedule(0)
	first.Muted = false
	e.Init(first)
	if e.State() != Running {
		return nil, dynamo.Wrap("session", dynamo.ErrAudioUnavailable)
	}

	return &Session{
		engine:   e,
		host:     host,
		schedule: schedule,
		frameLen: max(1, e.cfg.SampleRate/fps),
		mono:     make([]float32, e.cfg.BufferFrames),
	}, nil
}

func (s *Session) SampleRate() beep.SampleRate {
	return beep.SampleRate(s.engine.cfg.SampleRate)
}

func (s *Session) Engine() *Engine { return s.engine }

// SimTime is the simulated time of the current frame.
func (s *Session) SimTime() float64 {
	return float64(s.frame*s.frameLen) / float64(s.engine.cfg.SampleRate)
}

// Stream implements beep.Streamer. It never runs out.
func (s *Session) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	done := 0
	for done < len(samples) {
		if s.untilNext == 0 {
			p := s.schedule(s.SimTime())
			p.Muted = false
			s.engine.Update(s.SimTime(), p)
			s.untilNext = s.frameLen
			s.frame++
		}
		n := min(len(samples)-done, s.untilNext, len(s.mono))
		buf := s.mono[:n]
		if !s.host.Pull(buf) {
			s.err = dynamo.ErrNotConnected
			return done, done > 0
		}
		for i, v := range buf {
			samples[done+i][0] = float64(v)
			samples[done+i][1] = float64(v)
		}
		done += n
		s.untilNext -= n
	}
	return done, true
}

func (s *Session) Err() error { return s.err }

func (s *Session) Close() error { return s.engine.Close() }

// RenderMono pulls n samples into a fresh slice, for analysis.
func (s *Session) RenderMono(n int) []float64 {
	out := make([]float64, n)
	chunk := make([][2]float64, 512)
	for i := 0; i < n; {
		m := min(len(chunk), n-i)
		got, ok := s.Stream(chunk[:m])
		for j := 0; j < got; j++ {
			out[i+j] = chunk[j][0]
		}
		i += got
		if !ok {
			return out[:i]
		}
	}
	return out
}

// WriteWAV encodes d of the session as 16-bit stereo WAV. gainDB is applied
// on top of the engine's own master level.
func WriteWAV(w io.WriteSeeker, s *Session, d time.Duration, gainDB float64) error {
	sr := s.SampleRate()
	var src beep.Streamer = beep.Take(sr.N(d), s)
	if gainDB != 0 && !math.IsNaN(gainDB) {
		src = &effects.Volume{Streamer: src, Base: 10, Volume: gainDB / 20}
	}
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, src, format); err != nil {
		return dynamo.Wrap("wav", err)
	}
	return s.Err()
}

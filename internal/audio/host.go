package audio

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/san-kum/pulsejet/internal/dynamo"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// RenderFunc fills a block of mono samples. Hosts call it from their audio
// thread.
type RenderFunc func(out []float32)

// Stream is an open output.
type Stream interface {
	Close() error
}

// Host opens an output stream pulling from render.
type Host interface {
	Open(sampleRate, frames int, render RenderFunc) (Stream, error)
}

// Backend names accepted by NewHost.
const (
	BackendPortAudio = "portaudio"
	BackendOto       = "oto"
	BackendOffline   = "offline"
	BackendNone      = "none"
)

func Backends() []string {
	return []string{BackendPortAudio, BackendOto, BackendOffline, BackendNone}
}

// NewHost returns the host for a backend name.
func NewHost(name string) (Host, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendPortAudio, "":
		return &PortAudioHost{}, nil
	case BackendOto:
		return &OtoHost{}, nil
	case BackendOffline:
		return &OfflineHost{}, nil
	case BackendNone:
		return UnavailableHost{}, nil
	}
	return nil, dynamo.Wrap(name, dynamo.ErrUnknownBackend)
}

// unavailable tags a backend failure as ErrAudioUnavailable and keeps the
// backend's own error in the chain.
func unavailable(component string, cause error) error {
	return dynamo.Wrap(component, fmt.Errorf("%w: %w", dynamo.ErrAudioUnavailable, cause))
}

// UnavailableHost never opens; it stands in for a machine with no output
// device.
type UnavailableHost struct{}

func (UnavailableHost) Open(int, int, RenderFunc) (Stream, error) {
	return nil, dynamo.ErrAudioUnavailable
}

// OfflineHost opens a stream that renders only when pulled. It drives the
// graph faster than real time for file export and tests.
type OfflineHost struct {
	mu     sync.Mutex
	render RenderFunc
	opened int
	closed int
}

func (h *OfflineHost) Open(_, _ int, render RenderFunc) (Stream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.render = render
	h.opened++
	return offlineStream{h}, nil
}

// Pull renders len(out) samples. It reports false, leaving out untouched,
// when no stream is open.
func (h *OfflineHost) Pull(out []float32) bool {
	h.mu.Lock()
	render := h.render
	h.mu.Unlock()
	if render == nil {
		return false
	}
	render(out)
	return true
}

// Opens and Closes count stream lifecycle calls.
func (h *OfflineHost) Opens() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opened
}

func (h *OfflineHost) Closes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

type offlineStream struct{ h *OfflineHost }

func (s offlineStream) Close() error {
	s.h.mu.Lock()
	defer s.h.mu.Unlock()
	s.h.render = nil
	s.h.closed++
	return nil
}

func newRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

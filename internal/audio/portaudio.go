package audio

import (
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/pulsejet/internal/dynamo"
)

// PortAudioHost plays through the default PortAudio output device in
// stereo, duplicating the mono render to both channels.
type PortAudioHost struct{}

func (PortAudioHost) Open(sampleRate, frames int, render RenderFunc) (Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, unavailable("portaudio", err)
	}

	mono := make([]float32, frames)
	cb := func(out [][]float32) {
		n := len(out[0])
		if cap(mono) < n {
			mono = make([]float32, n)
		}
		buf := mono[:n]
		render(buf)
		for ch := range out {
			copy(out[ch], buf)
		}
	}

	// Output only: duplex streams often fail on Linux when devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(sampleRate), frames, cb)
	if err != nil {
		portaudio.Terminate()
		return nil, dynamo.Wrap("portaudio", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, dynamo.Wrap("portaudio", err)
	}
	return &paStream{stream: stream}, nil
}

type paStream struct {
	stream *portaudio.Stream
	once   sync.Once
	err    error
}

func (s *paStream) Close() error {
	s.once.Do(func() {
		if err := s.stream.Stop(); err != nil {
			s.err = err
		}
		if err := s.stream.Close(); err != nil && s.err == nil {
			s.err = err
		}
		if err := portaudio.Terminate(); err != nil && s.err == nil {
			s.err = err
		}
	})
	return s.err
}

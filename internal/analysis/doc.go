// Package analysis inspects the engine offline.
//
//   - [Analyze]: windowed magnitude spectrum of rendered audio
//   - [PulseRate]: the chug rate recovered from the amplitude envelope
//   - [Sweep]: telemetry across the range of one knob
//
// A rendered buffer from audio.Session can be checked against the knobs
// that produced it:
//
//	s := analysis.Analyze(samples, 44100)
//	tone := s.Dominant(20, 2000)
//	rate := analysis.PulseRate(samples, 44100, 4, 260)
package analysis

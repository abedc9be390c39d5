// Package dynamo provides the shared primitives of the pulse-jet core.
//
// It holds the domain error taxonomy used across packages:
//
//   - [ErrAudioUnavailable]: the host cannot (yet) produce sound
//   - [ErrNotConnected], [ErrAlreadyConnected]: transient output wiring errors
//   - [ErrParameterBounds]: a parameter outside its declared range
//
// None of these are fatal to the frame loop. Callers either log and carry on
// or swallow them outright, see [audio.Engine.Update].
//
// [TrigTable] offers table-driven sin for decorative per-frame effects
// where exact values do not matter.
package dynamo

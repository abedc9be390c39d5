package dynamo

import "errors"

// Domain errors for the simulation core.
var (
	// ErrAudioUnavailable indicates the host has no usable audio output, or
	// refused to open one before a user gesture.
	ErrAudioUnavailable = errors.New("dynamo: audio output unavailable")

	// ErrNotConnected indicates a disconnect of an output stage that is
	// already disconnected.
	ErrNotConnected = errors.New("dynamo: output not connected")

	// ErrAlreadyConnected indicates a connect of an output stage that is
	// already connected.
	ErrAlreadyConnected = errors.New("dynamo: output already connected")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownBackend indicates an audio backend name that is not supported.
	ErrUnknownBackend = errors.New("dynamo: unknown audio backend")

	// ErrSurfaceNotReady indicates a draw surface that is not mounted or sized yet.
	ErrSurfaceNotReady = errors.New("dynamo: draw surface not ready")
)

// ComponentError wraps an error with the component that produced it.
type ComponentError struct {
	Component string
	Wrapped   error
}

func (e *ComponentError) Error() string {
	return e.Component + ": " + e.Wrapped.Error()
}

func (e *ComponentError) Unwrap() error {
	return e.Wrapped
}

// Wrap attaches a component name to err. A nil err stays nil.
func Wrap(component string, err error) error {
	if err == nil {
		return nil
	}
	return &ComponentError{Component: component, Wrapped: err}
}

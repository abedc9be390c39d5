// Package viz is the terminal host for the engine simulation.
//
// It renders the scene onto a braille [Canvas] and drives the shared frame
// driver from Bubble Tea ticks:
//
//   - [Model]: live view with the canvas, dial gauges and a thrust chart
//   - [NewInteractiveApp]: launcher that picks an airframe and preset first
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	M     - Mute/Unmute (the first key press starts audio)
//	C     - Cycle camera
//	D     - Cycle design
//	T     - Cycle color themes
//	A H W - Toggle flow arrows, heat map, pressure waves
//	←→    - Nudge the selected knob (shift for ×10)
//	1-5   - Presets
//	?     - Show help
package viz

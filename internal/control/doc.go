// Package control adjusts the scheduled engine parameters in a closed
// loop before each recorded frame.
//
// Controllers implement [Controller]:
//
//   - [None]: passes the schedule through
//   - [Pin]: holds one knob at a fixed value
//   - [ThrustHold]: PID governor that trims fuel flow to hold a thrust
package control

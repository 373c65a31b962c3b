// Package gcode emits, parses and converts controller-specific G-code.
// Emitters are pure functions parameterized by Dialect; the parser
// produces a small typed instruction representation with an opaque
// variant so unrecognized lines survive conversion verbatim.
package gcode

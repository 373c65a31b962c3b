package gcode

import (
	"strconv"
	"strings"
)

// Instruction is one parsed program line. Lines without a recognizable
// leading command token are kept as opaque raws so they can be passed
// through verbatim. Malformed operand captures are treated as absent.
type Instruction struct {
	Raw     string // original line, untrimmed
	Opaque  bool   // no command token recognized (blank, comment-only, foreign syntax)
	Code    string // normalized command, e.g. "G0", "M5"
	Comment string // trailing ; comment, if any

	X, Y, Z *float64
	I, J    *float64
	F       *float64
	S, P, R *float64
	Q       *float64
}

// IsMotion reports whether the instruction is a G0-G3 move.
func (in Instruction) IsMotion() bool {
	switch in.Code {
	case "G0", "G1", "G2", "G3":
		return true
	}
	return false
}

// IsRapid reports whether the instruction is a G0 move.
func (in Instruction) IsRapid() bool { return in.Code == "G0" }

// Parse splits program text into instructions, one per line.
func Parse(text string) []Instruction {
	lines := strings.Split(text, "\n")
	// A trailing newline produces an empty final element; drop it so
	// Parse/re-join round-trips.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	out := make([]Instruction, 0, len(lines))
	for _, line := range lines {
		out = append(out, ParseLine(line))
	}
	return out
}

// ParseLine parses a single program line.
func ParseLine(line string) Instruction {
	in := Instruction{Raw: strings.TrimRight(line, "\r")}

	body := in.Raw
	if i := strings.Index(body, ";"); i >= 0 {
		in.Comment = strings.TrimSpace(strings.TrimLeft(body[i:], "; "))
		body = body[:i]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		in.Opaque = true
		return in
	}

	fields := strings.Fields(body)
	code, ok := normalizeCode(fields[0])
	if !ok {
		in.Opaque = true
		return in
	}
	in.Code = code

	for _, f := range fields[1:] {
		letter, val, ok := parseWord(f)
		if !ok {
			continue // malformed capture: operand is absent
		}
		v := val
		switch letter {
		case 'X':
			in.X = &v
		case 'Y':
			in.Y = &v
		case 'Z':
			in.Z = &v
		case 'I':
			in.I = &v
		case 'J':
			in.J = &v
		case 'F':
			in.F = &v
		case 'S':
			in.S = &v
		case 'P':
			in.P = &v
		case 'R':
			in.R = &v
		case 'Q':
			in.Q = &v
		}
	}
	return in
}

// normalizeCode validates a leading command token (letter plus number)
// and strips leading zeros, so G00 and G0 compare equal.
func normalizeCode(tok string) (string, bool) {
	if len(tok) < 2 {
		return "", false
	}
	letter := tok[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return "", false
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 {
		return "", false
	}
	return string(letter) + strconv.Itoa(n), true
}

// parseWord splits an operand token into its letter and value.
func parseWord(tok string) (byte, float64, bool) {
	if len(tok) < 2 {
		return 0, 0, false
	}
	letter := tok[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return 0, 0, false
	}
	val, err := strconv.ParseFloat(tok[1:], 64)
	if err != nil {
		return 0, 0, false
	}
	return letter, val, true
}

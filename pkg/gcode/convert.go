package gcode

import "strings"

// Convert re-parses generic program text and re-emits it in the target
// dialect. Only G0 and G1 lines are translated; blank, comment-only and
// unrecognized lines pass through unchanged, as do commands beyond the
// handled set. This is a documented limitation, not silent corruption.
func Convert(text string, target Dialect) string {
	var b strings.Builder
	for _, in := range Parse(text) {
		b.WriteString(convertLine(in, target))
		b.WriteString("\n")
	}
	return b.String()
}

func convertLine(in Instruction, target Dialect) string {
	if in.Opaque {
		return in.Raw
	}

	var out string
	switch in.Code {
	case "G0":
		out = target.Rapid(Move{X: in.X, Y: in.Y, Z: in.Z})
	case "G1":
		out = target.Linear(Move{X: in.X, Y: in.Y, Z: in.Z, F: in.F})
	default:
		return in.Raw
	}

	if in.Comment != "" {
		out += " " + Comment(in.Comment)
	}
	return out
}

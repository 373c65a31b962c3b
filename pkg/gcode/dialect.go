package gcode

import "fmt"

// Dialect selects a controller-specific G-code syntax.
type Dialect int

const (
	DialectGeneric Dialect = iota // canonical G0-G3 output
	DialectFanuc
	DialectHeidenhain // conversational L/CC/C syntax
)

func (d Dialect) String() string {
	switch d {
	case DialectGeneric:
		return "generic"
	case DialectFanuc:
		return "fanuc"
	case DialectHeidenhain:
		return "heidenhain"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect maps a controller name to its Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch name {
	case "generic", "":
		return DialectGeneric, nil
	case "fanuc":
		return DialectFanuc, nil
	case "heidenhain":
		return DialectHeidenhain, nil
	}
	return DialectGeneric, fmt.Errorf("unknown dialect %q, expected generic, fanuc, or heidenhain", name)
}

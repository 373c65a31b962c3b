// Package machining holds the resolved cutting parameters shared by
// every toolpath generator. Unset fields are filled once, at the
// Resolve boundary, from documented defaults and the element geometry.
package machining

import (
	"fmt"

	"github.com/nikomatt69/cadcamfun-sub003/pkg/element"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
)

// OffsetMode selects which side of the nominal boundary the tool
// follows.
type OffsetMode int

const (
	OffsetCenter  OffsetMode = iota // tool center on the boundary
	OffsetInside                    // shrink by half the tool diameter
	OffsetOutside                   // grow by half the tool diameter
)

func (m OffsetMode) String() string {
	switch m {
	case OffsetCenter:
		return "center"
	case OffsetInside:
		return "inside"
	case OffsetOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// Direction is the milling direction relative to the feed.
type Direction int

const (
	Climb        Direction = iota
	Conventional           // implemented as point-order reversal
)

func (d Direction) String() string {
	switch d {
	case Climb:
		return "climb"
	case Conventional:
		return "conventional"
	default:
		return "unknown"
	}
}

// Operation is the machining operation family.
type Operation int

const (
	OpUnset Operation = iota
	OpContour
	OpPocket
	OpDrill
)

func (o Operation) String() string {
	switch o {
	case OpContour:
		return "contour"
	case OpPocket:
		return "pocket"
	case OpDrill:
		return "drill"
	default:
		return "unset"
	}
}

// Defaults applied by Resolve when a field is unset (zero).
const (
	DefaultToolDiameter = 6.0     // mm
	DefaultStepDown     = 2.0     // mm per Z-level
	DefaultFeedRate     = 800.0   // mm/min
	DefaultPlungeRate   = 300.0   // mm/min
	DefaultSafeHeight   = 30.0    // mm
	DefaultSpindleSpeed = 12000.0 // rpm
)

// Settings are the resolved machining parameters for one generation
// run. All lengths are mm, feeds mm/min.
type Settings struct {
	ToolDiameter float64       `json:"tool_diameter"`
	Depth        float64       `json:"depth"`
	StepDown     float64       `json:"step_down"`
	FeedRate     float64       `json:"feed_rate"`
	PlungeRate   float64       `json:"plunge_rate"`
	Offset       OffsetMode    `json:"offset"`
	Direction    Direction     `json:"direction"`
	Operation    Operation     `json:"operation"`
	SafeHeight   float64       `json:"safe_height"`
	SpindleSpeed float64       `json:"spindle_speed"`
	Coolant      bool          `json:"coolant"`
	Dialect      gcode.Dialect `json:"dialect"`
}

// Validate reports whether the settings are usable for generation.
// This is the only hard-error path in the core; every geometric
// degeneracy downstream is recovered as an output comment instead.
func (s Settings) Validate() error {
	if s.ToolDiameter <= 0 {
		return fmt.Errorf("machining: tool diameter must be positive, got %g", s.ToolDiameter)
	}
	if s.StepDown <= 0 {
		return fmt.Errorf("machining: stepdown must be positive, got %g", s.StepDown)
	}
	if s.Depth <= 0 {
		return fmt.Errorf("machining: depth must be positive, got %g", s.Depth)
	}
	if s.FeedRate <= 0 {
		return fmt.Errorf("machining: feed rate must be positive, got %g", s.FeedRate)
	}
	if s.PlungeRate <= 0 {
		return fmt.Errorf("machining: plunge rate must be positive, got %g", s.PlungeRate)
	}
	return nil
}

// Resolve fills unset parameters from defaults and from the element
// geometry: the cutting depth comes from the solid extent and the
// operation is inferred from the shape of the cross-section.
func Resolve(s Settings, g element.Geometry) Settings {
	if s.ToolDiameter <= 0 {
		s.ToolDiameter = DefaultToolDiameter
	}
	if s.StepDown <= 0 {
		s.StepDown = DefaultStepDown
	}
	if s.FeedRate <= 0 {
		s.FeedRate = DefaultFeedRate
	}
	if s.PlungeRate <= 0 {
		s.PlungeRate = DefaultPlungeRate
	}
	if s.SafeHeight <= 0 {
		s.SafeHeight = DefaultSafeHeight
	}
	if s.SpindleSpeed <= 0 {
		s.SpindleSpeed = DefaultSpindleSpeed
	}
	if s.Depth <= 0 {
		if d := g.Bounds.Depth(); d > 0 {
			s.Depth = d
		} else {
			s.Depth = s.StepDown
		}
	}
	if s.Operation == OpUnset {
		s.Operation = inferOperation(s, g)
	}
	return s
}

// inferOperation picks the operation family from the geometry: small
// circular sections drill, closed outlines pocket, everything else
// contours.
func inferOperation(s Settings, g element.Geometry) Operation {
	if g.Radius > 0 && 2*g.Radius <= s.ToolDiameter {
		return OpDrill
	}
	if g.Closed {
		return OpPocket
	}
	return OpContour
}

// EffectiveRadius applies the offset mode to a nominal radius: outside
// grows and inside shrinks by half the tool diameter. Callers must skip
// the level when the result is not positive.
func EffectiveRadius(nominal, toolDiameter float64, m OffsetMode) float64 {
	switch m {
	case OffsetOutside:
		return nominal + toolDiameter/2
	case OffsetInside:
		return nominal - toolDiameter/2
	default:
		return nominal
	}
}

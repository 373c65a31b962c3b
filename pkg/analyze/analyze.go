// Package analyze aggregates statistics over emitted G-code text:
// move counts, travel distance, estimated runtime, feed rates, Z range
// and the validator's safety warnings.
package analyze

import (
	"math"
	"sort"

	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/validate"
)

// rapidRate is the assumed traverse rate for time estimation, mm/min.
const rapidRate = 3000.0

// Report summarizes one G-code program.
type Report struct {
	Lines    int `json:"lines"`
	Comments int `json:"comments"` // lines that are comment-only

	RapidMoves  int `json:"rapid_moves"`
	LinearMoves int `json:"linear_moves"`
	ArcMoves    int `json:"arc_moves"`

	Distance      float64 `json:"distance"`       // mm of travel
	EstimatedTime float64 `json:"estimated_time"` // seconds

	FeedRates []float64 `json:"feed_rates"` // sorted unique observed feeds

	MinZ float64 `json:"min_z"`
	MaxZ float64 `json:"max_z"`

	Warnings []validate.Warning `json:"warnings"`
}

// position tracks the last known coordinates during the scan.
type position struct {
	x, y, z *float64
}

// Analyze scans the program in a single pass and embeds the
// validator's findings in the returned report.
func Analyze(text string) Report {
	r := Report{MinZ: math.Inf(1), MaxZ: math.Inf(-1)}
	feeds := map[float64]bool{}
	var pos position
	var feed float64

	for _, in := range gcode.Parse(text) {
		r.Lines++
		if in.Opaque {
			if in.Comment != "" {
				r.Comments++
			}
			continue
		}

		if in.F != nil {
			feed = *in.F
			feeds[feed] = true
		}
		if in.Z != nil {
			r.MinZ = math.Min(r.MinZ, *in.Z)
			r.MaxZ = math.Max(r.MaxZ, *in.Z)
		}

		switch in.Code {
		case "G0":
			d := travel(pos, in, false)
			r.RapidMoves++
			r.Distance += d
			r.EstimatedTime += d / rapidRate * 60
		case "G1":
			d := travel(pos, in, false)
			r.LinearMoves++
			r.Distance += d
			r.EstimatedTime += moveTime(d, feed)
		case "G2", "G3":
			d := travel(pos, in, true)
			r.ArcMoves++
			r.Distance += d
			r.EstimatedTime += moveTime(d, feed)
		default:
			continue
		}
		pos = track(pos, in)
	}

	if r.MinZ > r.MaxZ { // no Z seen
		r.MinZ, r.MaxZ = 0, 0
	}

	r.FeedRates = make([]float64, 0, len(feeds))
	for f := range feeds {
		r.FeedRates = append(r.FeedRates, f)
	}
	sort.Float64s(r.FeedRates)

	r.Warnings = validate.Check(text)
	return r
}

// travel computes the Euclidean distance of one move from the last
// known position. Arc length is approximated as chord length times
// pi/2; a zero-chord arc is a full circle and contributes its
// circumference from the I/J center offset.
func travel(pos position, in gcode.Instruction, arc bool) float64 {
	dx := delta(pos.x, in.X)
	dy := delta(pos.y, in.Y)
	dz := delta(pos.z, in.Z)
	chord := math.Sqrt(dx*dx + dy*dy + dz*dz)

	if !arc {
		return chord
	}
	if chord == 0 {
		radius := 0.0
		if in.I != nil || in.J != nil {
			i, j := deref(in.I), deref(in.J)
			radius = math.Sqrt(i*i + j*j)
		}
		return 2 * math.Pi * radius
	}
	return chord * math.Pi / 2
}

func moveTime(dist, feed float64) float64 {
	if feed <= 0 {
		return 0
	}
	return dist / feed * 60
}

func delta(last, next *float64) float64 {
	if last == nil || next == nil {
		return 0
	}
	return *next - *last
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func track(pos position, in gcode.Instruction) position {
	if in.X != nil {
		pos.x = in.X
	}
	if in.Y != nil {
		pos.y = in.Y
	}
	if in.Z != nil {
		pos.z = in.Z
	}
	return pos
}

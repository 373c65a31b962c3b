package toolpath

import (
	"fmt"
	"math"
	"strings"

	"github.com/nikomatt69/cadcamfun-sub003/pkg/element"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/machining"
)

// clearance is the rapid approach height above each cutting level.
const clearance = 5.0

// minTessellationPoints is the floor for tessellated outlines.
const minTessellationPoints = 12

// zLevels returns the strictly decreasing cutting planes below top.
// The count is ceil(min(depth, extent)/stepDown); the last level is
// clipped to exactly top-min(depth, extent) and never goes below the
// solid bottom.
func zLevels(top, extent, depth, stepDown float64) []float64 {
	total := math.Min(depth, extent)
	if total <= 0 || stepDown <= 0 {
		return nil
	}
	n := int(math.Ceil(total/stepDown - 1e-9))
	zs := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		cut := float64(i) * stepDown
		if cut > total {
			cut = total
		}
		zs = append(zs, top-cut)
	}
	return zs
}

// sectionKind distinguishes analytic cross-section families.
type sectionKind int

const (
	secCircle sectionKind = iota // full circle, emitted as one arc move
	secRect                      // axis-aligned rectangle
	secPath                      // explicit outline, open or closed
)

// section is the analytic 2D cross-section of a solid at one Z-level,
// before tool offsetting.
type section struct {
	kind   sectionKind
	radius float64        // secCircle
	w, h   float64        // secRect
	points []element.Vec2 // secPath, absolute XY
	open   bool           // secPath only
}

func circleSection(r float64) section  { return section{kind: secCircle, radius: r} }
func rectSection(w, h float64) section { return section{kind: secRect, w: w, h: h} }

func pathSection(pts []element.Vec2, open bool) section {
	return section{kind: secPath, points: pts, open: open}
}

// sectionFunc returns the cross-section at the given cut depth below
// the top of the solid. ok=false means the plane misses the solid and
// the level is skipped.
type sectionFunc func(cut float64) (section, bool)

// contour slices a solid from top downward and emits one pass per
// Z-level through the dialect emitters.
func contour(b *strings.Builder, center element.Vec2, top, extent float64, s machining.Settings, fn sectionFunc) {
	levels := zLevels(top, extent, s.Depth, s.StepDown)
	if len(levels) == 0 {
		writeLine(b, gcode.Comment("no cuttable extent, skipped"))
		return
	}
	for _, z := range levels {
		sec, ok := fn(top - z)
		if !ok {
			writeLine(b, gcode.Comment(fmt.Sprintf("level Z%s misses the solid, skipped", gcode.Num(z))))
			continue
		}
		writeLine(b, gcode.Comment(fmt.Sprintf("pass Z%s", gcode.Num(z))))
		emitLevel(b, center, sec, z, s)
	}
}

// emitLevel renders one Z-level: offset the section by the tool
// radius, approach, plunge, cut.
func emitLevel(b *strings.Builder, center element.Vec2, sec section, z float64, s machining.Settings) {
	d := s.Dialect
	switch sec.kind {
	case secCircle:
		effR := machining.EffectiveRadius(sec.radius, s.ToolDiameter, s.Offset)
		if effR <= 0 {
			writeLine(b, gcode.Comment(fmt.Sprintf("level Z%s: effective radius %s not cuttable, skipped",
				gcode.Num(z), gcode.Num(effR))))
			return
		}
		sx, sy := center.X+effR, center.Y
		writeLine(b, d.Rapid(gcode.Move{X: &sx, Y: &sy, Z: gcode.Float(z + clearance)}))
		writeLine(b, d.Linear(gcode.Move{Z: gcode.Float(z), F: gcode.Float(s.PlungeRate)}))
		writeLine(b, d.Circular(sx, sy, -effR, 0, s.Direction == machining.Climb, s.FeedRate))

	case secRect:
		effW, effH := effectiveRect(sec.w, sec.h, s)
		if effW <= 0 || effH <= 0 {
			writeLine(b, gcode.Comment(fmt.Sprintf("level Z%s: effective size not cuttable, skipped", gcode.Num(z))))
			return
		}
		emitPath(b, rectOutline(center, effW, effH), z, s)

	case secPath:
		pts := sec.points
		if !sec.open {
			offset, ok := offsetPath(pts, s)
			if !ok {
				writeLine(b, gcode.Comment(fmt.Sprintf("level Z%s: effective size not cuttable, skipped", gcode.Num(z))))
				return
			}
			pts = offset
		}
		emitPath(b, pts, z, s)
	}
}

// emitPath renders an ordered point list: rapid to the first point at
// clearance, plunge, then feed through the rest. Conventional milling
// reverses the point order, never the numbering.
func emitPath(b *strings.Builder, pts []element.Vec2, z float64, s machining.Settings) {
	if len(pts) == 0 {
		return
	}
	if s.Direction == machining.Conventional {
		pts = reversed(pts)
	}
	d := s.Dialect
	writeLine(b, d.Rapid(gcode.Move{X: &pts[0].X, Y: &pts[0].Y, Z: gcode.Float(z + clearance)}))
	writeLine(b, d.Linear(gcode.Move{Z: gcode.Float(z), F: gcode.Float(s.PlungeRate)}))
	for i := 1; i < len(pts); i++ {
		writeLine(b, d.Linear(gcode.Move{X: &pts[i].X, Y: &pts[i].Y, F: gcode.Float(s.FeedRate)}))
	}
}

// effectiveRect applies the offset mode to both rectangle extents.
func effectiveRect(w, h float64, s machining.Settings) (float64, float64) {
	return 2 * machining.EffectiveRadius(w/2, s.ToolDiameter, s.Offset),
		2 * machining.EffectiveRadius(h/2, s.ToolDiameter, s.Offset)
}

// offsetPath grows or shrinks a closed outline about its centroid so
// the mean boundary distance changes by half the tool diameter.
// Returns ok=false when the effective size collapses.
func offsetPath(pts []element.Vec2, s machining.Settings) ([]element.Vec2, bool) {
	if s.Offset == machining.OffsetCenter || len(pts) < 2 {
		return pts, true
	}
	n := len(pts)
	if pts[0] == pts[n-1] {
		n-- // closed outline: do not count the repeated point twice
	}
	var c element.Vec2
	for _, p := range pts[:n] {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(n)
	c.Y /= float64(n)

	var avg float64
	for _, p := range pts[:n] {
		avg += c.Distance(p)
	}
	avg /= float64(n)
	if avg <= 0 {
		return nil, false
	}
	eff := machining.EffectiveRadius(avg, s.ToolDiameter, s.Offset)
	if eff <= 0 {
		return nil, false
	}
	factor := eff / avg
	out := make([]element.Vec2, len(pts))
	for i, p := range pts {
		out[i] = element.Vec2{X: c.X + (p.X-c.X)*factor, Y: c.Y + (p.Y-c.Y)*factor}
	}
	return out, true
}

// rectOutline builds a closed rectangle path around c.
func rectOutline(c element.Vec2, w, h float64) []element.Vec2 {
	return []element.Vec2{
		{X: c.X - w/2, Y: c.Y - h/2},
		{X: c.X + w/2, Y: c.Y - h/2},
		{X: c.X + w/2, Y: c.Y + h/2},
		{X: c.X - w/2, Y: c.Y + h/2},
		{X: c.X - w/2, Y: c.Y - h/2},
	}
}

// sweepPoints tessellates an elliptical sweep into an ordered point
// list with at least minTessellationPoints entries, scaled to size.
// Angles are degrees; an end at or before the start wraps by +360.
func sweepPoints(c element.Vec2, rx, ry, startDeg, endDeg float64) []element.Vec2 {
	if endDeg <= startDeg {
		endDeg += 360
	}
	sweep := endDeg - startDeg

	perimeter := 2 * math.Pi * math.Max(rx, ry)
	segs := int(math.Ceil(perimeter / 2)) // ~2mm per segment
	if segs < minTessellationPoints {
		segs = minTessellationPoints
	}
	if segs > 72 {
		segs = 72
	}
	n := int(math.Ceil(float64(segs) * sweep / 360))
	if n < 2 {
		n = 2
	}

	pts := make([]element.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		a := (startDeg + sweep*float64(i)/float64(n)) * math.Pi / 180
		pts = append(pts, element.Vec2{X: c.X + rx*math.Cos(a), Y: c.Y + ry*math.Sin(a)})
	}
	return pts
}

func reversed(pts []element.Vec2) []element.Vec2 {
	out := make([]element.Vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\n")
}

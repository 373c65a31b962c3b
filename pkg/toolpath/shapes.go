package toolpath

import (
	"math"
	"strings"

	"github.com/nikomatt69/cadcamfun-sub003/pkg/element"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/machining"
)

// ---------------------------------------------------------------------------
// Flat shapes
// ---------------------------------------------------------------------------

func (g *Generator) emitRectangle(b *strings.Builder, geom element.Geometry, d element.RectangleData, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return rectSection(d.Width, d.Height), true
	})
}

func (g *Generator) emitCircle(b *strings.Builder, geom element.Geometry, d element.CircleData, s machining.Settings) {
	if s.Operation == machining.OpDrill {
		g.emitDrill(b, geom, s)
		return
	}
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return circleSection(d.Radius), true
	})
}

// emitDrill emits a canned drilling cycle at the element center. Deep
// holes peck with a short dwell; shallow ones use the plain cycle.
func (g *Generator) emitDrill(b *strings.Builder, geom element.Geometry, s machining.Settings) {
	dwell := 0.0
	if s.Depth > 3*s.ToolDiameter {
		dwell = 0.5
	}
	writeLine(b, s.Dialect.Drill(geom.Center.X, geom.Center.Y, s.Depth, 2, s.PlungeRate, dwell))
}

func (g *Generator) emitPolygon(b *strings.Builder, geom element.Geometry, d element.PolygonData, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	pts := element.NgonPath(geom.Center.XY(), d.Radius, d.Sides)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return pathSection(pts, false), true
	})
}

func (g *Generator) emitLine(b *strings.Builder, geom element.Geometry, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return pathSection(geom.Path, true), true
	})
}

func (g *Generator) emitArc(b *strings.Builder, geom element.Geometry, d element.ArcData, s machining.Settings) {
	effR := machining.EffectiveRadius(d.Radius, s.ToolDiameter, s.Offset)
	if effR <= 0 {
		writeLine(b, gcode.Comment("effective arc radius not cuttable, skipped"))
		return
	}
	pts := sweepPoints(geom.Center.XY(), effR, effR, d.StartAngle, d.EndAngle)
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return pathSection(pts, true), true
	})
}

func (g *Generator) emitEllipse(b *strings.Builder, geom element.Geometry, d element.EllipseData, s machining.Settings) {
	full := d.StartAngle == 0 && d.EndAngle == 0
	top, extent := topAndExtent(geom, s)

	if full {
		pts := sweepPoints(geom.Center.XY(), d.RadiusX, d.RadiusY, 0, 360)
		contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
			return pathSection(pts, false), true
		})
		return
	}

	// Partial sweep: an open path is never centroid-offset, so apply
	// the tool offset to the semi-axes up front.
	rx := machining.EffectiveRadius(d.RadiusX, s.ToolDiameter, s.Offset)
	ry := machining.EffectiveRadius(d.RadiusY, s.ToolDiameter, s.Offset)
	if rx <= 0 || ry <= 0 {
		writeLine(b, gcode.Comment("effective ellipse radius not cuttable, skipped"))
		return
	}
	pts := sweepPoints(geom.Center.XY(), rx, ry, d.StartAngle, d.EndAngle)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return pathSection(pts, true), true
	})
}

func (g *Generator) emitTriangle(b *strings.Builder, geom element.Geometry, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return pathSection(geom.Path, false), true
	})
}

// emitText cuts the label's bounding rectangle, then clears the inside
// with a zig-zag fill. Glyph outlining is a documented approximation.
func (g *Generator) emitText(b *strings.Builder, geom element.Geometry, d element.TextData, s machining.Settings) {
	w, h := element.TextExtent(d.Text, d.Size)
	depth := s.Depth
	if d.Depth > 0 {
		depth = d.Depth
	}
	st := s
	st.Depth = depth

	top, extent := topAndExtent(geom, st)
	c := geom.Center.XY()
	contour(b, c, top, extent, st, func(cut float64) (section, bool) {
		return rectSection(w, h), true
	})

	// Zig-zag fill inside the box, one pass at final depth.
	z := top - math.Min(depth, extent)
	step := s.ToolDiameter * 0.8
	if step <= 0 {
		return
	}
	writeLine(b, gcode.Comment("zig-zag text fill"))
	left := c.X - w/2 + step/2
	right := c.X + w/2 - step/2
	y := c.Y - h/2 + step/2
	yMax := c.Y + h/2 - step/2
	dialect := s.Dialect
	writeLine(b, dialect.Rapid(gcode.Move{X: &left, Y: &y, Z: gcode.Float(z + clearance)}))
	writeLine(b, dialect.Linear(gcode.Move{Z: gcode.Float(z), F: gcode.Float(s.PlungeRate)}))
	forward := true
	for y <= yMax {
		xEnd := right
		if !forward {
			xEnd = left
		}
		yv := y
		writeLine(b, dialect.Linear(gcode.Move{X: &xEnd, Y: &yv, F: gcode.Float(s.FeedRate)}))
		y += step
		forward = !forward
	}
}

// ---------------------------------------------------------------------------
// Solids
// ---------------------------------------------------------------------------

func (g *Generator) emitBox(b *strings.Builder, geom element.Geometry, d element.BoxData, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return rectSection(d.Width, d.Height), true
	})
}

func (g *Generator) emitSphere(b *strings.Builder, geom element.Geometry, d element.SphereData, s machining.Settings) {
	r := d.Radius
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		h := r - cut // height of the plane above the sphere center
		if h < -r {
			return section{}, false
		}
		return circleSection(math.Sqrt(math.Max(0, r*r-h*h))), true
	})
}

func (g *Generator) emitCylinder(b *strings.Builder, geom element.Geometry, d element.CylinderData, s machining.Settings) {
	if s.Operation == machining.OpDrill {
		g.emitDrill(b, geom, s)
		return
	}
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return circleSection(d.Radius), true
	})
}

func (g *Generator) emitCone(b *strings.Builder, geom element.Geometry, d element.ConeData, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		if d.Height <= 0 {
			return section{}, false
		}
		// Apex on top: the radius grows linearly toward the base.
		return circleSection(d.Radius * math.Min(cut, d.Height) / d.Height), true
	})
}

func (g *Generator) emitTorus(b *strings.Builder, geom element.Geometry, d element.TorusData, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		h := d.MinorRadius - cut
		if h < -d.MinorRadius {
			return section{}, false
		}
		// Outer tube wall only; the inner wall is not contoured.
		w := math.Sqrt(math.Max(0, d.MinorRadius*d.MinorRadius-h*h))
		return circleSection(d.MajorRadius + w), true
	})
}

func (g *Generator) emitPyramid(b *strings.Builder, geom element.Geometry, d element.PyramidData, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		if d.Height <= 0 {
			return section{}, false
		}
		f := math.Min(cut, d.Height) / d.Height
		return rectSection(d.BaseWidth*f, d.BaseHeight*f), true
	})
}

func (g *Generator) emitPrism(b *strings.Builder, geom element.Geometry, d element.PrismData, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	pts := element.NgonPath(geom.Center.XY(), d.Radius, d.Sides)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return pathSection(pts, false), true
	})
}

func (g *Generator) emitHemisphere(b *strings.Builder, geom element.Geometry, d element.HemisphereData, s machining.Settings) {
	r := d.Radius
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		h := r - cut
		if h < 0 {
			return section{}, false
		}
		return circleSection(math.Sqrt(math.Max(0, r*r-h*h))), true
	})
}

func (g *Generator) emitEllipsoid(b *strings.Builder, geom element.Geometry, d element.EllipsoidData, s machining.Settings) {
	top, extent := topAndExtent(geom, s)
	c := geom.Center.XY()
	contour(b, c, top, extent, s, func(cut float64) (section, bool) {
		if d.RadiusZ <= 0 {
			return section{}, false
		}
		h := d.RadiusZ - cut
		if h < -d.RadiusZ {
			return section{}, false
		}
		k := math.Sqrt(math.Max(0, 1-(h/d.RadiusZ)*(h/d.RadiusZ)))
		if k == 0 {
			return section{}, false
		}
		return pathSection(sweepPoints(c, d.RadiusX*k, d.RadiusY*k, 0, 360), false), true
	})
}

// emitCapsule slices the cylinder body and the two hemispherical caps
// along the vertical axis as one piecewise section function.
func (g *Generator) emitCapsule(b *strings.Builder, geom element.Geometry, d element.CapsuleData, s machining.Settings) {
	r := d.Radius
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		switch {
		case cut < r: // upper cap
			h := r - cut
			return circleSection(math.Sqrt(math.Max(0, r*r-h*h))), true
		case cut <= r+d.Height: // cylindrical body
			return circleSection(r), true
		case cut <= 2*r+d.Height: // lower cap
			h := cut - r - d.Height
			return circleSection(math.Sqrt(math.Max(0, r*r-h*h))), true
		default:
			return section{}, false
		}
	})
}

func (g *Generator) emitMesh(b *strings.Builder, geom element.Geometry, s machining.Settings) {
	writeLine(b, gcode.Comment("mesh element approximated by its bounding box"))
	g.emitBounds(b, geom, s)
}

package element

import "math"

// fallbackSize is the per-axis bounding extent assumed for elements
// whose payload carries no usable dimensions.
const fallbackSize = 10.0

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Width returns the X extent.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the Y extent.
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Depth returns the Z extent.
func (b Bounds) Depth() float64 { return b.Max.Z - b.Min.Z }

// Center returns the box midpoint.
func (b Bounds) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// union expands the box to also cover o.
func (b Bounds) union(o Bounds) Bounds {
	return Bounds{
		Min: Vec3{
			X: math.Min(b.Min.X, o.Min.X),
			Y: math.Min(b.Min.Y, o.Min.Y),
			Z: math.Min(b.Min.Z, o.Min.Z),
		},
		Max: Vec3{
			X: math.Max(b.Max.X, o.Max.X),
			Y: math.Max(b.Max.Y, o.Max.Y),
			Z: math.Max(b.Max.Z, o.Max.Z),
		},
	}
}

// offset shifts the box by v.
func (b Bounds) offset(v Vec3) Bounds {
	return Bounds{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// Geometry is the canonical read-only view of an element: center,
// bounding box, an optional characteristic radius, and an optional 2D
// outline in absolute XY coordinates. Closed outlines repeat the first
// point as the last.
type Geometry struct {
	Center Vec3    `json:"center"`
	Bounds Bounds  `json:"bounds"`
	Radius float64 `json:"radius,omitempty"`
	Path   []Vec2  `json:"path,omitempty"`
	Closed bool    `json:"closed,omitempty"`
}

// Extract derives canonical geometry from any element. It is pure and
// total: unknown or nil payloads get a generic fallback bounding cube
// and absent numeric fields are treated as zero.
func Extract(el Element) Geometry {
	p := el.Position

	switch d := el.Data.(type) {
	case RectangleData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, d.Width, d.Height, 0),
			Path:   rectPath(p.XY(), d.Width, d.Height),
			Closed: true,
		}

	case CircleData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.Radius, 2*d.Radius, 0),
			Radius: d.Radius,
		}

	case PolygonData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.Radius, 2*d.Radius, 0),
			Radius: d.Radius,
			Path:   NgonPath(p.XY(), d.Radius, d.Sides),
			Closed: true,
		}

	case LineData:
		end := p.Add(d.End)
		return Geometry{
			Center: Vec3{X: (p.X + end.X) / 2, Y: (p.Y + end.Y) / 2, Z: (p.Z + end.Z) / 2},
			Bounds: Bounds{
				Min: Vec3{X: math.Min(p.X, end.X), Y: math.Min(p.Y, end.Y), Z: math.Min(p.Z, end.Z)},
				Max: Vec3{X: math.Max(p.X, end.X), Y: math.Max(p.Y, end.Y), Z: math.Max(p.Z, end.Z)},
			},
			Path: []Vec2{p.XY(), end.XY()},
		}

	case ArcData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.Radius, 2*d.Radius, 0),
			Radius: d.Radius,
		}

	case EllipseData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.RadiusX, 2*d.RadiusY, 0),
			Radius: math.Max(d.RadiusX, d.RadiusY),
		}

	case TriangleData:
		pts := TrianglePoints(p.XY(), d)
		return Geometry{
			Center: p,
			Bounds: pathBounds(pts, p.Z),
			Path:   closePath(pts),
			Closed: true,
		}

	case TextData:
		w, h := TextExtent(d.Text, d.Size)
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, w, h, 0),
			Path:   rectPath(p.XY(), w, h),
			Closed: true,
		}

	case BoxData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, d.Width, d.Height, d.Depth),
			Path:   rectPath(p.XY(), d.Width, d.Height),
			Closed: true,
		}

	case SphereData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.Radius, 2*d.Radius, 2*d.Radius),
			Radius: d.Radius,
		}

	case CylinderData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.Radius, 2*d.Radius, d.Height),
			Radius: d.Radius,
		}

	case ConeData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.Radius, 2*d.Radius, d.Height),
			Radius: d.Radius,
		}

	case TorusData:
		outer := d.MajorRadius + d.MinorRadius
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*outer, 2*outer, 2*d.MinorRadius),
			Radius: outer,
		}

	case PyramidData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, d.BaseWidth, d.BaseHeight, d.Height),
			Path:   rectPath(p.XY(), d.BaseWidth, d.BaseHeight),
			Closed: true,
		}

	case PrismData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.Radius, 2*d.Radius, d.Height),
			Radius: d.Radius,
			Path:   NgonPath(p.XY(), d.Radius, d.Sides),
			Closed: true,
		}

	case HemisphereData:
		// Flat face on the element plane, pole up.
		return Geometry{
			Center: p,
			Bounds: Bounds{
				Min: Vec3{X: p.X - d.Radius, Y: p.Y - d.Radius, Z: p.Z},
				Max: Vec3{X: p.X + d.Radius, Y: p.Y + d.Radius, Z: p.Z + d.Radius},
			},
			Radius: d.Radius,
		}

	case EllipsoidData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.RadiusX, 2*d.RadiusY, 2*d.RadiusZ),
			Radius: math.Max(d.RadiusX, d.RadiusY),
		}

	case CapsuleData:
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, 2*d.Radius, 2*d.Radius, d.Height+2*d.Radius),
			Radius: d.Radius,
		}

	case MeshData:
		if len(d.Vertices) == 0 {
			return fallbackGeometry(p)
		}
		b := Bounds{Min: d.Vertices[0].Add(p), Max: d.Vertices[0].Add(p)}
		for _, v := range d.Vertices[1:] {
			av := v.Add(p)
			b = b.union(Bounds{Min: av, Max: av})
		}
		return Geometry{Center: b.Center(), Bounds: b}

	case ComponentData:
		return extractComponent(p, d)

	default:
		return fallbackGeometry(p)
	}
}

// extractComponent unions the recursively extracted, repositioned child
// boxes. Explicit component dimensions win over the derived box.
func extractComponent(p Vec3, d ComponentData) Geometry {
	if d.Dimensions != nil {
		return Geometry{
			Center: p,
			Bounds: centeredBounds(p, d.Dimensions.X, d.Dimensions.Y, d.Dimensions.Z),
		}
	}
	if len(d.Children) == 0 {
		return fallbackGeometry(p)
	}

	var b Bounds
	for i, child := range d.Children {
		cb := Extract(child).Bounds.offset(p)
		if i == 0 {
			b = cb
		} else {
			b = b.union(cb)
		}
	}
	return Geometry{Center: b.Center(), Bounds: b}
}

// fallbackGeometry is the generic estimate for unknown payloads.
func fallbackGeometry(p Vec3) Geometry {
	return Geometry{
		Center: p,
		Bounds: centeredBounds(p, fallbackSize, fallbackSize, fallbackSize),
	}
}

func centeredBounds(c Vec3, w, h, depth float64) Bounds {
	return Bounds{
		Min: Vec3{X: c.X - w/2, Y: c.Y - h/2, Z: c.Z - depth/2},
		Max: Vec3{X: c.X + w/2, Y: c.Y + h/2, Z: c.Z + depth/2},
	}
}

// rectPath builds a closed rectangle outline around c.
func rectPath(c Vec2, w, h float64) []Vec2 {
	return []Vec2{
		{X: c.X - w/2, Y: c.Y - h/2},
		{X: c.X + w/2, Y: c.Y - h/2},
		{X: c.X + w/2, Y: c.Y + h/2},
		{X: c.X - w/2, Y: c.Y + h/2},
		{X: c.X - w/2, Y: c.Y - h/2},
	}
}

// NgonPath builds a closed regular polygon outline around c. Sides
// below 3 are raised to 3.
func NgonPath(c Vec2, radius float64, sides int) []Vec2 {
	if sides < 3 {
		sides = 3
	}
	pts := make([]Vec2, 0, sides+1)
	for i := 0; i < sides; i++ {
		a := 2 * math.Pi * float64(i) / float64(sides)
		pts = append(pts, Vec2{X: c.X + radius*math.Cos(a), Y: c.Y + radius*math.Sin(a)})
	}
	return closePath(pts)
}

// TrianglePoints returns the absolute triangle corners: explicit points
// when exactly three are given, otherwise an equilateral triangle of
// the configured size.
func TrianglePoints(c Vec2, d TriangleData) []Vec2 {
	if len(d.Points) == 3 {
		pts := make([]Vec2, 3)
		for i, pt := range d.Points {
			pts[i] = c.Add(pt)
		}
		return pts
	}
	size := d.Size
	if size <= 0 {
		size = fallbackSize
	}
	// Circumradius of an equilateral triangle with the given edge.
	r := size / math.Sqrt(3)
	pts := make([]Vec2, 3)
	for i := 0; i < 3; i++ {
		a := math.Pi/2 + 2*math.Pi*float64(i)/3
		pts[i] = Vec2{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

// TextExtent estimates the rendered width and height of a label using a
// fixed per-glyph advance. The outline approximation documented on
// TextData builds on this box.
func TextExtent(text string, size float64) (w, h float64) {
	if size <= 0 {
		size = fallbackSize
	}
	n := len([]rune(text))
	if n == 0 {
		n = 1
	}
	return 0.6 * size * float64(n), size
}

// closePath repeats the first point as the last unless already closed.
func closePath(pts []Vec2) []Vec2 {
	if len(pts) == 0 {
		return pts
	}
	if pts[0] == pts[len(pts)-1] {
		return pts
	}
	return append(pts, pts[0])
}

// pathBounds computes the box of a set of XY points on the given plane.
func pathBounds(pts []Vec2, z float64) Bounds {
	if len(pts) == 0 {
		return Bounds{Min: Vec3{Z: z}, Max: Vec3{Z: z}}
	}
	b := Bounds{
		Min: Vec3{X: pts[0].X, Y: pts[0].Y, Z: z},
		Max: Vec3{X: pts[0].X, Y: pts[0].Y, Z: z},
	}
	for _, pt := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, pt.X)
		b.Min.Y = math.Min(b.Min.Y, pt.Y)
		b.Max.X = math.Max(b.Max.X, pt.X)
		b.Max.Y = math.Max(b.Max.Y, pt.Y)
	}
	return b
}

package toolpath

import (
	"fmt"
	"strings"

	"github.com/nikomatt69/cadcamfun-sub003/pkg/element"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/kernel"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/machining"
)

// Generator renders elements as G-code operation bodies. The kernel is
// only consulted by the component assembler's boolean-union path; when
// nil, composites always take the per-child fallback.
type Generator struct {
	Kernel kernel.Kernel
}

// New returns a Generator backed by the given geometry kernel.
// A nil kernel is valid.
func New(k kernel.Kernel) *Generator {
	return &Generator{Kernel: k}
}

// Generate renders the toolpath body for one element. Unset machining
// parameters are resolved from the element geometry first; the only
// error condition is unusable settings. Degenerate geometry is
// recovered locally as output comments.
func (g *Generator) Generate(el element.Element, s machining.Settings) (string, error) {
	geom := element.Extract(el)
	rs := machining.Resolve(s, geom)
	if err := rs.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	label := el.Kind.String()
	if el.Name != "" {
		label += " " + el.Name
	}
	writeLine(&b, gcode.Comment(label))
	g.emitElement(&b, el, geom, rs)
	return b.String(), nil
}

// Program renders a complete dialect program: header, one body per
// element, footer. Elements are independent of each other; only the
// shared header/footer ties them into one program.
func (g *Generator) Program(els []element.Element, s machining.Settings) (string, error) {
	var b strings.Builder
	b.WriteString(s.Dialect.Header(settingsSpindle(s), s.Coolant))
	for _, el := range els {
		body, err := g.Generate(el, s)
		if err != nil {
			return "", fmt.Errorf("toolpath: element %q: %w", el.Name, err)
		}
		b.WriteString(body)
	}
	b.WriteString(s.Dialect.Footer())
	return b.String(), nil
}

func settingsSpindle(s machining.Settings) float64 {
	if s.SpindleSpeed > 0 {
		return s.SpindleSpeed
	}
	return machining.DefaultSpindleSpeed
}

// emitElement dispatches on the shape payload. It never fails: shapes
// the generator cannot cut degrade to a bounding contour plus comment.
func (g *Generator) emitElement(b *strings.Builder, el element.Element, geom element.Geometry, s machining.Settings) {
	switch d := el.Data.(type) {
	case element.RectangleData:
		g.emitRectangle(b, geom, d, s)
	case element.CircleData:
		g.emitCircle(b, geom, d, s)
	case element.PolygonData:
		g.emitPolygon(b, geom, d, s)
	case element.LineData:
		g.emitLine(b, geom, s)
	case element.ArcData:
		g.emitArc(b, geom, d, s)
	case element.EllipseData:
		g.emitEllipse(b, geom, d, s)
	case element.TriangleData:
		g.emitTriangle(b, geom, s)
	case element.TextData:
		g.emitText(b, geom, d, s)
	case element.BoxData:
		g.emitBox(b, geom, d, s)
	case element.SphereData:
		g.emitSphere(b, geom, d, s)
	case element.CylinderData:
		g.emitCylinder(b, geom, d, s)
	case element.ConeData:
		g.emitCone(b, geom, d, s)
	case element.TorusData:
		g.emitTorus(b, geom, d, s)
	case element.PyramidData:
		g.emitPyramid(b, geom, d, s)
	case element.PrismData:
		g.emitPrism(b, geom, d, s)
	case element.HemisphereData:
		g.emitHemisphere(b, geom, d, s)
	case element.EllipsoidData:
		g.emitEllipsoid(b, geom, d, s)
	case element.CapsuleData:
		g.emitCapsule(b, geom, d, s)
	case element.MeshData:
		g.emitMesh(b, geom, s)
	case element.ComponentData:
		g.assemble(b, el.Position, d, s)
	default:
		// Unknown payload: cut the fallback bounding contour rather
		// than aborting the whole program.
		writeLine(b, gcode.Comment(fmt.Sprintf("unknown shape %s, cutting fallback bounds", el.Kind)))
		g.emitBounds(b, geom, s)
	}
}

// emitBounds contours the geometry's bounding rectangle. Used for
// unknown payloads and mesh elements.
func (g *Generator) emitBounds(b *strings.Builder, geom element.Geometry, s machining.Settings) {
	w, h := geom.Bounds.Width(), geom.Bounds.Height()
	top, extent := topAndExtent(geom, s)
	contour(b, geom.Center.XY(), top, extent, s, func(cut float64) (section, bool) {
		return rectSection(w, h), true
	})
}

// topAndExtent returns the slicing start plane and the vertical extent
// of the solid. Flat elements have no extent of their own and are cut
// to the configured depth.
func topAndExtent(geom element.Geometry, s machining.Settings) (top, extent float64) {
	top = geom.Bounds.Max.Z
	extent = geom.Bounds.Depth()
	if extent <= 0 {
		extent = s.Depth
	}
	return top, extent
}

package toolpath

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nikomatt69/cadcamfun-sub003/pkg/element"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/kernel"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/machining"
)

// assemble renders a composite element. The preferred path folds all
// children into one kernel solid via repeated pairwise boolean union
// and slices the result; any failure falls back to ordered per-child
// generation. The unified solid's cross-section is approximated as
// circular at every level.
func (g *Generator) assemble(b *strings.Builder, pos element.Vec3, d element.ComponentData, s machining.Settings) {
	if len(d.Children) == 0 {
		writeLine(b, gcode.Comment("empty component, nothing to cut"))
		return
	}

	if err := g.assembleUnified(b, pos, d, s); err != nil {
		writeLine(b, gcode.Comment(fmt.Sprintf("union failed (%v), falling back to per-child toolpaths", err)))
		g.assembleFallback(b, pos, d, s)
	}
}

// assembleUnified builds the boolean union of all children and slices
// it with circular cross-sections.
func (g *Generator) assembleUnified(b *strings.Builder, pos element.Vec3, d element.ComponentData, s machining.Settings) error {
	if g.Kernel == nil {
		return fmt.Errorf("no geometry kernel configured")
	}

	var unified kernel.Solid
	for _, child := range d.Children {
		solid, err := g.childSolid(child, pos)
		if err != nil {
			return fmt.Errorf("child %s: %w", child.Kind, err)
		}
		if unified == nil {
			unified = solid
		} else {
			unified = g.Kernel.Union(unified, solid)
		}
	}

	mesh, err := g.Kernel.ToMesh(unified)
	if err != nil {
		return fmt.Errorf("boundary mesh: %w", err)
	}
	if mesh.IsEmpty() {
		return fmt.Errorf("boundary mesh is empty")
	}

	bbMin, bbMax := unified.BoundingBox()
	center := element.Vec2{X: (bbMin[0] + bbMax[0]) / 2, Y: (bbMin[1] + bbMax[1]) / 2}
	radius := math.Max(bbMax[0]-bbMin[0], bbMax[1]-bbMin[1]) / 2
	top := bbMax[2]
	extent := bbMax[2] - bbMin[2]

	writeLine(b, gcode.Comment(fmt.Sprintf("unified solid of %d children, circular section approximation", len(d.Children))))
	contour(b, center, top, extent, s, func(cut float64) (section, bool) {
		return circleSection(radius), true
	})
	return nil
}

// childSolid converts a child element into a kernel solid positioned
// at its absolute location. Shapes without a kernel primitive are
// unconvertible and trigger the per-child fallback.
func (g *Generator) childSolid(el element.Element, parent element.Vec3) (kernel.Solid, error) {
	at := parent.Add(el.Position)
	k := g.Kernel

	switch d := el.Data.(type) {
	case element.BoxData:
		return k.Translate(k.Box(d.Width, d.Height, d.Depth), at.X, at.Y, at.Z), nil
	case element.SphereData:
		return k.Translate(k.Sphere(d.Radius), at.X, at.Y, at.Z), nil
	case element.HemisphereData:
		// Approximated by its enclosing sphere seated on the base plane.
		return k.Translate(k.Sphere(d.Radius), at.X, at.Y, at.Z), nil
	case element.CylinderData:
		return k.Translate(k.Cylinder(d.Height, d.Radius), at.X, at.Y, at.Z), nil
	case element.ConeData:
		return k.Translate(k.Cone(d.Height, d.Radius), at.X, at.Y, at.Z), nil
	case element.CapsuleData:
		body := k.Cylinder(d.Height, d.Radius)
		capTop := k.Translate(k.Sphere(d.Radius), 0, 0, d.Height/2)
		capBot := k.Translate(k.Sphere(d.Radius), 0, 0, -d.Height/2)
		return k.Translate(k.Union(k.Union(body, capTop), capBot), at.X, at.Y, at.Z), nil
	case element.ComponentData:
		// Nested composites flatten into the union fold.
		var unified kernel.Solid
		for _, child := range d.Children {
			solid, err := g.childSolid(child, at)
			if err != nil {
				return nil, err
			}
			if unified == nil {
				unified = solid
			} else {
				unified = k.Union(unified, solid)
			}
		}
		if unified == nil {
			return nil, fmt.Errorf("empty nested component")
		}
		return unified, nil
	default:
		return nil, fmt.Errorf("no solid primitive for %s", el.Kind)
	}
}

// assembleFallback generates each child separately, ordered by
// descending top Z-level then ascending radial distance from the
// component center, cutting inner to outer to minimize retraction.
func (g *Generator) assembleFallback(b *strings.Builder, pos element.Vec3, d element.ComponentData, s machining.Settings) {
	compCenter := element.Extract(element.Element{
		Kind:     element.ShapeComponent,
		Position: pos,
		Data:     d,
	}).Center

	type placed struct {
		el   element.Element
		geom element.Geometry
		dist float64
	}
	children := make([]placed, 0, len(d.Children))
	for _, child := range d.Children {
		moved := child
		moved.Position = pos.Add(child.Position)
		geom := element.Extract(moved)
		children = append(children, placed{
			el:   moved,
			geom: geom,
			dist: geom.Center.XY().Distance(compCenter.XY()),
		})
	}

	sort.SliceStable(children, func(i, j int) bool {
		ti, tj := children[i].geom.Bounds.Max.Z, children[j].geom.Bounds.Max.Z
		if ti != tj {
			return ti > tj
		}
		return children[i].dist < children[j].dist
	})

	for _, c := range children {
		label := c.el.Kind.String()
		if c.el.Name != "" {
			label += " " + c.el.Name
		}
		writeLine(b, gcode.Comment("child "+label))
		g.emitElement(b, c.el, c.geom, machining.Resolve(s, c.geom))
	}
}

// Package kernel defines the abstract geometry kernel interface used
// by the component assembler. An implementation (sdfx) provides solid
// primitives and boolean union behind this interface, so the slicing
// code never depends on a concrete modeling library.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives, all centered on the origin.
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid
	Cone(height, baseRadius float64) Solid

	// Union returns the boolean union of two solids.
	Union(a, b Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh converts a solid to a boundary triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}

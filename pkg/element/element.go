package element

// ShapeKind enumerates the closed set of element shapes.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota // flat 2D rectangle
	ShapeCircle                     // flat 2D circle
	ShapePolygon                    // flat regular n-gon
	ShapeLine                       // open 2D segment
	ShapeBox                        // rectangular solid
	ShapeSphere
	ShapeCylinder
	ShapeCone
	ShapeTorus
	ShapePyramid
	ShapePrism
	ShapeHemisphere
	ShapeEllipsoid
	ShapeCapsule
	ShapeComponent // composite of owned children
	ShapeMesh      // imported triangle mesh, sliced by bounds only
	ShapeArc
	ShapeEllipse
	ShapeTriangle
	ShapeText
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	case ShapeLine:
		return "line"
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeCone:
		return "cone"
	case ShapeTorus:
		return "torus"
	case ShapePyramid:
		return "pyramid"
	case ShapePrism:
		return "prism"
	case ShapeHemisphere:
		return "hemisphere"
	case ShapeEllipsoid:
		return "ellipsoid"
	case ShapeCapsule:
		return "capsule"
	case ShapeComponent:
		return "component"
	case ShapeMesh:
		return "mesh"
	case ShapeArc:
		return "arc"
	case ShapeEllipse:
		return "ellipse"
	case ShapeTriangle:
		return "triangle"
	case ShapeText:
		return "text"
	default:
		return "unknown"
	}
}

// Element is a single parametric shape in the document model.
// Position is the shape center; for children of a component it is
// relative to the parent. Data carries the kind-specific payload.
type Element struct {
	Kind     ShapeKind `json:"kind"`
	Name     string    `json:"name,omitempty"`
	Position Vec3      `json:"position"`
	Data     ShapeData `json:"data"`
}

// ShapeData is the interface for kind-specific shape payloads.
type ShapeData interface {
	shapeData() // marker method restricting implementations to this package
}

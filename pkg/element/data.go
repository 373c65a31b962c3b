package element

// ---------------------------------------------------------------------------
// Flat (2D) shapes
// ---------------------------------------------------------------------------

// RectangleData is a flat rectangle in the XY plane.
type RectangleData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (RectangleData) shapeData() {}

// CircleData is a flat circle in the XY plane.
type CircleData struct {
	Radius float64 `json:"radius"`
}

func (CircleData) shapeData() {}

// PolygonData is a flat regular n-gon inscribed in a circle.
type PolygonData struct {
	Sides  int     `json:"sides"`
	Radius float64 `json:"radius"`
}

func (PolygonData) shapeData() {}

// LineData is an open segment from the element position to End.
// End is relative to the element position.
type LineData struct {
	End Vec3 `json:"end"`
}

func (LineData) shapeData() {}

// ArcData is a partial circular sweep. Angles are in degrees; an end
// angle smaller than the start angle wraps by +360.
type ArcData struct {
	Radius     float64 `json:"radius"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

func (ArcData) shapeData() {}

// EllipseData is a flat ellipse, optionally a partial sweep.
// Zero start and end angles mean a full ellipse.
type EllipseData struct {
	RadiusX    float64 `json:"radius_x"`
	RadiusY    float64 `json:"radius_y"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

func (EllipseData) shapeData() {}

// TriangleData is a flat triangle. When Points has exactly three
// entries they are used verbatim (relative to the element position);
// otherwise an equilateral triangle of the given size is synthesized.
type TriangleData struct {
	Points []Vec2  `json:"points,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

func (TriangleData) shapeData() {}

// TextData is an engraved label. The outline is approximated by the
// bounding rectangle of the rendered string plus an internal zig-zag
// fill; glyph outlining is out of scope.
type TextData struct {
	Text   string  `json:"text"`
	Size   float64 `json:"size"` // glyph height in mm
	Depth  float64 `json:"depth,omitempty"`
}

func (TextData) shapeData() {}

// ---------------------------------------------------------------------------
// Solids
// ---------------------------------------------------------------------------

// BoxData is a rectangular solid centered on the element position.
type BoxData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

func (BoxData) shapeData() {}

// SphereData is a full sphere.
type SphereData struct {
	Radius float64 `json:"radius"`
}

func (SphereData) shapeData() {}

// CylinderData is a vertical cylinder.
type CylinderData struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func (CylinderData) shapeData() {}

// ConeData is a vertical cone with the apex on top.
type ConeData struct {
	Radius float64 `json:"radius"` // base radius
	Height float64 `json:"height"`
}

func (ConeData) shapeData() {}

// TorusData is a horizontal torus around the element position.
type TorusData struct {
	MajorRadius float64 `json:"major_radius"` // center of tube to torus axis
	MinorRadius float64 `json:"minor_radius"` // tube radius
}

func (TorusData) shapeData() {}

// PyramidData is a vertical pyramid with a rectangular base and the
// apex on top.
type PyramidData struct {
	BaseWidth  float64 `json:"base_width"`
	BaseHeight float64 `json:"base_height"`
	Height     float64 `json:"height"`
}

func (PyramidData) shapeData() {}

// PrismData is a vertical prism with a regular polygonal section.
type PrismData struct {
	Sides  int     `json:"sides"`
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func (PrismData) shapeData() {}

// HemisphereData is a dome: flat face down, pole up.
type HemisphereData struct {
	Radius float64 `json:"radius"`
}

func (HemisphereData) shapeData() {}

// EllipsoidData is a full ellipsoid with per-axis semi-radii.
type EllipsoidData struct {
	RadiusX float64 `json:"radius_x"`
	RadiusY float64 `json:"radius_y"`
	RadiusZ float64 `json:"radius_z"`
}

func (EllipsoidData) shapeData() {}

// CapsuleData is a vertical cylinder capped by two hemispheres.
// Height is the cylindrical body length, caps excluded.
type CapsuleData struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

func (CapsuleData) shapeData() {}

// MeshData is an imported triangle mesh. Only the vertex cloud is kept;
// slicing uses its bounding box.
type MeshData struct {
	Vertices []Vec3 `json:"vertices,omitempty"`
}

func (MeshData) shapeData() {}

// ---------------------------------------------------------------------------
// Composite
// ---------------------------------------------------------------------------

// ComponentData is an ordered group of exclusively owned children.
// Child positions are relative to the component. When Dimensions is
// set it overrides the bounding box derived from the children.
type ComponentData struct {
	Children   []Element `json:"children,omitempty"`
	Dimensions *Vec3     `json:"dimensions,omitempty"`
}

func (ComponentData) shapeData() {}

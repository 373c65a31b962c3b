package element

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// allKinds covers every shape kind with a representative payload.
func allKinds() []Element {
	return []Element{
		{Kind: ShapeRectangle, Data: RectangleData{Width: 20, Height: 10}},
		{Kind: ShapeCircle, Data: CircleData{Radius: 10}},
		{Kind: ShapePolygon, Data: PolygonData{Sides: 6, Radius: 10}},
		{Kind: ShapeLine, Data: LineData{End: Vec3{X: 10, Y: 10}}},
		{Kind: ShapeBox, Data: BoxData{Width: 50, Height: 30, Depth: 20}},
		{Kind: ShapeSphere, Data: SphereData{Radius: 25}},
		{Kind: ShapeCylinder, Data: CylinderData{Radius: 10, Height: 40}},
		{Kind: ShapeCone, Data: ConeData{Radius: 15, Height: 30}},
		{Kind: ShapeTorus, Data: TorusData{MajorRadius: 20, MinorRadius: 5}},
		{Kind: ShapePyramid, Data: PyramidData{BaseWidth: 40, BaseHeight: 30, Height: 25}},
		{Kind: ShapePrism, Data: PrismData{Sides: 5, Radius: 12, Height: 30}},
		{Kind: ShapeHemisphere, Data: HemisphereData{Radius: 10}},
		{Kind: ShapeEllipsoid, Data: EllipsoidData{RadiusX: 10, RadiusY: 20, RadiusZ: 5}},
		{Kind: ShapeCapsule, Data: CapsuleData{Radius: 5, Height: 10}},
		{Kind: ShapeComponent, Data: ComponentData{Children: []Element{
			{Kind: ShapeBox, Data: BoxData{Width: 10, Height: 10, Depth: 10}},
		}}},
		{Kind: ShapeMesh, Data: MeshData{Vertices: []Vec3{{X: 1}, {Y: 2}, {Z: 3}}}},
		{Kind: ShapeArc, Data: ArcData{Radius: 10, StartAngle: 0, EndAngle: 90}},
		{Kind: ShapeEllipse, Data: EllipseData{RadiusX: 15, RadiusY: 10}},
		{Kind: ShapeTriangle, Data: TriangleData{Size: 10}},
		{Kind: ShapeText, Data: TextData{Text: "AB", Size: 10}},
	}
}

func TestExtractTotal(t *testing.T) {
	for _, el := range allKinds() {
		t.Run(el.Kind.String(), func(t *testing.T) {
			g := Extract(el)
			if g.Bounds.Min.X > g.Bounds.Max.X ||
				g.Bounds.Min.Y > g.Bounds.Max.Y ||
				g.Bounds.Min.Z > g.Bounds.Max.Z {
				t.Errorf("inverted bounds: %+v", g.Bounds)
			}
		})
	}

	t.Run("nil payload", func(t *testing.T) {
		g := Extract(Element{Kind: ShapeBox, Position: Vec3{X: 3}})
		if g.Bounds.Width() != fallbackSize {
			t.Errorf("fallback width = %g, want %g", g.Bounds.Width(), fallbackSize)
		}
		if g.Center.X != 3 {
			t.Errorf("fallback center X = %g, want 3", g.Center.X)
		}
	})
}

func TestExtractRectangle(t *testing.T) {
	g := Extract(Element{
		Kind:     ShapeRectangle,
		Position: Vec3{X: 5, Y: 5},
		Data:     RectangleData{Width: 20, Height: 10},
	})

	want := Geometry{
		Center: Vec3{X: 5, Y: 5},
		Bounds: Bounds{Min: Vec3{X: -5, Y: 0}, Max: Vec3{X: 15, Y: 10}},
		Path: []Vec2{
			{X: -5, Y: 0}, {X: 15, Y: 0}, {X: 15, Y: 10}, {X: -5, Y: 10}, {X: -5, Y: 0},
		},
		Closed: true,
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSphere(t *testing.T) {
	g := Extract(Element{Kind: ShapeSphere, Data: SphereData{Radius: 25}})
	if g.Radius != 25 {
		t.Errorf("radius = %g, want 25", g.Radius)
	}
	if g.Bounds.Min.Z != -25 || g.Bounds.Max.Z != 25 {
		t.Errorf("Z bounds = [%g, %g], want [-25, 25]", g.Bounds.Min.Z, g.Bounds.Max.Z)
	}
}

func TestExtractHemisphereSitsOnPlane(t *testing.T) {
	g := Extract(Element{
		Kind:     ShapeHemisphere,
		Position: Vec3{Z: 2},
		Data:     HemisphereData{Radius: 10},
	})
	if g.Bounds.Min.Z != 2 || g.Bounds.Max.Z != 12 {
		t.Errorf("Z bounds = [%g, %g], want [2, 12]", g.Bounds.Min.Z, g.Bounds.Max.Z)
	}
}

func TestExtractComponent(t *testing.T) {
	t.Run("union of children", func(t *testing.T) {
		g := Extract(Element{
			Kind:     ShapeComponent,
			Position: Vec3{X: 100},
			Data: ComponentData{Children: []Element{
				{Kind: ShapeBox, Position: Vec3{X: -10}, Data: BoxData{Width: 10, Height: 10, Depth: 10}},
				{Kind: ShapeBox, Position: Vec3{X: 10}, Data: BoxData{Width: 10, Height: 10, Depth: 10}},
			}},
		})
		if g.Bounds.Min.X != 85 || g.Bounds.Max.X != 115 {
			t.Errorf("X bounds = [%g, %g], want [85, 115]", g.Bounds.Min.X, g.Bounds.Max.X)
		}
		if g.Center.X != 100 {
			t.Errorf("center X = %g, want 100", g.Center.X)
		}
	})

	t.Run("explicit dimensions win", func(t *testing.T) {
		dims := Vec3{X: 60, Y: 40, Z: 20}
		g := Extract(Element{
			Kind: ShapeComponent,
			Data: ComponentData{
				Children:   []Element{{Kind: ShapeBox, Data: BoxData{Width: 500, Height: 500, Depth: 500}}},
				Dimensions: &dims,
			},
		})
		if g.Bounds.Width() != 60 || g.Bounds.Depth() != 20 {
			t.Errorf("bounds = %gx%gx%g, want 60x40x20",
				g.Bounds.Width(), g.Bounds.Height(), g.Bounds.Depth())
		}
	})

	t.Run("empty component falls back", func(t *testing.T) {
		g := Extract(Element{Kind: ShapeComponent, Data: ComponentData{}})
		if g.Bounds.Width() != fallbackSize {
			t.Errorf("width = %g, want fallback %g", g.Bounds.Width(), fallbackSize)
		}
	})
}

func TestNgonPath(t *testing.T) {
	pts := NgonPath(Vec2{}, 10, 4)
	if len(pts) != 5 {
		t.Fatalf("len = %d, want 5 (closed square)", len(pts))
	}
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("path not closed: first %v last %v", pts[0], pts[len(pts)-1])
	}
	if math.Abs(pts[0].X-10) > 1e-9 || math.Abs(pts[0].Y) > 1e-9 {
		t.Errorf("first vertex = %v, want (10, 0)", pts[0])
	}

	// Degenerate side counts are raised to a triangle.
	if got := len(NgonPath(Vec2{}, 10, 1)); got != 4 {
		t.Errorf("sides=1 len = %d, want 4", got)
	}
}

func TestTrianglePoints(t *testing.T) {
	t.Run("explicit points", func(t *testing.T) {
		d := TriangleData{Points: []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}}
		pts := TrianglePoints(Vec2{X: 1, Y: 1}, d)
		want := []Vec2{{X: 1, Y: 1}, {X: 11, Y: 1}, {X: 1, Y: 11}}
		if diff := cmp.Diff(want, pts); diff != "" {
			t.Errorf("points mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("equilateral from size", func(t *testing.T) {
		pts := TrianglePoints(Vec2{}, TriangleData{Size: 10})
		if len(pts) != 3 {
			t.Fatalf("len = %d, want 3", len(pts))
		}
		r := 10 / math.Sqrt(3)
		if math.Abs(pts[0].X) > 1e-9 || math.Abs(pts[0].Y-r) > 1e-9 {
			t.Errorf("apex = %v, want (0, %g)", pts[0], r)
		}
		// All edges equal the requested size.
		for i := 0; i < 3; i++ {
			edge := pts[i].Distance(pts[(i+1)%3])
			if math.Abs(edge-10) > 1e-9 {
				t.Errorf("edge %d = %g, want 10", i, edge)
			}
		}
	})
}

func TestTextExtent(t *testing.T) {
	tests := []struct {
		text  string
		size  float64
		wantW float64
		wantH float64
	}{
		{"AB", 10, 12, 10},
		{"", 10, 6, 10},
		{"X", 0, 6, 10}, // zero size falls back
	}
	for _, tt := range tests {
		w, h := TextExtent(tt.text, tt.size)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("TextExtent(%q, %g) = (%g, %g), want (%g, %g)",
				tt.text, tt.size, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestShapeKindString(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		want string
	}{
		{ShapeRectangle, "rectangle"},
		{ShapeComponent, "component"},
		{ShapeHemisphere, "hemisphere"},
		{ShapeKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ShapeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

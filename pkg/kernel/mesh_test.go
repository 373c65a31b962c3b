package kernel

import "testing"

func TestMeshCounts(t *testing.T) {
	m := &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}
	if m.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", m.VertexCount())
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", m.TriangleCount())
	}
	if m.IsEmpty() {
		t.Error("IsEmpty = true for populated mesh")
	}
}

func TestMeshEmpty(t *testing.T) {
	m := &Mesh{}
	if !m.IsEmpty() {
		t.Error("IsEmpty = false for empty mesh")
	}
	if m.VertexCount() != 0 || m.TriangleCount() != 0 {
		t.Errorf("counts = %d/%d, want 0/0", m.VertexCount(), m.TriangleCount())
	}
}

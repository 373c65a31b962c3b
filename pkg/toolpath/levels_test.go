package toolpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestZLevels(t *testing.T) {
	tests := []struct {
		name                      string
		top, extent, depth, stepD float64
		want                      []float64
	}{
		{
			name: "exact division",
			top:  0, extent: 10, depth: 10, stepD: 5,
			want: []float64{-5, -10},
		},
		{
			name: "last level clipped",
			top:  0, extent: 10, depth: 10, stepD: 4,
			want: []float64{-4, -8, -10},
		},
		{
			name: "depth clamped to extent",
			top:  0, extent: 6, depth: 10, stepD: 4,
			want: []float64{-4, -6},
		},
		{
			name: "extent clamped to depth",
			top:  20, extent: 50, depth: 10, stepD: 5,
			want: []float64{15, 10},
		},
		{
			name: "single shallow pass",
			top:  0, extent: 1, depth: 1, stepD: 5,
			want: []float64{-1},
		},
		{
			name: "zero depth",
			top:  0, extent: 10, depth: 0, stepD: 5,
			want: nil,
		},
		{
			name: "zero stepdown",
			top:  0, extent: 10, depth: 10, stepD: 0,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := zLevels(tt.top, tt.extent, tt.depth, tt.stepD)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("zLevels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestZLevelsProperties(t *testing.T) {
	// Strictly decreasing, and the last level lands exactly at
	// top - min(depth, extent).
	cases := []struct{ top, extent, depth, stepD float64 }{
		{25, 50, 10, 5},
		{0, 7.5, 20, 2},
		{-3, 4, 4, 1.5},
		{10, 10, 10, 3},
	}
	for _, c := range cases {
		zs := zLevels(c.top, c.extent, c.depth, c.stepD)
		if len(zs) == 0 {
			t.Fatalf("no levels for %+v", c)
		}
		for i := 1; i < len(zs); i++ {
			if zs[i] >= zs[i-1] {
				t.Errorf("%+v: levels not strictly decreasing: %v", c, zs)
			}
		}
		wantLast := c.top - math.Min(c.depth, c.extent)
		if math.Abs(zs[len(zs)-1]-wantLast) > 1e-9 {
			t.Errorf("%+v: last level = %g, want %g", c, zs[len(zs)-1], wantLast)
		}
	}
}

func TestSweepPoints(t *testing.T) {
	t.Run("full circle closes", func(t *testing.T) {
		pts := sweepPoints(element2(0, 0), 10, 10, 0, 360)
		if len(pts) < minTessellationPoints {
			t.Fatalf("len = %d, want >= %d", len(pts), minTessellationPoints)
		}
		first, last := pts[0], pts[len(pts)-1]
		if math.Abs(first.X-last.X) > 1e-9 || math.Abs(first.Y-last.Y) > 1e-9 {
			t.Errorf("sweep does not close: first %v last %v", first, last)
		}
	})

	t.Run("wrapping sweep", func(t *testing.T) {
		// 350 to 10 degrees wraps through zero: a 20 degree sweep.
		pts := sweepPoints(element2(0, 0), 10, 10, 350, 10)
		if len(pts) < 2 {
			t.Fatalf("len = %d, want >= 2", len(pts))
		}
		end := pts[len(pts)-1]
		wantX := 10 * math.Cos(10*math.Pi/180)
		wantY := 10 * math.Sin(10*math.Pi/180)
		if math.Abs(end.X-wantX) > 1e-9 || math.Abs(end.Y-wantY) > 1e-9 {
			t.Errorf("sweep end = %v, want (%g, %g)", end, wantX, wantY)
		}
	})

	t.Run("points on the ellipse", func(t *testing.T) {
		rx, ry := 20.0, 8.0
		for _, p := range sweepPoints(element2(0, 0), rx, ry, 0, 360) {
			v := (p.X/rx)*(p.X/rx) + (p.Y/ry)*(p.Y/ry)
			if math.Abs(v-1) > 1e-9 {
				t.Fatalf("point %v off the ellipse (%g)", p, v)
			}
		}
	})
}

func TestOffsetPath(t *testing.T) {
	square := rectOutline(element2(0, 0), 20, 20)

	t.Run("center is identity", func(t *testing.T) {
		s := testSettings()
		got, ok := offsetPath(square, s)
		if !ok {
			t.Fatal("offsetPath failed")
		}
		if diff := cmp.Diff(square, got); diff != "" {
			t.Errorf("center offset changed path (-want +got):\n%s", diff)
		}
	})

	t.Run("inside shrinks", func(t *testing.T) {
		s := testSettings()
		s.Offset = insideOffset()
		got, ok := offsetPath(square, s)
		if !ok {
			t.Fatal("offsetPath failed")
		}
		for i, p := range got {
			if math.Abs(p.X) >= math.Abs(square[i].X)+1e-9 && square[i].X != 0 {
				t.Errorf("point %d not shrunk: %v vs %v", i, p, square[i])
			}
		}
	})

	t.Run("collapse reported", func(t *testing.T) {
		tiny := rectOutline(element2(0, 0), 2, 2)
		s := testSettings()
		s.Offset = insideOffset()
		if _, ok := offsetPath(tiny, s); ok {
			t.Error("expected collapsed path to report not ok")
		}
	})
}

package analyze

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/element"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/machining"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/toolpath"
)

func join(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestAnalyzeCounts(t *testing.T) {
	in := join(
		"G0 X0.000 Y0.000 Z5.000",
		"G1 Z-1.000 F300.000",
		"G1 X10.000 F600.000",
		"G2 X10.000 Y0.000 I-5.000 J0.000 F600.000",
		"; done",
		"M5",
	)
	r := Analyze(in)

	if r.Lines != 6 {
		t.Errorf("Lines = %d, want 6", r.Lines)
	}
	if r.Comments != 1 {
		t.Errorf("Comments = %d, want 1", r.Comments)
	}
	if r.RapidMoves != 1 || r.LinearMoves != 2 || r.ArcMoves != 1 {
		t.Errorf("moves = %d/%d/%d, want 1/2/1", r.RapidMoves, r.LinearMoves, r.ArcMoves)
	}

	// 6mm plunge + 10mm cut + one full 5mm-radius circle.
	wantDist := 6 + 10 + 2*math.Pi*5
	if math.Abs(r.Distance-wantDist) > 1e-9 {
		t.Errorf("Distance = %g, want %g", r.Distance, wantDist)
	}

	// 6/300 + 10/600 + circumference/600, in seconds.
	wantTime := 6.0/300*60 + 10.0/600*60 + (2*math.Pi*5)/600*60
	if math.Abs(r.EstimatedTime-wantTime) > 1e-9 {
		t.Errorf("EstimatedTime = %g, want %g", r.EstimatedTime, wantTime)
	}

	if r.MinZ != -1 || r.MaxZ != 5 {
		t.Errorf("Z range = [%g, %g], want [-1, 5]", r.MinZ, r.MaxZ)
	}
	if diff := cmp.Diff([]float64{300, 600}, r.FeedRates); diff != "" {
		t.Errorf("FeedRates mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeEmbedsWarnings(t *testing.T) {
	// No retract, no M9: the validator's findings surface in the report.
	r := Analyze(join("G1 X5.000 F100.000", "M5"))
	got := map[string]bool{}
	for _, w := range r.Warnings {
		got[w.Rule] = true
	}
	if !got["safe-height"] || !got["coolant-off"] {
		t.Errorf("warnings = %v, want safe-height and coolant-off", r.Warnings)
	}
	if got["spindle-stop"] {
		t.Errorf("spindle-stop flagged despite M5: %v", r.Warnings)
	}
}

func TestAnalyzeEmptyProgram(t *testing.T) {
	r := Analyze("")
	if r.Lines != 0 || r.Distance != 0 || r.EstimatedTime != 0 {
		t.Errorf("non-zero stats for empty program: %+v", r)
	}
	if r.MinZ != 0 || r.MaxZ != 0 {
		t.Errorf("Z range = [%g, %g], want [0, 0]", r.MinZ, r.MaxZ)
	}
}

func TestAnalyzeRapidTime(t *testing.T) {
	// A 300mm rapid at the assumed 3000mm/min traverse takes 6 seconds.
	in := join(
		"G0 X0.000 Y0.000 Z0.000",
		"G0 X300.000",
	)
	r := Analyze(in)
	if math.Abs(r.EstimatedTime-6) > 1e-9 {
		t.Errorf("EstimatedTime = %g, want 6", r.EstimatedTime)
	}
}

func TestAnalyzeFeedRatesUnique(t *testing.T) {
	in := join(
		"G1 X1.000 F600.000",
		"G1 X2.000 F300.000",
		"G1 X3.000 F600.000",
	)
	r := Analyze(in)
	if diff := cmp.Diff([]float64{300, 600}, r.FeedRates); diff != "" {
		t.Errorf("FeedRates mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeGeneratedProgram(t *testing.T) {
	prog, err := toolpath.New(nil).Program([]element.Element{
		{Kind: element.ShapeSphere, Data: element.SphereData{Radius: 25}},
	}, machining.Settings{
		ToolDiameter: 6, Depth: 10, StepDown: 5,
		FeedRate: 800, PlungeRate: 300,
	})
	if err != nil {
		t.Fatal(err)
	}
	r := Analyze(prog)

	if r.ArcMoves != 2 {
		t.Errorf("ArcMoves = %d, want 2", r.ArcMoves)
	}
	if r.MinZ != 15 {
		t.Errorf("MinZ = %g, want 15 (deepest pass)", r.MinZ)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("generated program flagged: %v", r.Warnings)
	}
	if r.Distance <= 0 || r.EstimatedTime <= 0 {
		t.Errorf("degenerate totals: %+v", r)
	}
}

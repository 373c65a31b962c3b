package validate

import (
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

func rules(ws []Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Rule)
	}
	return out
}

func TestCheckCleanProgram(t *testing.T) {
	in := join(
		"G0 X0.000 Y0.000 Z30.000",
		"G1 Z-2.000 F300.000",
		"G1 X10.000 F800.000",
		"G0 Z30.000",
		"M5",
		"M9",
		"M30",
	)
	if got := Check(in); len(got) != 0 {
		t.Errorf("clean program flagged: %v", got)
	}
}

func TestCheckEmptyProgram(t *testing.T) {
	got := Check("")
	want := []string{"safe-height", "spindle-stop", "coolant-off"}
	if diff := cmp.Diff(want, rules(got)); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckMissingSafeHeight(t *testing.T) {
	in := join(
		"G0 X0.000 Y0.000 Z5.000",
		"G1 Z-2.000 F300.000",
		"M5",
		"M9",
	)
	got := Check(in)
	if len(got) != 1 || got[0].Rule != "safe-height" {
		t.Fatalf("warnings = %v, want single safe-height", got)
	}
	if !strings.Contains(got[0].Message, "Z10") {
		t.Errorf("message does not name the safe height: %q", got[0].Message)
	}
}

func TestCheckCoolantMessage(t *testing.T) {
	in := join("G0 Z30.000", "M5")
	got := Check(in)
	if len(got) != 1 || got[0].Rule != "coolant-off" {
		t.Fatalf("warnings = %v, want single coolant-off", got)
	}
	msg := got[0].Message
	if !strings.Contains(msg, "coolant") || !strings.Contains(msg, "M9") {
		t.Errorf("coolant message unclear: %q", msg)
	}
}

func TestCheckRapidPlunge(t *testing.T) {
	t.Run("flagged with line number", func(t *testing.T) {
		in := join(
			"G0 Z20.000",
			"G0 Z5.000",
			"M5",
			"M9",
		)
		got := Check(in)
		var found *Warning
		for i := range got {
			if got[i].Rule == "rapid-plunge" {
				found = &got[i]
			}
		}
		if found == nil {
			t.Fatalf("rapid-plunge not flagged: %v", got)
		}
		if found.Line != 2 {
			t.Errorf("line = %d, want 2", found.Line)
		}
	})

	t.Run("cutting move resets the chain", func(t *testing.T) {
		in := join(
			"G0 Z20.000",
			"G1 Z-2.000 F300.000",
			"G0 Z2.000",
			"M5",
			"M9",
		)
		for _, w := range Check(in) {
			if w.Rule == "rapid-plunge" {
				t.Errorf("reset chain still flagged: %v", w)
			}
		}
	})

	t.Run("small drop tolerated", func(t *testing.T) {
		in := join(
			"G0 Z20.000",
			"G0 Z16.000",
			"M5",
			"M9",
		)
		for _, w := range Check(in) {
			if w.Rule == "rapid-plunge" {
				t.Errorf("tolerated drop flagged: %v", w)
			}
		}
	})
}

func TestCheckDeterministic(t *testing.T) {
	in := join("G1 X5.000 F100.000", "G0 Z2.000")
	a := Check(in)
	b := Check(in)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Check not deterministic (-first +second):\n%s", diff)
	}
}

func TestCheckGeneratedProgramIsClean(t *testing.T) {
	prog, err := toolpath.New(nil).Program([]element.Element{
		{Kind: element.ShapeBox, Data: element.BoxData{Width: 40, Height: 20, Depth: 10}},
	}, machining.Settings{
		ToolDiameter: 6, Depth: 10, StepDown: 5,
		FeedRate: 800, PlungeRate: 300,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := Check(prog); len(got) != 0 {
		t.Errorf("generated program flagged: %v\n%s", got, prog)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Rule: "rapid-plunge", Line: 7, Message: "too deep"}
	if got := w.String(); got != "[rapid-plunge] line 7: too deep" {
		t.Errorf("String = %q", got)
	}
	w = Warning{Rule: "spindle-stop", Message: "missing"}
	if got := w.String(); got != "[spindle-stop] missing" {
		t.Errorf("String = %q", got)
	}
}

package gcode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Instruction
	}{
		{
			name: "rapid",
			in:   "G0 X10 Y20",
			want: Instruction{Raw: "G0 X10 Y20", Code: "G0", X: Float(10), Y: Float(20)},
		},
		{
			name: "leading zeros normalized",
			in:   "G00 Z5.5",
			want: Instruction{Raw: "G00 Z5.5", Code: "G0", Z: Float(5.5)},
		},
		{
			name: "m-code",
			in:   "M05",
			want: Instruction{Raw: "M05", Code: "M5"},
		},
		{
			name: "arc with center offsets",
			in:   "G2 X1 Y2 I3 J4 F500",
			want: Instruction{Raw: "G2 X1 Y2 I3 J4 F500", Code: "G2",
				X: Float(1), Y: Float(2), I: Float(3), J: Float(4), F: Float(500)},
		},
		{
			name: "comment only",
			in:   "; pass Z-2.000",
			want: Instruction{Raw: "; pass Z-2.000", Opaque: true, Comment: "pass Z-2.000"},
		},
		{
			name: "blank",
			in:   "",
			want: Instruction{Opaque: true},
		},
		{
			name: "foreign syntax is opaque",
			in:   "BEGIN PGM TOOLPATH MM",
			want: Instruction{Raw: "BEGIN PGM TOOLPATH MM", Opaque: true},
		},
		{
			name: "malformed operand is absent",
			in:   "G1 Xabc Y5",
			want: Instruction{Raw: "G1 Xabc Y5", Code: "G1", Y: Float(5)},
		},
		{
			name: "trailing comment",
			in:   "G0 Z30 ; retract",
			want: Instruction{Raw: "G0 Z30 ; retract", Code: "G0", Z: Float(30), Comment: "retract"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseDropsTrailingEmpty(t *testing.T) {
	ins := Parse("G0 X1\nG1 X2 F100\n")
	if len(ins) != 2 {
		t.Fatalf("len = %d, want 2", len(ins))
	}
	if ins[0].Code != "G0" || ins[1].Code != "G1" {
		t.Errorf("codes = %q, %q", ins[0].Code, ins[1].Code)
	}
}

func TestIsMotion(t *testing.T) {
	tests := []struct {
		line  string
		move  bool
		rapid bool
	}{
		{"G0 X1", true, true},
		{"G1 X1 F100", true, false},
		{"G2 X1 I1 F100", true, false},
		{"G3 X1 I1 F100", true, false},
		{"G81 X0 Y0 Z-5 R2 F300", false, false},
		{"M5", false, false},
		{"; comment", false, false},
	}
	for _, tt := range tests {
		in := ParseLine(tt.line)
		if in.IsMotion() != tt.move {
			t.Errorf("%q IsMotion = %v, want %v", tt.line, in.IsMotion(), tt.move)
		}
		if in.IsRapid() != tt.rapid {
			t.Errorf("%q IsRapid = %v, want %v", tt.line, in.IsRapid(), tt.rapid)
		}
	}
}

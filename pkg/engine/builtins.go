package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/element"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/machining"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/toolpath"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before handing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids registering keyword symbols as globals, which would
//     conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: safe-height -> safe_height
//     zygomys does not allow hyphens in identifiers (it interprets
//     them as the subtraction operator).
//
// Both transformations respect string literal boundaries and line
// comments, and ; line comments become // comments for zygomys.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers, leaving minus operators alone.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps an element.Vec3.
type sexpVec3 struct {
	vec element.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpElement wraps an element.Element so shape builtins can hand
// their results to component and gcode.
type sexpElement struct {
	el element.Element
}

func (e *sexpElement) SexpString(ps *zygo.PrintState) string {
	if e.el.Name != "" {
		return fmt.Sprintf("(%s %q)", e.el.Kind, e.el.Name)
	}
	return fmt.Sprintf("(%s)", e.el.Kind)
}
func (e *sexpElement) Type() *zygo.RegisteredType { return nil }

// sexpTool wraps machining.Settings built by the tool builtin.
type sexpTool struct {
	settings machining.Settings
}

func (t *sexpTool) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(tool :diameter %.1f)", t.settings.ToolDiameter)
}
func (t *sexpTool) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string, handling
// both preprocessed keywords (__kw_climb) and plain strings ("climb").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toBool extracts a bool from a Sexp. A bare trailing keyword flag
// (SexpNull) counts as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (element.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return element.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// kwFloat copies a numeric keyword argument into dst when present.
func kwFloat(pa kwArgs, fn, key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = f
	return nil
}

// elementCommon applies the shared :at and :name keywords to a shape
// element under construction.
func elementCommon(pa kwArgs, fn string, el *element.Element) error {
	if v, ok := pa.kw["at"]; ok {
		vec, err := toVec3(v)
		if err != nil {
			return fmt.Errorf("%s: at: %w", fn, err)
		}
		el.Position = vec
	}
	if v, ok := pa.kw["name"]; ok {
		s, err := toString(v)
		if err != nil {
			return fmt.Errorf("%s: name: %w", fn, err)
		}
		el.Name = s
	}
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// evalContext carries the output accumulator and the toolpath
// generator through one evaluation.
type evalContext struct {
	gen *toolpath.Generator
	out strings.Builder
}

// registerBuiltins installs the DSL builtins into a zygomys
// environment. Source code must be preprocessed with preprocessSource
// before evaluation so that :keyword tokens arrive as recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, ctx *evalContext) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: element.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (tool :diameter 6 :depth 10 :stepdown 2 :feed 800 :plunge 300
	//       :offset :inside :direction :climb :operation :pocket
	//       :safe-height 30 :spindle 12000 :coolant true :dialect :fanuc)
	// -----------------------------------------------------------------------
	env.AddFunction("tool", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var s machining.Settings

		for key, dst := range map[string]*float64{
			"diameter":    &s.ToolDiameter,
			"depth":       &s.Depth,
			"stepdown":    &s.StepDown,
			"feed":        &s.FeedRate,
			"plunge":      &s.PlungeRate,
			"safe-height": &s.SafeHeight,
			"spindle":     &s.SpindleSpeed,
		} {
			if err := kwFloat(pa, "tool", key, dst); err != nil {
				return zygo.SexpNull, err
			}
		}

		if v, ok := pa.kw["offset"]; ok {
			kw, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tool: offset: %w", err)
			}
			switch kw {
			case "center":
				s.Offset = machining.OffsetCenter
			case "inside":
				s.Offset = machining.OffsetInside
			case "outside":
				s.Offset = machining.OffsetOutside
			default:
				return zygo.SexpNull, fmt.Errorf("tool: invalid offset %q, expected center, inside, or outside", kw)
			}
		}
		if v, ok := pa.kw["direction"]; ok {
			kw, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tool: direction: %w", err)
			}
			switch kw {
			case "climb":
				s.Direction = machining.Climb
			case "conventional":
				s.Direction = machining.Conventional
			default:
				return zygo.SexpNull, fmt.Errorf("tool: invalid direction %q, expected climb or conventional", kw)
			}
		}
		if v, ok := pa.kw["operation"]; ok {
			kw, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tool: operation: %w", err)
			}
			switch kw {
			case "contour":
				s.Operation = machining.OpContour
			case "pocket":
				s.Operation = machining.OpPocket
			case "drill":
				s.Operation = machining.OpDrill
			default:
				return zygo.SexpNull, fmt.Errorf("tool: invalid operation %q, expected contour, pocket, or drill", kw)
			}
		}
		if v, ok := pa.kw["coolant"]; ok {
			on, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tool: coolant: %w", err)
			}
			s.Coolant = on
		}
		if v, ok := pa.kw["dialect"]; ok {
			kw, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tool: dialect: %w", err)
			}
			d, err := gcode.ParseDialect(kw)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tool: %w", err)
			}
			s.Dialect = d
		}

		return &sexpTool{settings: s}, nil
	})

	// -----------------------------------------------------------------------
	// Shape builtins. All accept :at (vec3 ...) and :name "label" plus
	// their dimensional keywords.
	// -----------------------------------------------------------------------

	// (rect :width 40 :height 20)
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d element.RectangleData
		if err := kwFloat(pa, "rect", "width", &d.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "rect", "height", &d.Height); err != nil {
			return zygo.SexpNull, err
		}
		el := element.Element{Kind: element.ShapeRectangle, Data: d}
		if err := elementCommon(pa, "rect", &el); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpElement{el: el}, nil
	})

	// (circle :radius 10)
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d element.CircleData
		if err := kwFloat(pa, "circle", "radius", &d.Radius); err != nil {
			return zygo.SexpNull, err
		}
		el := element.Element{Kind: element.ShapeCircle, Data: d}
		if err := elementCommon(pa, "circle", &el); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpElement{el: el}, nil
	})

	// (polygon :sides 6 :radius 15)
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d element.PolygonData
		var sides float64
		if err := kwFloat(pa, "polygon", "sides", &sides); err != nil {
			return zygo.SexpNull, err
		}
		d.Sides = int(sides)
		if err := kwFloat(pa, "polygon", "radius", &d.Radius); err != nil {
			return zygo.SexpNull, err
		}
		el := element.Element{Kind: element.ShapePolygon, Data: d}
		if err := elementCommon(pa, "polygon", &el); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpElement{el: el}, nil
	})

	// (box :width 50 :height 30 :depth 20)
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d element.BoxData
		if err := kwFloat(pa, "box", "width", &d.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "box", "height", &d.Height); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "box", "depth", &d.Depth); err != nil {
			return zygo.SexpNull, err
		}
		el := element.Element{Kind: element.ShapeBox, Data: d}
		if err := elementCommon(pa, "box", &el); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpElement{el: el}, nil
	})

	// (sphere :radius 25)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d element.SphereData
		if err := kwFloat(pa, "sphere", "radius", &d.Radius); err != nil {
			return zygo.SexpNull, err
		}
		el := element.Element{Kind: element.ShapeSphere, Data: d}
		if err := elementCommon(pa, "sphere", &el); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpElement{el: el}, nil
	})

	// (cylinder :radius 10 :height 40)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d element.CylinderData
		if err := kwFloat(pa, "cylinder", "radius", &d.Radius); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "cylinder", "height", &d.Height); err != nil {
			return zygo.SexpNull, err
		}
		el := element.Element{Kind: element.ShapeCylinder, Data: d}
		if err := elementCommon(pa, "cylinder", &el); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpElement{el: el}, nil
	})

	// (cone :radius 15 :height 30)
	env.AddFunction("cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d element.ConeData
		if err := kwFloat(pa, "cone", "radius", &d.Radius); err != nil {
			return zygo.SexpNull, err
		}
		if err := kwFloat(pa, "cone", "height", &d.Height); err != nil {
			return zygo.SexpNull, err
		}
		el := element.Element{Kind: element.ShapeCone, Data: d}
		if err := elementCommon(pa, "cone", &el); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpElement{el: el}, nil
	})

	// -----------------------------------------------------------------------
	// (component :name "bracket" :at (vec3 0 0 0) (box ...) (cylinder ...))
	// -----------------------------------------------------------------------
	env.AddFunction("component", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d element.ComponentData
		for i, arg := range pa.positional {
			child, ok := arg.(*sexpElement)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("component: child %d: expected element, got %T (%s)",
					i, arg, arg.SexpString(nil))
			}
			d.Children = append(d.Children, child.el)
		}
		if v, ok := pa.kw["dimensions"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("component: dimensions: %w", err)
			}
			d.Dimensions = &vec
		}
		el := element.Element{Kind: element.ShapeComponent, Data: d}
		if err := elementCommon(pa, "component", &el); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpElement{el: el}, nil
	})

	// -----------------------------------------------------------------------
	// (gcode :tool (tool ...) el1 el2 ...)
	//
	// Generates a complete program for the listed elements, appends it
	// to the evaluation output, and returns the program text.
	// -----------------------------------------------------------------------
	env.AddFunction("gcode", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		var settings machining.Settings
		if v, ok := pa.kw["tool"]; ok {
			t, ok := v.(*sexpTool)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("gcode: tool: expected tool settings, got %T (%s)",
					v, v.SexpString(nil))
			}
			settings = t.settings
		}

		var elements []element.Element
		for i, arg := range pa.positional {
			switch v := arg.(type) {
			case *sexpElement:
				elements = append(elements, v.el)
			case *sexpTool:
				// Tolerate settings passed positionally.
				settings = v.settings
			default:
				return zygo.SexpNull, fmt.Errorf("gcode: argument %d: expected element, got %T (%s)",
					i, arg, arg.SexpString(nil))
			}
		}
		if len(elements) == 0 {
			return zygo.SexpNull, fmt.Errorf("gcode requires at least one element")
		}

		program, err := ctx.gen.Program(elements, settings)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("gcode: %w", err)
		}
		ctx.out.WriteString(program)
		return &zygo.SexpStr{S: program}, nil
	})
}

// Package engine provides a sandboxed Lisp scripting surface for
// toolpath generation. It wraps zygomys: scripts build elements and
// tool settings with DSL builtins and emit full G-code programs.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/kernel/sdfx"
	"github.com/nikomatt69/cadcamfun-sub003/pkg/toolpath"
)

// EvalError represents a non-fatal error encountered during script
// evaluation, such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment for
// determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	gen        *toolpath.Generator
}

// NewEngine creates an Engine backed by the sdfx geometry kernel.
func NewEngine() *Engine {
	return &Engine{gen: toolpath.New(sdfx.New())}
}

// Evaluate runs a script and returns the concatenated G-code emitted
// by its (gcode ...) calls.
//
// Return semantics:
//   - On success: output + nil errors + nil error
//   - On parse/eval failure: "" + eval errors + nil error
//   - On fatal failure (timeout, panic): "" + nil + error
func (e *Engine) Evaluate(source string) (string, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		out, evalErrs, err := e.evaluate(source)
		ch <- evalResult{output: out, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (string, []EvalError, error) {
	// An empty script is a valid program that emits nothing.
	if strings.TrimSpace(source) == "" {
		return "", nil, nil
	}

	// Sandbox mode prevents scripts from touching the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	ctx := &evalContext{gen: e.gen}
	registerBuiltins(env, ctx)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return "", parseZygoError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return "", parseZygoError(err), nil
	}

	return ctx.out.String(), nil, nil
}

var lineRe = regexp.MustCompile(`line (\d+)`)

// parseZygoError converts a zygomys error into EvalErrors, pulling a
// line number out of the message when one is present.
func parseZygoError(err error) []EvalError {
	msg := err.Error()
	ee := EvalError{Message: msg}
	if m := lineRe.FindStringSubmatch(msg); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			ee.Line = n
		}
	}
	return []EvalError{ee}
}

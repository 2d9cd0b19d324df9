// Package engine evaluates orbishell parameter scripts. A script is a
// sandboxed zygomys Lisp program whose builtins name the configuration
// sections:
//
//	(def r 20)
//	(legs :outward-curve-mm 40 :bulge-radii-mm [18 (* r 1.5) 18])
//	(dome :style "open-dome")
//
// Evaluation yields config.Overrides; nothing in a script touches the
// filesystem or the geometry directly.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chazu/orbishell/pkg/config"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// Engine evaluates parameter scripts. It holds no interpreter state between
// calls; every evaluation runs in a fresh sandbox.
type Engine struct {
	timeout time.Duration
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{timeout: EvalTimeout}
}

type evalResult struct {
	overrides config.Overrides
	errors    []EvalError
	err       error
}

// Evaluate runs a parameter script and collects the overrides it sets.
//
// Return semantics:
//   - On success: returns overrides + nil errors + nil error
//   - On parse/eval failure: returns nil overrides + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (config.Overrides, []EvalError, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	return within(ctx, func() (config.Overrides, []EvalError, error) {
		return evaluate(source)
	})
}

// within runs fn on its own goroutine and gives up when ctx ends. An
// abandoned evaluation finishes into a buffered channel nobody reads.
func within(ctx context.Context, fn func() (config.Overrides, []EvalError, error)) (config.Overrides, []EvalError, error) {
	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		ov, evalErrs, err := fn()
		ch <- evalResult{overrides: ov, errors: evalErrs, err: err}
	}()

	select {
	case res := <-ch:
		return res.overrides, res.errors, res.err
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("evaluation aborted: %w", ctx.Err())
	}
}

// evaluate runs the script form by form in a fresh sandbox, so a failure
// can be reported at the line where the failing form starts.
func evaluate(source string) (config.Overrides, []EvalError, error) {
	ov := config.Overrides{}
	forms := splitForms(source)
	if len(forms) == 0 {
		return ov, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, ov)

	for _, f := range forms {
		if err := env.LoadString(preprocessSource(f.text)); err != nil {
			return nil, locate(err, f.line), nil
		}
		if _, err := env.Run(); err != nil {
			return nil, locate(err, f.line), nil
		}
	}
	return ov, nil, nil
}

// locate parses a zygomys error and pins it to line.
func locate(err error, line int) []EvalError {
	errs := parseZygomysError(err)
	for i := range errs {
		errs[i].Line = line
	}
	return errs
}

// form is a run of source lines that closes every bracket it opens.
type form struct {
	line int // 1-based line of the first non-blank, non-comment character
	text string
}

// splitForms cuts source into top-level forms at line ends where every
// bracket is closed. String literals and ; comments are skipped when
// counting. Blank and comment-only lines between forms are dropped; an
// unclosed form runs to the end of the source.
func splitForms(source string) []form {
	var (
		forms   []form
		cur     strings.Builder
		start   int
		depth   int
		quote   byte // '"' or '`' while inside a string literal
		escaped bool
		content bool
	)
	line := 1
	flush := func() {
		if content {
			forms = append(forms, form{line: start, text: cur.String()})
		}
		cur.Reset()
		content = false
	}

	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case c == '\\' && quote == '"':
				escaped = true
			case c == quote:
				quote = 0
			}
		case c == ';':
			for i < len(source) && source[i] != '\n' {
				cur.WriteByte(source[i])
				i++
			}
			if i == len(source) {
				continue
			}
			c = source[i]
		case c == '"' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth = max(depth-1, 0)
		}

		if !content && c != '\n' && c != ' ' && c != '\t' && c != '\r' && c != ';' {
			content = true
			start = line
		}
		cur.WriteByte(c)

		if c == '\n' {
			line++
			if depth == 0 && quote == 0 {
				flush()
			}
		}
	}
	flush()
	return forms
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// zygomys formats parse errors as "Error on line N: <details>\n".
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

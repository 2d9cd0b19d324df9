package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chazu/orbishell/pkg/config"
	"github.com/google/go-cmp/cmp"
)

func TestEvaluateWithoutOverrides(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  \n  "},
		{"comments only", "; nothing to tune yet\n;; still nothing\n"},
		{"definitions only", "(def wall 4)\n(def knee-drop (* wall 4))\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if len(evalErrs) > 0 {
				t.Fatalf("eval errors: %v", evalErrs)
			}
			if ov == nil {
				t.Fatal("expected non-nil overrides")
			}
			if len(ov) != 0 {
				t.Errorf("overrides = %v, want none", ov)
			}
		})
	}
}

func TestEverySectionIsABuiltin(t *testing.T) {
	eng := NewEngine()
	for _, section := range config.Sections() {
		t.Run(section, func(t *testing.T) {
			ov, evalErrs, err := eng.Evaluate("(" + section + ")")
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if len(evalErrs) > 0 {
				t.Fatalf("eval errors: %v", evalErrs)
			}
			got, ok := ov[section]
			if !ok {
				t.Fatalf("no %q entry in %v", section, ov)
			}
			if len(got) != 0 {
				t.Errorf("%s = %v, want no keys", section, got)
			}
		})
	}
}

func TestEvaluateOpenDomeScript(t *testing.T) {
	source := `; open dome with a thinner wall
(def wall 4)
(build :voxel-size-mm 0.5 :preview-mode)
(dome :style :open-dome
      :open-inner-radius-mm (- 100 wall))
(legs :bulge-radii-mm [16 26 16] :middle-bulge-radius-mm 0)
(flow :wall-thickness-mm wall)
(flow :wall-thickness-mm 3)
`
	ov, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	want := config.Overrides{
		"build": {"voxel_size_mm": 0.5, "preview_mode": true},
		"dome":  {"style": "open-dome", "open_inner_radius_mm": int64(96)},
		"legs": {
			"bulge_radii_mm":         []any{int64(16), int64(26), int64(16)},
			"middle_bulge_radius_mm": int64(0),
		},
		"flow": {"wall_thickness_mm": int64(3)},
	}
	if diff := cmp.Diff(want, ov); diff != "" {
		t.Fatalf("overrides mismatch (-want +got):\n%s", diff)
	}

	cfg := config.Default()
	if err := cfg.Apply(ov); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Dome.Style != config.DomeOpenLegacy {
		t.Errorf("dome style = %v, want open-dome", cfg.Dome.Style)
	}
	if cfg.Dome.OpenInnerRMM != 96 {
		t.Errorf("open inner radius = %v, want 96", cfg.Dome.OpenInnerRMM)
	}
	if diff := cmp.Diff([]float64{16, 26, 16}, cfg.Legs.BulgeRadiiMM); diff != "" {
		t.Errorf("bulge radii mismatch:\n%s", diff)
	}
	if !cfg.Build.PreviewMode || cfg.Build.VoxelSizeMM != 0.5 {
		t.Errorf("build = %+v, want preview at 0.5 mm", cfg.Build)
	}
	if cfg.Flow.WallThicknessMM != 3 {
		t.Errorf("wall thickness = %v, want the later call's 3", cfg.Flow.WallThicknessMM)
	}
}

func TestApplyRejectsBadOverrides(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unknown dome style", "(dome :style :half-pipe)"},
		{"unknown key", "(joints :ball-colour-mm 3)"},
		{"list for a number", "(flow :tube-radius-mm [10 12])"},
		{"string for a list", `(legs :bulge-radii-mm "fat")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil || len(evalErrs) > 0 {
				t.Fatalf("Evaluate: %v %v", err, evalErrs)
			}
			if err := config.Default().Apply(ov); err == nil {
				t.Errorf("Apply(%v) succeeded, want error", ov)
			}
		})
	}
}

func TestEvaluateErrorLines(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "undefined symbol",
			source:   "; legs\n(def r 20)\n\n(legs :outward-curve-mm knee)\n",
			wantLine: 4,
		},
		{
			name:     "unclosed form",
			source:   "(def wall 4)\n(dome :style :open-dome\n      :radius-mm 100\n",
			wantLine: 2,
		},
		{
			name:     "positional argument",
			source:   "(build :preview-mode)\n(def t 3)\n(flow t)\n",
			wantLine: 3,
			wantMsg:  "positional",
		},
		{
			name:     "nil value",
			source:   "(dome\n  :radius-mm 100)\n(legs :bulge-radii-mm nil)\n",
			wantLine: 3,
			wantMsg:  "nil is not a value",
		},
		{
			name:     "paren inside a string",
			source:   "(paths :output \"shell(1).stl\")\n(smoothing :passes (+ 1 missing))\n",
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if ov != nil {
				t.Errorf("overrides = %v, want nil on error", ov)
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected an eval error")
			}
			e := evalErrs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d (%s)", e.Line, tt.wantLine, e.Message)
			}
			if e.Message == "" {
				t.Error("eval error message should not be empty")
			}
			if tt.wantMsg != "" && !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

func TestSplitForms(t *testing.T) {
	source := `; header
(def wall 4)

(dome :style :open-dome ; trailing ) in a comment
      :open-inner-radius-mm (- 100 wall))
(paths :output "a
(b).stl") (smoothing)
(legs`
	forms := splitForms(source)

	var lines []int
	for _, f := range forms {
		lines = append(lines, f.line)
	}
	if diff := cmp.Diff([]int{2, 4, 6, 8}, lines); diff != "" {
		t.Fatalf("form lines mismatch (-want +got):\n%s", diff)
	}
	if got := strings.TrimSpace(forms[1].text); !strings.HasSuffix(got, "(- 100 wall))") {
		t.Errorf("dome form = %q, want it to run through its closing paren", got)
	}
	if got := forms[3].text; got != "(legs" {
		t.Errorf("last form = %q, want the unclosed remainder", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	source := "(def r 20)\n(legs :outward-curve-mm (* r 2) :bulge-count 3)\n(dome :style :closed-bowl)\n"
	eng := NewEngine()

	first, evalErrs, err := eng.Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", err, evalErrs)
	}
	for i := 0; i < 4; i++ {
		ov, evalErrs, err := eng.Evaluate(source)
		if err != nil || len(evalErrs) > 0 {
			t.Fatalf("iteration %d: %v %v", i, err, evalErrs)
		}
		if diff := cmp.Diff(first, ov); diff != "" {
			t.Errorf("iteration %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestWithinDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ov, evalErrs, err := within(ctx, func() (config.Overrides, []EvalError, error) {
		<-release
		return config.Overrides{}, nil, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if ov != nil || evalErrs != nil {
		t.Errorf("got %v %v, want nothing after the deadline", ov, evalErrs)
	}
}

func TestWithinRecoversPanic(t *testing.T) {
	_, _, err := within(context.Background(), func() (config.Overrides, []EvalError, error) {
		panic("builtin blew up")
	})
	if err == nil || !strings.Contains(err.Error(), "builtin blew up") {
		t.Errorf("err = %v, want the panic value", err)
	}
}

func TestEvalErrorString(t *testing.T) {
	tests := []struct {
		err  EvalError
		want string
	}{
		{EvalError{Line: 5, Message: "legs: unexpected positional argument 3"}, "line 5: legs: unexpected positional argument 3"},
		{EvalError{Message: "evaluation aborted"}, "evaluation aborted"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"no line info", "symbol `knee` not found", 0, "symbol `knee` not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errors.New(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			if errs[0].Line != tt.wantLine {
				t.Errorf("line = %d, want %d", errs[0].Line, tt.wantLine)
			}
			if !strings.Contains(errs[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}

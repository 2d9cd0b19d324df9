package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chazu/orbishell/pkg/report"
)

// Step is one stage of a build.
type Step interface {
	// Do runs the stage against the build. A returned error aborts the
	// build.
	Do(b *Build) error

	// Name identifies the stage in logs and the report.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	steps  []Step
	logger *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger stage progress is written to.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends several steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs every step in order and stops at the first failure. A
// panic inside a step is returned as that step's error. Errors are
// returned, not logged.
func (p *Pipeline) Execute(b *Build) error {
	for _, step := range p.steps {
		name := step.Name()
		p.logger.Debug("stage started", zap.String("stage", name))

		b.note = ""
		start := time.Now()
		if err := run(step, b); err != nil {
			return fmt.Errorf("pipeline: %s: %w", name, err)
		}
		elapsed := time.Since(start)

		vol, box := b.measure()
		b.Report.Add(report.Stage{
			Name:      name,
			Elapsed:   elapsed,
			VolumeMM3: vol,
			Bounds:    box,
			Note:      b.note,
		})

		fields := []zap.Field{
			zap.String("stage", name),
			zap.Duration("elapsed", elapsed),
			zap.Float64("volume_mm3", vol),
		}
		if !box.IsEmpty() {
			fields = append(fields, zap.Float64("z_min", box.Min.Z), zap.Float64("z_max", box.Max.Z))
		}
		if b.note != "" {
			fields = append(fields, zap.String("note", b.note))
		}
		p.logger.Info("stage finished", fields...)
	}
	return nil
}

func run(step Step, b *Build) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return step.Do(b)
}

// stepFunc adapts a function to Step.
type stepFunc struct {
	name string
	fn   func(b *Build) error
}

// NewStep returns a Step named name that calls fn.
func NewStep(name string, fn func(b *Build) error) Step {
	return &stepFunc{name: name, fn: fn}
}

func (s *stepFunc) Name() string { return s.name }
func (s *stepFunc) Do(b *Build) error { return s.fn(b) }

// Package pipeline runs a shell build as an ordered list of steps.
//
// Each step receives the Build, which carries the cloned configuration,
// the geometry kernel and the shell accumulator. Steps run strictly in
// sequence; the first failing step aborts the build. After every step the
// pipeline measures the shell and records the stage in the build report,
// so timing and volume diagnostics look the same for every stage.
package pipeline

// Package report renders a Markdown summary of one shell build: per-stage
// timing and shell measurements, then the export totals. It is purely
// diagnostic.
package report

import (
	"io"
	"time"

	"github.com/nao1215/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chazu/orbishell/pkg/geom"
)

// Stage is one finished pipeline step.
type Stage struct {
	Name      string
	Elapsed   time.Duration
	VolumeMM3 float64  // shell volume after the stage
	Bounds    geom.Box // shell bounds after the stage
	Note      string
}

// Report collects what a build did.
type Report struct {
	RunID           string
	Started         time.Time
	Stages          []Stage
	SourceTriangles int
	OutputTriangles int
	VolumeMM3       float64
	Output          string
	NeedsRepair     bool
	Total           time.Duration
}

// Add appends a finished stage.
func (r *Report) Add(s Stage) {
	r.Stages = append(r.Stages, s)
}

// Stage returns the named stage, if it ran.
func (r *Report) Stage(name string) (Stage, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// WriteMarkdown renders the report to w.
func (r *Report) WriteMarkdown(w io.Writer) error {
	p := message.NewPrinter(language.English)
	md := markdown.NewMarkdown(w)

	md.H1("Orbi Shell Build")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run", "`" + r.RunID + "`"},
			{"Started", r.Started.Format("2006-01-02 15:04:05 MST")},
			{"Total", r.Total.Round(time.Millisecond).String()},
		},
	})
	md.PlainText("")

	md.H2("Stages")
	md.PlainText("")
	rows := make([][]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		rows = append(rows, []string{
			s.Name,
			s.Elapsed.Round(time.Millisecond).String(),
			p.Sprintf("%.0f", s.VolumeMM3),
			zExtent(p, s.Bounds),
			s.Note,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Stage", "Elapsed", "Volume (mm³)", "Z extent (mm)", "Note"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Output")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", "`" + r.Output + "`"},
			{"Input triangles", p.Sprintf("%d", r.SourceTriangles)},
			{"Output triangles", p.Sprintf("%d", r.OutputTriangles)},
			{"Volume (mm³)", p.Sprintf("%.0f", r.VolumeMM3)},
		},
	})
	md.PlainText("")

	if r.NeedsRepair {
		md.Warning("The exported mesh has unpaired edges and may need repair before slicing.")
	} else {
		md.Tip("The exported mesh is closed.")
	}
	return md.Build()
}

func zExtent(p *message.Printer, b geom.Box) string {
	if b.IsEmpty() {
		return "-"
	}
	return p.Sprintf("%.1f .. %.1f", b.Min.Z, b.Max.Z)
}

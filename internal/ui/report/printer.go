// Package report prints planning results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/ccplan/internal/adapters/telemetry"
	"go.trai.ch/ccplan/internal/app"
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/ui/output"
	"go.trai.ch/ccplan/internal/ui/style"
)

// Printer writes reports to a terminal or a log.
type Printer struct {
	w   io.Writer
	out *termenv.Output
}

// NewPrinter creates a Printer on w. Colors follow ColorProfileANSI.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, out: output.NewWithProfile(w, output.ColorProfileANSI)}
}

// Plan prints one line per target, its outputs and, with actions set, its actions.
func (p *Printer) Plan(r *app.Report, actions bool) {
	for _, t := range r.Targets {
		p.target(t, actions)
	}

	planned := len(r.Targets) - r.Failed()
	summary := fmt.Sprintf("planned %d of %d targets", planned, len(r.Targets))
	if r.Failed() > 0 {
		summary = output.Paint(p.out, summary, string(style.Red))
	}
	p.println(summary)
}

func (p *Printer) target(t app.TargetReport, actions bool) {
	switch t.Status {
	case domain.PlanStatusPlanned:
		icon := output.Paint(p.out, style.Check, string(style.Green))
		p.println(fmt.Sprintf("%s %s %s", icon, t.Label, p.faint(t.Fingerprint)))
	case domain.PlanStatusFailed:
		icon := output.Paint(p.out, style.Cross, string(style.Red))
		p.println(fmt.Sprintf("%s %s %s", icon, t.Label, p.faint("failed")))
		if t.Error != "" {
			first, _, _ := strings.Cut(t.Error, "\n")
			p.println("    " + first)
		}
		return
	case domain.PlanStatusSkipped:
		icon := output.Paint(p.out, style.Circle, string(style.Yellow))
		p.println(fmt.Sprintf("%s %s %s", icon, t.Label, p.faint("skipped")))
		return
	default:
		icon := output.Paint(p.out, style.Dot, string(style.Slate))
		p.println(fmt.Sprintf("%s %s %s", icon, t.Label, p.faint(string(t.Status))))
		return
	}

	for _, o := range t.Outputs {
		p.println("    " + o)
	}
	if !actions {
		return
	}
	for _, a := range t.Actions {
		p.println(fmt.Sprintf("    %s %-12s %s", output.Paint(p.out, style.Tilde, string(style.Iris)), a.Mnemonic, a.Output))
	}
}

// Graph prints the targets in planning order with their dependencies.
func (p *Printer) Graph(nodes []app.GraphNode) {
	for _, n := range nodes {
		p.println(n.Label)
		for _, dep := range n.Dependencies {
			p.println("  " + p.faint("→") + " " + dep)
		}
	}
}

// Timings prints the planning time of every target in the order planning ended.
func (p *Printer) Timings(timings []telemetry.Timing) {
	if len(timings) == 0 {
		return
	}
	p.println(p.faint("timings:"))
	for _, t := range timings {
		line := fmt.Sprintf("  %10s  %s", t.Duration.Round(time.Microsecond), t.Name)
		if t.Failed {
			line = output.Paint(p.out, line, string(style.Red))
		}
		p.println(line)
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) faint(s string) string {
	return p.out.String(s).Faint().String()
}

func (p *Printer) println(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

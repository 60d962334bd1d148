// Package app implements the application layer for ccplan.
package app

import (
	"context"
	"errors"
	"runtime"

	"go.trai.ch/ccplan/internal/adapters/telemetry"
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/ccplan/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	scheduler     *scheduler.Scheduler
	registrar     ports.ActionRegistrar
	fingerprinter ports.Fingerprinter
	telemetry     ports.Telemetry
	timings       *telemetry.Timings
	logger        ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	registrar ports.ActionRegistrar,
	fingerprinter ports.Fingerprinter,
	tel ports.Telemetry,
	timings *telemetry.Timings,
	log ports.Logger,
) *App {
	return &App{
		configLoader:  loader,
		scheduler:     sched,
		registrar:     registrar,
		fingerprinter: fingerprinter,
		telemetry:     tel,
		timings:       timings,
		logger:        log,
	}
}

// PlanOptions configuration for the Plan method.
type PlanOptions struct {
	// ConfigPath is the workspace file, or the directory holding it.
	ConfigPath string
	// All plans every target of the workspace when no target is named.
	All bool
	// Parallelism bounds concurrent planning. Zero means one per CPU.
	Parallelism int
}

// Report is the outcome of a planning run.
type Report struct {
	Targets []TargetReport    `json:"targets"`
	Timings []telemetry.Timing `json:"timings,omitempty"`
}

// Failed returns the number of targets that failed or were skipped.
func (r *Report) Failed() int {
	n := 0
	for _, t := range r.Targets {
		if t.Status != domain.PlanStatusPlanned {
			n++
		}
	}
	return n
}

// TargetReport describes one target of a planning run.
type TargetReport struct {
	Label       string            `json:"label"`
	Status      domain.PlanStatus `json:"status"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Providers   []string          `json:"providers,omitempty"`
	Outputs     []string          `json:"outputs,omitempty"`
	Actions     []ActionReport    `json:"actions,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// ActionReport describes one registered action.
type ActionReport struct {
	Mnemonic string `json:"mnemonic"`
	Output   string `json:"output"`
	Key      string `json:"key"`
}

// Plan loads the workspace and plans the named targets with everything they depend on.
// The report is returned even when some targets failed.
func (a *App) Plan(ctx context.Context, targetNames []string, opts PlanOptions) (*Report, error) {
	if len(targetNames) == 0 && !opts.All {
		return nil, domain.ErrNoTargetsSpecified
	}

	ws, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	labels, err := parseLabels(targetNames)
	if err != nil {
		return nil, err
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	results, runErr := a.scheduler.Run(ctx, ws, labels, parallelism)
	if results == nil && runErr != nil {
		return nil, runErr
	}

	report := &Report{Targets: a.targetReports(results, parallelism)}
	if a.timings != nil {
		report.Timings = a.timings.Snapshot()
	}
	a.logger.Debug("plan finished", "targets", len(report.Targets), "failed", report.Failed())

	if runErr != nil {
		return report, errors.Join(domain.ErrPlanningFailed, runErr)
	}
	return report, nil
}

// targetReports fingerprints the planned targets concurrently. The order of results
// is kept. Fingerprinting is a pure digest of immutable registries and cannot fail.
func (a *App) targetReports(results []*scheduler.Result, parallelism int) []TargetReport {
	reports := make([]TargetReport, len(results))
	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, r := range results {
		g.Go(func() error {
			reports[i] = a.targetReport(r)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func (a *App) targetReport(r *scheduler.Result) TargetReport {
	tr := TargetReport{Label: r.Label.String(), Status: r.Status}
	if r.Err != nil {
		tr.Error = r.Err.Error()
	}
	if r.Info == nil {
		return tr
	}

	reg := r.Info.Providers()
	tr.Fingerprint = a.fingerprinter.Fingerprint(reg)
	for _, tag := range reg.Tags() {
		tr.Providers = append(tr.Providers, tag.String())
	}
	tr.Outputs = domain.ExecPaths(r.Info.LinkingOutputArtifacts())
	for _, action := range a.registrar.Actions(r.Label) {
		tr.Actions = append(tr.Actions, ActionReport{
			Mnemonic: action.Kind.Mnemonic(),
			Output:   action.PrimaryOutput().ExecPath(),
			Key:      action.Key,
		})
	}
	return tr
}

// GraphNode is one target of the workspace with its direct dependencies.
type GraphNode struct {
	Label        string   `json:"label"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Graph loads the workspace and returns its targets in planning order.
func (a *App) Graph(configPath string) ([]GraphNode, error) {
	ws, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	nodes := make([]GraphNode, 0, ws.Graph.TargetCount())
	for t := range ws.Graph.Walk() {
		node := GraphNode{Label: t.Label.String()}
		for _, dep := range ws.Graph.DependenciesOf(t.Label) {
			node.Dependencies = append(node.Dependencies, dep.String())
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Close flushes the action telemetry.
func (a *App) Close() error {
	if a.telemetry == nil {
		return nil
	}
	return a.telemetry.Close()
}

func parseLabels(names []string) ([]domain.Label, error) {
	labels := make([]domain.Label, 0, len(names))
	for _, name := range names {
		l, err := domain.ParseLabel(name)
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}

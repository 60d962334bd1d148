// Package scheduler plans the targets of a workspace in dependency order.
package scheduler

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/ccplan/internal/engine/planner"
	"go.trai.ch/zerr"
)

// Result is the outcome of planning one target.
type Result struct {
	Label  domain.Label
	Status domain.PlanStatus
	// Info and Target are set once the target is planned.
	Info   *planner.Info
	Target *domain.PlannedTarget
	// Err is set when planning the target failed.
	Err error
}

// Scheduler plans targets concurrently. A target is handed to the planner once all of
// its dependencies are planned.
type Scheduler struct {
	planner *planner.Planner
	tracer  ports.Tracer
	logger  ports.Logger

	mu     sync.RWMutex
	status map[domain.Label]domain.PlanStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(p *planner.Planner, tracer ports.Tracer, logger ports.Logger) *Scheduler {
	return &Scheduler{
		planner: p,
		tracer:  tracer,
		logger:  logger,
		status:  make(map[domain.Label]domain.PlanStatus),
	}
}

// Status returns the status of label in the current or last run.
func (s *Scheduler) Status(label domain.Label) domain.PlanStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status[label]
}

func (s *Scheduler) updateStatus(label domain.Label, status domain.PlanStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[label] = status
}

// Run plans labels and everything they depend on, or every target of the workspace when
// labels is empty. Results are returned in dependency order. The error joins the
// failures of all targets that could not be planned.
func (s *Scheduler) Run(
	ctx context.Context,
	ws *domain.Workspace,
	labels []domain.Label,
	parallelism int,
) ([]*Result, error) {
	targets, err := s.selectTargets(ws, labels)
	if err != nil {
		return nil, err
	}
	if parallelism < 1 {
		parallelism = 1
	}

	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Label.String())
	}
	s.tracer.EmitPlan(ctx, names)

	state := s.newRunState(ctx, ws, targets, parallelism)
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		// Once cancelled, only drain the targets still being planned.
		if state.ctx.Err() != nil {
			if state.active == 0 {
				break
			}
			state.handleResult(<-state.resultsCh)
			continue
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.results(), state.errs
}

func (s *Scheduler) selectTargets(ws *domain.Workspace, labels []domain.Label) ([]*domain.Target, error) {
	if len(labels) > 0 {
		return ws.Graph.Closure(labels)
	}
	targets := make([]*domain.Target, 0, ws.Graph.TargetCount())
	for t := range ws.Graph.Walk() {
		targets = append(targets, t)
	}
	return targets, nil
}

type result struct {
	label  domain.Label
	info   *planner.Info
	target *domain.PlannedTarget
	err    error
}

type runState struct {
	ctx         context.Context
	ws          *domain.Workspace
	parallelism int
	s           *Scheduler

	order     []domain.Label
	targets   map[domain.Label]*domain.Target
	inDegree  map[domain.Label]int
	ready     []domain.Label
	active    int
	resultsCh chan result
	outcomes  map[domain.Label]*Result
	errs      error
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	ws *domain.Workspace,
	targets []*domain.Target,
	parallelism int,
) *runState {
	state := &runState{
		ctx:         ctx,
		ws:          ws,
		parallelism: parallelism,
		s:           s,
		order:       make([]domain.Label, 0, len(targets)),
		targets:     make(map[domain.Label]*domain.Target, len(targets)),
		inDegree:    make(map[domain.Label]int, len(targets)),
		resultsCh:   make(chan result, len(targets)),
		outcomes:    make(map[domain.Label]*Result, len(targets)),
	}

	for _, t := range targets {
		state.order = append(state.order, t.Label)
		state.targets[t.Label] = t
		state.outcomes[t.Label] = &Result{Label: t.Label, Status: domain.PlanStatusPending}
		s.updateStatus(t.Label, domain.PlanStatusPending)
	}

	// Targets come in dependency order, so the ready queue is deterministic.
	for _, label := range state.order {
		state.inDegree[label] = len(uniqueLabels(ws.Graph.DependenciesOf(label)))
		if state.inDegree[label] == 0 {
			state.ready = append(state.ready, label)
		}
	}
	return state
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		label := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.setStatus(label, domain.PlanStatusPlanning)

		t := state.targets[label]
		rule := state.ruleFor(t)
		deps := state.dependencies(t.Deps)
		plugins := state.dependencies(t.Plugins)

		go func() {
			state.resultsCh <- state.s.planTarget(state.ctx, rule, t, deps, plugins)
		}()
	}
}

func (state *runState) handleResult(res result) {
	state.active--
	outcome := state.outcomes[res.label]

	if res.err != nil {
		outcome.Err = res.err
		state.setStatus(res.label, domain.PlanStatusFailed)
		state.errs = errors.Join(state.errs,
			zerr.With(zerr.Wrap(res.err, domain.ErrPlanningFailed.Error()), "target", res.label.String()))
		state.skipDependents(res.label)
		return
	}

	outcome.Info = res.info
	outcome.Target = res.target
	state.setStatus(res.label, domain.PlanStatusPlanned)

	for _, dependent := range state.ws.Graph.Dependents(res.label) {
		if _, ok := state.inDegree[dependent]; !ok {
			continue
		}
		state.inDegree[dependent]--
		if state.inDegree[dependent] == 0 && state.outcomes[dependent].Status == domain.PlanStatusPending {
			state.ready = append(state.ready, dependent)
		}
	}
}

// skipDependents marks every pending target that transitively depends on label.
func (state *runState) skipDependents(label domain.Label) {
	queue := []domain.Label{label}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dependent := range state.ws.Graph.Dependents(current) {
			outcome, ok := state.outcomes[dependent]
			if !ok || outcome.Status != domain.PlanStatusPending {
				continue
			}
			state.setStatus(dependent, domain.PlanStatusSkipped)
			state.s.logger.Debug("target skipped", "target", dependent.String(), "failed_dependency", label.String())
			queue = append(queue, dependent)
		}
	}
}

func (state *runState) setStatus(label domain.Label, status domain.PlanStatus) {
	state.outcomes[label].Status = status
	state.s.updateStatus(label, status)
}

func (state *runState) ruleFor(t *domain.Target) planner.RuleContext {
	rule := planner.RuleContext{
		Configuration:                state.ws.Configuration,
		Toolchain:                    state.ws.Toolchain,
		DeclaresLipoContextCollector: t.LipoContextCollector,
	}
	if implicit := state.ws.ImplicitDeps(t.Label); len(implicit) > 0 {
		if stl := state.outcomes[implicit[0]]; stl != nil && stl.Target != nil {
			rule.STL = stl.Target
		}
	}
	return rule
}

// dependencies returns the planned handles of labels. Only called once all of them
// are planned.
func (state *runState) dependencies(labels []domain.Label) []domain.Dependency {
	res := make([]domain.Dependency, 0, len(labels))
	for _, l := range labels {
		if outcome := state.outcomes[l]; outcome != nil && outcome.Target != nil {
			res = append(res, outcome.Target)
		}
	}
	return res
}

func (state *runState) results() []*Result {
	res := make([]*Result, 0, len(state.order))
	for _, label := range state.order {
		res = append(res, state.outcomes[label])
	}
	return res
}

func (s *Scheduler) planTarget(
	ctx context.Context,
	rule planner.RuleContext,
	t *domain.Target,
	deps, plugins []domain.Dependency,
) result {
	ctx, span := s.tracer.Start(ctx, t.Label.String())
	defer span.End()

	span.SetAttribute("ccplan.deps", len(deps))
	span.SetAttribute("ccplan.srcs", len(t.Srcs))

	info, err := s.planner.Plan(ctx, rule, NewTargetSpec(t, deps, plugins))
	if err != nil {
		span.RecordError(err)
		return result{label: t.Label, err: err}
	}

	runfiles := domain.NewRunfilesBuilder().
		AddArtifacts(t.Data...).
		AddTargets(deps, domain.DefaultRunfiles).
		Build()
	planned := info.Dependency(t.Label, runfiles)
	if t.Plugin != nil {
		planned = planned.WithPlugin(*t.Plugin)
	}

	span.SetAttribute("ccplan.outputs", len(info.LinkingOutputArtifacts()))
	s.logger.Debug("target planned", "target", t.Label.String())
	return result{label: t.Label, info: info, target: planned}
}

func uniqueLabels(labels []domain.Label) []domain.Label {
	seen := make(map[domain.Label]bool, len(labels))
	res := labels[:0:0]
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			res = append(res, l)
		}
	}
	return res
}

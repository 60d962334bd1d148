// Package actions provides reference implementations of the compile, link and action
// registration collaborators. They derive output paths and record actions without
// running anything.
package actions

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ccplan/internal/core/domain"
	"go.trai.ch/ccplan/internal/core/ports"
	"go.trai.ch/zerr"
)

// Recorder implements ports.ActionRegistrar in memory.
type Recorder struct {
	telemetry ports.Telemetry

	mu       sync.RWMutex
	byOwner  map[domain.Label][]domain.Action
	byKey    map[string]domain.Action
	byOutput map[domain.Artifact]string
}

// NewRecorder creates a Recorder reporting each registration to telemetry.
func NewRecorder(telemetry ports.Telemetry) *Recorder {
	if telemetry == nil {
		telemetry = ports.Noop()
	}
	return &Recorder{
		telemetry: telemetry,
		byOwner:   make(map[domain.Label][]domain.Action),
		byKey:     make(map[string]domain.Action),
		byOutput:  make(map[domain.Artifact]string),
	}
}

// Register records action under its owner. Registering an action with the same content
// twice is allowed; a different action writing an output that is already produced is not.
func (r *Recorder) Register(ctx context.Context, action domain.Action) (domain.Action, error) {
	action.Key = ActionKey(action)
	_, vertex := r.telemetry.Record(ctx, action.Kind.Mnemonic()+" "+action.PrimaryOutput().ExecPath())

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, out := range action.Outputs {
		if key, ok := r.byOutput[out]; ok && key != action.Key {
			err := zerr.With(domain.ErrConflictingActions, "output", out.ExecPath())
			err = zerr.With(err, "owner", action.Owner.String())
			err = zerr.With(err, "previous_owner", r.byKey[key].Owner.String())
			vertex.Complete(err)
			return domain.Action{}, err
		}
	}

	if _, ok := r.byKey[action.Key]; ok {
		vertex.Cached()
	} else {
		r.byKey[action.Key] = action
		for _, out := range action.Outputs {
			r.byOutput[out] = action.Key
		}
		vertex.Inputs(domain.ExecPaths(action.Inputs))
		vertex.Complete(nil)
	}

	r.byOwner[action.Owner] = append(r.byOwner[action.Owner], action)
	return action, nil
}

// RegisterModuleMap records the action writing the module map of decl.Owner. The
// arguments list the module's declarations, one per entry.
func (r *Recorder) RegisterModuleMap(ctx context.Context, decl ports.ModuleMapDeclaration) error {
	args := []string{"module=" + decl.ModuleMap.Name}
	for _, h := range decl.PublicHeaders {
		args = append(args, "header="+h.ExecPath())
	}
	for _, h := range decl.PrivateHeaders {
		args = append(args, "private_header="+h.ExecPath())
	}
	for _, dep := range decl.Dependencies {
		args = append(args, "use="+dep.Name)
	}

	_, err := r.Register(ctx, domain.Action{
		Kind:    domain.ModuleMapAction,
		Owner:   decl.Owner,
		Outputs: []domain.Artifact{decl.ModuleMap.Artifact},
		Args:    args,
	})
	return err
}

// Actions returns the actions registered for owner in registration order.
func (r *Recorder) Actions(owner domain.Label) []domain.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.byOwner[owner])
}

// Owners returns every label that registered at least one action.
func (r *Recorder) Owners() []domain.Label {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.SortedFunc(maps.Keys(r.byOwner), func(a, b domain.Label) int {
		return cmp.Compare(a.String(), b.String())
	})
}

// ActionKey digests the content of an action: its kind, inputs, outputs and arguments.
// The owner is not part of the key, so identical actions of different targets share it.
func ActionKey(a domain.Action) string {
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "%d\x00", a.Kind)
	for _, section := range [][]string{
		domain.ExecPaths(a.Inputs),
		domain.ExecPaths(a.Outputs),
		a.Args,
	} {
		for _, s := range section {
			_, _ = h.WriteString(s)
			_, _ = h.WriteString("\x00")
		}
		_, _ = h.WriteString("\x01")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

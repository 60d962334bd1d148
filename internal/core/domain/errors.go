package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrConfiguration marks every configuration error. It is joined with the specific
	// error so callers can classify with errors.Is.
	ErrConfiguration = zerr.New("configuration error")

	// ErrMissingLipoContextCollector is returned when a rule does not declare the lipo
	// context collector attribute the planner requires.
	ErrMissingLipoContextCollector = zerr.New("rule does not declare a lipo context collector")

	// ErrUnsupportedHeadersCheckingMode is returned for an unknown headers checking mode.
	ErrUnsupportedHeadersCheckingMode = zerr.New("unsupported headers checking mode")

	// ErrInconsistentInput is raised (as a panic) on programming errors such as reusing a
	// consumed builder.
	ErrInconsistentInput = zerr.New("inconsistent input")

	// ErrDuplicateProvider is raised (as a panic) when a provider is set twice.
	ErrDuplicateProvider = zerr.New("provider already set")

	// ErrInvalidLabel is returned when a label cannot be parsed.
	ErrInvalidLabel = zerr.New("invalid label")

	// ErrTargetAlreadyExists is returned when a target label is declared twice.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrMissingDependency is returned when a target references an undeclared dependency.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the target dependency graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTargetNotFound is returned when a requested target is not in the workspace.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrNoTargetsSpecified is returned when a command needs targets and none were given.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrConfigReadFailed is returned when the workspace file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read workspace file")

	// ErrConfigParseFailed is returned when the workspace file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse workspace file")

	// ErrCompileFailed is returned when the compile collaborator fails.
	ErrCompileFailed = zerr.New("compile step failed")

	// ErrLinkFailed is returned when the link collaborator fails.
	ErrLinkFailed = zerr.New("link step failed")

	// ErrActionRegistrationFailed is returned when an action cannot be registered.
	ErrActionRegistrationFailed = zerr.New("failed to register action")

	// ErrConflictingActions is returned when two different actions produce the same output.
	ErrConflictingActions = zerr.New("conflicting actions for output")

	// ErrPlanningFailed is returned when one or more targets failed to plan.
	ErrPlanningFailed = zerr.New("planning failed")
)

// NewConfigurationError joins err with ErrConfiguration.
func NewConfigurationError(err error) error {
	return errors.Join(ErrConfiguration, err)
}

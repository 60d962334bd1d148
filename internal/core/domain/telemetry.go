package domain

import "strings"

// PlanStatus is the lifecycle state of one target in a planning run.
type PlanStatus string

const (
	// PlanStatusPending means the target waits for its dependencies.
	PlanStatusPending PlanStatus = "pending"
	// PlanStatusPlanning means the composer is running for the target.
	PlanStatusPlanning PlanStatus = "planning"
	// PlanStatusPlanned means the target's providers are available.
	PlanStatusPlanned PlanStatus = "planned"
	// PlanStatusFailed means planning the target returned an error.
	PlanStatusFailed PlanStatus = "failed"
	// PlanStatusSkipped means a dependency failed, so the target was never planned.
	PlanStatusSkipped PlanStatus = "skipped"
)

// IsTerminal reports whether no further transition can happen.
func (s PlanStatus) IsTerminal() bool {
	switch s {
	case PlanStatusPlanned, PlanStatusFailed, PlanStatusSkipped:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a flag value to a LogLevel. Unknown values mean info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

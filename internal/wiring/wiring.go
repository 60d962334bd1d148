// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ccplan/internal/adapters/actions"
	_ "go.trai.ch/ccplan/internal/adapters/config"
	_ "go.trai.ch/ccplan/internal/adapters/fingerprint"
	_ "go.trai.ch/ccplan/internal/adapters/logger"
	_ "go.trai.ch/ccplan/internal/adapters/telemetry"
	_ "go.trai.ch/ccplan/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/ccplan/internal/app"
	_ "go.trai.ch/ccplan/internal/engine/planner"
	_ "go.trai.ch/ccplan/internal/engine/scheduler"
)

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ccplan/internal/core/domain"
)

func TestPlanStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status     domain.PlanStatus
		isTerminal bool
	}{
		{domain.PlanStatusPending, false},
		{domain.PlanStatusPlanning, false},
		{domain.PlanStatusPlanned, true},
		{domain.PlanStatusFailed, true},
		{domain.PlanStatusSkipped, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.LogLevel
	}{
		{"debug", domain.LogLevelDebug},
		{"DEBUG", domain.LogLevelDebug},
		{"info", domain.LogLevelInfo},
		{"warn", domain.LogLevelWarn},
		{"warning", domain.LogLevelWarn},
		{"error", domain.LogLevelError},
		{"", domain.LogLevelInfo},
		{"verbose", domain.LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParseLogLevel(tt.input))
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "INFO", domain.LogLevelInfo.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "ERROR", domain.LogLevelError.String())
	assert.Equal(t, "INFO", domain.LogLevel(999).String())
}

package config

import (
	"fmt"

	"github.com/soyeahso/workflow-agents/internal/domain"
)

const (
	// EnvConfigPath names a config file to use when no path argument is given.
	EnvConfigPath = "WORKFLOW_AGENTS_CONFIG"
	// EnvLogLevel overrides the default log level.
	EnvLogLevel = "WORKFLOW_AGENTS_LOG_LEVEL"

	// AgentsKey is the top-level key holding the agent list.
	AgentsKey = "agents"

	DefaultIdleFrequency = 30
	DefaultIdleVariance  = 10
)

// ConfigError represents a structural problem with a config document:
// unreadable file, bad syntax or wrong top-level shape.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// NotFoundError is returned when an explicitly requested config file does
// not exist.
type NotFoundError struct {
	Path   string
	Source Source
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s (from %s)", e.Path, e.Source)
}

// defaultAgents matches the pane layout of the stock tmux workflow. It is
// never handed out directly; DefaultAgents returns copies.
var defaultAgents = []domain.Record{
	defaultAgent("pm", "PM agent", &domain.Idle{
		Task:      "clear; waif in-progress",
		Frequency: DefaultIdleFrequency,
		Variance:  DefaultIdleVariance,
	}),
	defaultAgent("design", "Design agent", nil),
	defaultAgent("build", "Build agent", nil),
	defaultAgent("docs", "Doc agent", nil),
	defaultAgent("review", "Review agent", nil),
	{Name: "user", Label: "User", IsUser: true},
}

func defaultAgent(name, label string, idle *domain.Idle) domain.Record {
	role := name
	return domain.Record{
		Name:     name,
		Label:    label,
		Role:     &role,
		Worktree: true,
		Env:      domain.EnvOf("BD_ACTOR", name),
		Idle:     idle,
	}
}

// DefaultAgents returns the built-in agent list used when no config file is
// available. Each call returns a fresh copy.
func DefaultAgents() []domain.Record {
	records := make([]domain.Record, len(defaultAgents))
	for i, r := range defaultAgents {
		records[i] = r.Clone()
	}
	return records
}

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/soyeahso/workflow-agents/internal/domain"
)

// ValidationIssue describes a problem with one agent entry.
type ValidationIssue struct {
	Index   int
	Name    string // empty for entry-level problems and name errors
	Field   string // empty for entry-level problems
	Message string
}

func (v ValidationIssue) String() string {
	if v.Name != "" {
		return fmt.Sprintf("Agent %d (%s): %s", v.Index, v.Name, v.Message)
	}
	return fmt.Sprintf("Agent %d: %s", v.Index, v.Message)
}

// ValidationError aggregates every issue found in one validation pass.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue.String())
	}
	return b.String()
}

var knownFields = []string{"name", "label", "role", "worktree", "env", "idle", "is_user"}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []ValidationIssue
}

func (c *issueCollector) add(index int, name, field, message string) {
	c.issues = append(c.issues, ValidationIssue{Index: index, Name: name, Field: field, Message: message})
}

// Validate checks every raw agent entry and converts the valid ones into
// typed specs. All issues are collected; specs are only returned when there
// are none.
func Validate(raw []any) ([]domain.Spec, []ValidationIssue) {
	var c issueCollector
	specs := make([]domain.Spec, 0, len(raw))
	for i, entry := range raw {
		if spec, ok := validateEntry(i, entry, &c); ok {
			specs = append(specs, spec)
		}
	}
	if len(c.issues) > 0 {
		return nil, c.issues
	}
	return specs, nil
}

func validateEntry(index int, entry any, c *issueCollector) (domain.Spec, bool) {
	var spec domain.Spec

	agent, _, ok := asMapping(entry)
	if !ok {
		c.add(index, "", "", "must be a mapping")
		return spec, false
	}

	before := len(c.issues)

	if v, has := agent["name"]; !has {
		c.add(index, "", "name", "missing required field 'name'")
	} else if s, isStr := v.(string); !isStr || strings.TrimSpace(s) == "" {
		c.add(index, "", "name", "'name' must be a non-empty string")
	} else {
		spec.Name = s
	}
	name := nameTag(agent)
	fail := func(field, message string) {
		c.add(index, name, field, message)
	}

	if v, has := agent["label"]; has {
		if s, isStr := v.(string); isStr {
			spec.Label = &s
		} else {
			fail("label", "'label' must be a string")
		}
	}

	if v, has := agent["role"]; has {
		switch role := v.(type) {
		case nil:
			spec.HasRole = true
		case string:
			spec.HasRole = true
			spec.Role = &role
		default:
			fail("role", "'role' must be a string or null")
		}
	}

	if v, has := agent["worktree"]; has {
		if b, isBool := v.(bool); isBool {
			spec.Worktree = &b
		} else {
			fail("worktree", "'worktree' must be a boolean")
		}
	}

	if v, has := agent["env"]; has {
		env, msg := validateEnv(v)
		if msg != "" {
			fail("env", msg)
		} else {
			spec.Env = env
		}
	}

	if v, has := agent["idle"]; has && v != nil {
		spec.Idle = validateIdle(v, fail)
	}

	if v, has := agent["is_user"]; has {
		if b, isBool := v.(bool); isBool {
			spec.IsUser = &b
		} else {
			fail("is_user", "'is_user' must be a boolean")
		}
	}

	return spec, len(c.issues) == before
}

func validateEnv(v any) ([]domain.EnvVar, string) {
	m, nonStringKeys, ok := asMapping(v)
	if !ok {
		return nil, "'env' must be a mapping"
	}
	const badValue = "'env' values must be strings or primitives"
	if nonStringKeys {
		return nil, badValue
	}
	env := make([]domain.EnvVar, 0, len(m))
	for _, k := range mappingKeys(v) {
		s, ok := domain.ScalarOf(m[k])
		if !ok {
			return nil, badValue
		}
		env = append(env, domain.EnvVar{Key: k, Value: s})
	}
	return env, ""
}

func validateIdle(v any, fail func(field, message string)) *domain.IdleSpec {
	m, _, ok := asMapping(v)
	if !ok {
		fail("idle", "'idle' must be a mapping")
		return nil
	}

	idle := &domain.IdleSpec{}
	if task, has := m["task"]; !has {
		fail("idle.task", "'idle.task' is required when 'idle' is specified")
	} else if s, isStr := task.(string); !isStr {
		fail("idle.task", "'idle.task' must be a string")
	} else {
		idle.Task = s
	}

	for _, field := range []string{"frequency", "variance"} {
		raw, has := m[field]
		if !has {
			continue
		}
		n, err := asInt(raw)
		if errors.Is(err, errIntRange) {
			fail("idle."+field, fmt.Sprintf("'idle.%s' is out of range", field))
			continue
		}
		if err != nil {
			fail("idle."+field, fmt.Sprintf("'idle.%s' must be an integer", field))
			continue
		}
		if field == "frequency" {
			idle.Frequency = &n
		} else {
			idle.Variance = &n
		}
	}
	return idle
}

// nameTag renders an entry's name for issue messages, even when the name
// itself is invalid. A missing or empty name shows as "?".
func nameTag(agent map[string]any) string {
	v, has := agent["name"]
	switch name := v.(type) {
	case string:
		if name != "" {
			return name
		}
	case nil:
		if has {
			return "null"
		}
	default:
		return fmt.Sprint(name)
	}
	return "?"
}

// unknownFields lists keys of a raw agent entry that are not part of the
// agent schema, sorted.
func unknownFields(entry any) []string {
	m, _, ok := asMapping(entry)
	if !ok {
		return nil
	}
	var extra []string
	for k := range m {
		if !slices.Contains(knownFields, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return extra
}

package config

import (
	"strings"

	"github.com/soyeahso/workflow-agents/internal/domain"
)

// ParseFieldPath splits a dot-separated record field path such as
// "idle.task". Returns an error if any segment is empty.
func ParseFieldPath(raw string) ([]string, error) {
	if raw == "" {
		return nil, &ConfigError{Message: "empty field path"}
	}
	parts := strings.Split(raw, ".")
	for _, p := range parts {
		if p == "" {
			return nil, &ConfigError{Message: "field path contains empty segment"}
		}
	}
	return parts, nil
}

// FindAgent returns the record with the given name.
func FindAgent(records []domain.Record, name string) (domain.Record, bool) {
	for _, r := range records {
		if r.Name == name {
			return r, true
		}
	}
	return domain.Record{}, false
}

// FieldValue looks up a field of r by path. Null fields are found and
// returned as nil.
func FieldValue(r domain.Record, path []string) (any, bool) {
	return valueAtPath(recordMap(r), path)
}

func recordMap(r domain.Record) map[string]any {
	m := map[string]any{
		"name":     r.Name,
		"label":    r.Label,
		"role":     nil,
		"worktree": r.Worktree,
		"env":      r.Env,
		"idle":     nil,
		"is_user":  r.IsUser,
	}
	if r.Role != nil {
		m["role"] = *r.Role
	}
	if r.Idle != nil {
		m["idle"] = map[string]any{
			"task":      r.Idle.Task,
			"frequency": r.Idle.Frequency,
			"variance":  r.Idle.Variance,
		}
	}
	return m
}

// valueAtPath traverses a nested map using the given path segments.
func valueAtPath(root map[string]any, path []string) (any, bool) {
	current := any(root)
	for _, key := range path {
		var ok bool
		switch node := current.(type) {
		case map[string]any:
			current, ok = node[key]
		case domain.Env:
			current, ok = node.Get(key)
		}
		if !ok {
			return nil, false
		}
	}
	return current, true
}

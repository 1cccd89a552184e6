package config

import (
	"github.com/soyeahso/workflow-agents/internal/domain"
	"github.com/soyeahso/workflow-agents/internal/logging"
)

// Normalize fills defaults for a validated spec and returns its canonical
// record.
func Normalize(spec domain.Spec) domain.Record {
	isUser := spec.IsUser != nil && *spec.IsUser

	r := domain.Record{
		Name:     spec.Name,
		Label:    spec.Name,
		Worktree: !isUser,
		IsUser:   isUser,
	}
	if spec.Label != nil {
		r.Label = *spec.Label
	}
	if !isUser {
		switch {
		case !spec.HasRole:
			name := spec.Name
			r.Role = &name
		case spec.Role != nil:
			role := *spec.Role
			r.Role = &role
		}
	}
	if spec.Worktree != nil {
		r.Worktree = *spec.Worktree
	}
	for _, v := range spec.Env {
		r.Env.Set(v.Key, v.Value.String())
	}
	// A validated idle block always has a task, possibly "".
	if spec.Idle != nil {
		r.Idle = &domain.Idle{
			Task:      spec.Idle.Task,
			Frequency: DefaultIdleFrequency,
			Variance:  DefaultIdleVariance,
		}
		if spec.Idle.Frequency != nil {
			r.Idle.Frequency = *spec.Idle.Frequency
		}
		if spec.Idle.Variance != nil {
			r.Idle.Variance = *spec.Idle.Variance
		}
	}
	return r
}

// NormalizeAll normalizes specs in order.
func NormalizeAll(specs []domain.Spec) []domain.Record {
	records := make([]domain.Record, len(specs))
	for i, s := range specs {
		records[i] = Normalize(s)
	}
	return records
}

// Build runs the full pipeline over a raw agent list: validation,
// duplicate detection and normalization. Nothing is normalized unless the
// whole list is valid.
func Build(raw []any, log *logging.Logger) ([]domain.Record, error) {
	vlog := log.Sub("validate")
	for i, entry := range raw {
		if extra := unknownFields(entry); len(extra) > 0 {
			vlog.Debug().Int("index", i).Strs("fields", extra).Msg("ignoring unknown agent fields")
		}
	}

	specs, issues := Validate(raw)
	if len(issues) > 0 {
		vlog.Debug().Int("issues", len(issues)).Msg("validation failed")
		return nil, &ValidationError{Issues: issues}
	}
	if dups := FindDuplicates(specs); len(dups) > 0 {
		return nil, &DuplicateError{Names: dups}
	}

	vlog.Debug().Int("agents", len(specs)).Msg("validated agents")
	return NormalizeAll(specs), nil
}

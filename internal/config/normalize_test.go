package config

import (
	"errors"
	"fmt"
	"maps"
	"testing"

	"github.com/soyeahso/workflow-agents/internal/domain"
	"github.com/soyeahso/workflow-agents/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func envKeys(e domain.Env) []string {
	var keys []string
	for k := range e.All() {
		keys = append(keys, k)
	}
	return keys
}

func TestNormalize_Defaults(t *testing.T) {
	r := Normalize(domain.Spec{Name: "build"})

	assert.Equal(t, "build", r.Name)
	assert.Equal(t, "build", r.Label)
	require.NotNil(t, r.Role)
	assert.Equal(t, "build", *r.Role)
	assert.True(t, r.Worktree)
	assert.Zero(t, r.Env.Len())
	assert.Nil(t, r.Idle)
	assert.False(t, r.IsUser)
}

func TestNormalize_UserDefaults(t *testing.T) {
	r := Normalize(domain.Spec{Name: "me", IsUser: ptr(true)})
	assert.Nil(t, r.Role)
	assert.False(t, r.Worktree)
	assert.True(t, r.IsUser)
	assert.Equal(t, "me", r.Label)
}

func TestNormalize_UserRoleAlwaysNull(t *testing.T) {
	r := Normalize(domain.Spec{Name: "me", HasRole: true, Role: ptr("pm"), IsUser: ptr(true)})
	assert.Nil(t, r.Role)
}

func TestNormalize_ExplicitNullRole(t *testing.T) {
	r := Normalize(domain.Spec{Name: "observer", HasRole: true})
	assert.Nil(t, r.Role, "a present null role is kept as null")
}

func TestNormalize_ExplicitFields(t *testing.T) {
	r := Normalize(domain.Spec{
		Name:     "pm",
		Label:    ptr("Project manager"),
		HasRole:  true,
		Role:     ptr("planner"),
		Worktree: ptr(false),
		IsUser:   ptr(false),
	})
	assert.Equal(t, "Project manager", r.Label)
	assert.Equal(t, "planner", *r.Role)
	assert.False(t, r.Worktree)
}

func TestNormalize_UserWithWorktree(t *testing.T) {
	r := Normalize(domain.Spec{Name: "me", IsUser: ptr(true), Worktree: ptr(true)})
	assert.True(t, r.Worktree)
}

func TestNormalize_EnvStringified(t *testing.T) {
	r := Normalize(domain.Spec{Name: "pm", Env: []domain.EnvVar{
		{Key: "ACTOR", Value: domain.StringScalar("pm")},
		{Key: "RETRIES", Value: domain.IntScalar(30)},
		{Key: "RATIO", Value: domain.FloatScalar(0.25)},
		{Key: "DEBUG", Value: domain.BoolScalar(true)},
		{Key: "QUIET", Value: domain.BoolScalar(false)},
	}})
	assert.Equal(t, map[string]string{
		"ACTOR":   "pm",
		"RETRIES": "30",
		"RATIO":   "0.25",
		"DEBUG":   "true",
		"QUIET":   "false",
	}, maps.Collect(r.Env.All()))
	assert.Equal(t, []string{"ACTOR", "RETRIES", "RATIO", "DEBUG", "QUIET"}, envKeys(r.Env))
}

func TestNormalize_IdleDefaults(t *testing.T) {
	r := Normalize(domain.Spec{Name: "x", Idle: &domain.IdleSpec{Task: "poll"}})
	require.NotNil(t, r.Idle)
	assert.Equal(t, domain.Idle{Task: "poll", Frequency: 30, Variance: 10}, *r.Idle)
}

func TestNormalize_IdleExplicit(t *testing.T) {
	r := Normalize(domain.Spec{Name: "x", Idle: &domain.IdleSpec{Task: "poll", Frequency: ptr(0), Variance: ptr(3)}})
	require.NotNil(t, r.Idle)
	assert.Equal(t, domain.Idle{Task: "poll", Frequency: 0, Variance: 3}, *r.Idle)
}

func TestBuild_IdleEmptyTaskKept(t *testing.T) {
	raw, err := parseAgents([]byte("agents:\n  - name: x\n    idle: {task: \"\"}\n"), FormatYAML, "agents.yaml")
	require.NoError(t, err)

	records, err := Build(raw, logging.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Idle)
	assert.Equal(t, domain.Idle{Task: "", Frequency: 30, Variance: 10}, *records[0].Idle)
}

func TestBuild_IdleNullOrAbsent(t *testing.T) {
	raw := parseYAML(t, `
agents:
  - name: a
    idle: null
  - name: b
`)
	records, err := Build(raw, logging.Nop())
	require.NoError(t, err)
	for _, r := range records {
		assert.Nil(t, r.Idle, r.Name)
	}
}

func TestNormalize_WorktreeDefaultsToNotUser(t *testing.T) {
	for _, isUser := range []bool{true, false} {
		t.Run(fmt.Sprint(isUser), func(t *testing.T) {
			r := Normalize(domain.Spec{Name: "a", IsUser: ptr(isUser)})
			assert.Equal(t, !isUser, r.Worktree)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := parseYAML(t, `
agents:
  - name: pm
    env: {N: 1, F: 2.5, B: false}
    idle: {task: poll}
  - name: observer
    role: null
    worktree: false
  - name: me
    label: Me
    role: ignored
    is_user: true
`)
	records, err := Build(raw, logging.Nop())
	require.NoError(t, err)

	for _, r := range records {
		t.Run(r.Name, func(t *testing.T) {
			assert.Equal(t, r, Normalize(r.Spec()))
		})
	}
}

func TestBuild_IdleTaskOnly(t *testing.T) {
	records, err := Build([]any{map[string]any{"name": "x", "idle": map[string]any{"task": "poll"}}}, logging.Nop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Idle)
	assert.Equal(t, domain.Idle{Task: "poll", Frequency: 30, Variance: 10}, *records[0].Idle)
}

func TestBuild_PreservesOrder(t *testing.T) {
	raw := parseYAML(t, `
agents:
  - name: zeta
  - name: alpha
  - name: mid
  - name: me
    is_user: true
`)
	records, err := Build(raw, logging.Nop())
	require.NoError(t, err)
	require.Len(t, records, len(raw))

	var names []string
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid", "me"}, names)
}

func TestBuild_ValidationError(t *testing.T) {
	raw := parseYAML(t, `
agents:
  - name: a
    worktree: nope
  - name: a
`)
	records, err := Build(raw, logging.Nop())
	assert.Nil(t, records)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Issues, 1, "duplicates are only checked once validation passes")
	assert.Equal(t, "worktree", ve.Issues[0].Field)
}

func TestBuild_DuplicateNames(t *testing.T) {
	raw := parseYAML(t, `
agents:
  - name: a
  - name: b
  - name: a
`)
	records, err := Build(raw, logging.Nop())
	assert.Nil(t, records)

	var de *DuplicateError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, []string{"a"}, de.Names)
}

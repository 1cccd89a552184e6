package domain

// Record is the canonical, fully populated description of one workflow agent
// pane as emitted to the shell orchestration layer.
type Record struct {
	Name     string  `json:"name" yaml:"name" jsonschema:"description=Unique agent name"`
	Label    string  `json:"label" yaml:"label" jsonschema:"description=Display label (defaults to name)"`
	Role     *string `json:"role" yaml:"role" jsonschema:"oneof_type=string;null,description=Work role; null for the user pane"`
	Worktree bool    `json:"worktree" yaml:"worktree" jsonschema:"description=Run the agent in its own worktree"`
	Env      Env     `json:"env" yaml:"env" jsonschema:"description=Environment variables exported into the pane"`
	Idle     *Idle   `json:"idle" yaml:"idle" jsonschema:"description=Periodic idle task; null when none"`
	IsUser   bool    `json:"is_user" yaml:"is_user" jsonschema:"description=Marks the human operator pane"`
}

// Idle describes a periodic task run while an agent pane is idle.
type Idle struct {
	Task      string `json:"task" yaml:"task"`
	Frequency int    `json:"frequency" yaml:"frequency"` // seconds
	Variance  int    `json:"variance" yaml:"variance"`   // seconds
}

// Spec is a validated agent entry as written in the config. Nil pointers
// mean the field was absent.
type Spec struct {
	Name     string
	Label    *string
	Role     *string
	HasRole  bool // role key present; Role is nil when it was null
	Worktree *bool
	Env      []EnvVar // nil when absent
	Idle     *IdleSpec
	IsUser   *bool
}

// IdleSpec is the idle block of a Spec.
type IdleSpec struct {
	Task      string
	Frequency *int
	Variance  *int
}

// Spec returns the fully explicit Spec describing r.
func (r Record) Spec() Spec {
	s := Spec{
		Name:     r.Name,
		Label:    ptr(r.Label),
		HasRole:  true,
		Worktree: ptr(r.Worktree),
		Env:      make([]EnvVar, 0, r.Env.Len()),
		IsUser:   ptr(r.IsUser),
	}
	if r.Role != nil {
		s.Role = ptr(*r.Role)
	}
	for k, v := range r.Env.All() {
		s.Env = append(s.Env, EnvVar{Key: k, Value: StringScalar(v)})
	}
	if r.Idle != nil {
		s.Idle = &IdleSpec{
			Task:      r.Idle.Task,
			Frequency: ptr(r.Idle.Frequency),
			Variance:  ptr(r.Idle.Variance),
		}
	}
	return s
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	if r.Role != nil {
		c.Role = ptr(*r.Role)
	}
	c.Env = r.Env.Clone()
	if r.Idle != nil {
		idle := *r.Idle
		c.Idle = &idle
	}
	return c
}

func ptr[T any](v T) *T { return &v }

package domain

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Env holds the environment variables exported into a pane. Keys keep the
// order in which they were first set. The zero value is an empty Env.
type Env struct {
	vars *orderedmap.OrderedMap[string, string]
}

// EnvOf builds an Env from alternating key and value arguments. A trailing
// key without a value is ignored.
func EnvOf(kv ...string) Env {
	var e Env
	for i := 0; i+1 < len(kv); i += 2 {
		e.Set(kv[i], kv[i+1])
	}
	return e
}

// EnvVar is one key/value pair of an agent's env block as written in the
// config.
type EnvVar struct {
	Key   string
	Value Scalar
}

// Set assigns value to key. A new key is appended after the existing ones.
func (e *Env) Set(key, value string) {
	if e.vars == nil {
		e.vars = orderedmap.New[string, string]()
	}
	e.vars.Set(key, value)
}

// Get returns the value of key.
func (e Env) Get(key string) (string, bool) {
	if e.vars == nil {
		return "", false
	}
	return e.vars.Get(key)
}

// Len returns the number of variables.
func (e Env) Len() int {
	if e.vars == nil {
		return 0
	}
	return e.vars.Len()
}

// All iterates over the variables in order.
func (e Env) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if e.vars == nil {
			return
		}
		for pair := e.vars.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy of e.
func (e Env) Clone() Env {
	var c Env
	for k, v := range e.All() {
		c.Set(k, v)
	}
	return c
}

// MarshalJSON writes the variables in order without HTML escaping.
func (e Env) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	str := func(s string) error {
		if err := enc.Encode(s); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		return nil
	}

	buf.WriteByte('{')
	first := true
	for k, v := range e.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := str(k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := str(v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *Env) UnmarshalJSON(data []byte) error {
	*e = Env{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	vars := orderedmap.New[string, string]()
	if err := vars.UnmarshalJSON(data); err != nil {
		return err
	}
	e.adopt(vars)
	return nil
}

func (e Env) MarshalYAML() (any, error) {
	if e.Len() == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}, nil
	}
	return e.vars.MarshalYAML()
}

func (e *Env) UnmarshalYAML(node *yaml.Node) error {
	*e = Env{}
	if node.ShortTag() == "!!null" {
		return nil
	}
	vars := orderedmap.New[string, string]()
	if err := vars.UnmarshalYAML(node); err != nil {
		return err
	}
	e.adopt(vars)
	return nil
}

// adopt keeps a decoded map only when it has entries so an empty Env always
// has the zero representation.
func (e *Env) adopt(vars *orderedmap.OrderedMap[string, string]) {
	if vars.Len() > 0 {
		e.vars = vars
	}
}

// JSONSchema describes Env as a string-valued object.
func (Env) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		AdditionalProperties: &jsonschema.Schema{Type: "string"},
	}
}

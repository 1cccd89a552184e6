package config

import (
	"errors"
	"math"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// mapping is a string-keyed mapping that remembers its source key order.
type mapping = orderedmap.OrderedMap[string, any]

// canonical folds the value shapes produced by the YAML and TOML decoders
// into one: map[string]any, []any, string, int64, float64, bool and nil.
// Mappings with non-string keys stay map[any]any so validation can reject
// them where string keys are required.
func canonical(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = canonical(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(val))
		allStrings := true
		for k, e := range val {
			if _, ok := k.(string); !ok {
				allStrings = false
			}
			out[k] = canonical(e)
		}
		if !allStrings {
			return out
		}
		strMap := make(map[string]any, len(out))
		for k, e := range out {
			strMap[k.(string)] = e
		}
		return strMap
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = canonical(e)
		}
		return out
	case []map[string]any:
		// TOML arrays of tables
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = canonical(e)
		}
		return out
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return canonical(uint64(val))
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		if val <= math.MaxInt64 {
			return int64(val)
		}
		return val
	case float32:
		return float64(val)
	default:
		return v
	}
}

// withKeyOrder rebuilds the string-keyed mappings of a canonical value as
// ordered mappings, taking key order from the YAML node it was decoded from.
// Keys that do not appear in the node, such as those pulled in by a merge
// key, follow in sorted order.
func withKeyOrder(v any, n *yaml.Node) any {
	if n == nil {
		return v
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return v
		}
		return withKeyOrder(v, n.Content[0])
	case yaml.AliasNode:
		return withKeyOrder(v, n.Alias)
	}

	switch val := v.(type) {
	case map[string]any:
		out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(val)))
		var children map[string]*yaml.Node
		if n.Kind == yaml.MappingNode {
			children = make(map[string]*yaml.Node, len(n.Content)/2)
			for i := 0; i+1 < len(n.Content); i += 2 {
				k := n.Content[i]
				if _, ok := val[k.Value]; ok && k.Kind == yaml.ScalarNode {
					if _, seen := children[k.Value]; !seen {
						children[k.Value] = n.Content[i+1]
						out.Set(k.Value, nil)
					}
				}
			}
		}
		for _, k := range sortedKeys(val) {
			out.Set(k, withKeyOrder(val[k], children[k]))
		}
		return out
	case []any:
		if n.Kind != yaml.SequenceNode || len(n.Content) != len(val) {
			return v
		}
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = withKeyOrder(e, n.Content[i])
		}
		return out
	default:
		return v
	}
}

// asMapping returns the string-keyed entries of a decoded mapping.
// nonStringKeys reports whether any key had to be skipped.
func asMapping(v any) (m map[string]any, nonStringKeys bool, ok bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, false, true
	case *mapping:
		m = make(map[string]any, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = pair.Value
		}
		return m, false, true
	case map[any]any:
		m = make(map[string]any, len(val))
		for k, e := range val {
			if s, isStr := k.(string); isStr {
				m[s] = e
			} else {
				nonStringKeys = true
			}
		}
		return m, nonStringKeys, true
	default:
		return nil, false, false
	}
}

// mappingKeys returns the string keys of a decoded mapping in source order
// when it is known, sorted otherwise.
func mappingKeys(v any) []string {
	if om, ok := v.(*mapping); ok {
		keys := make([]string, 0, om.Len())
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			keys = append(keys, pair.Key)
		}
		return keys
	}
	m, _, ok := asMapping(v)
	if !ok {
		return nil
	}
	return sortedKeys(m)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

var (
	errNotInteger = errors.New("not an integer")
	errIntRange   = errors.New("integer out of range")
)

// asInt accepts only true integers; booleans and floats are rejected.
func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, errIntRange
		}
		return int(n), nil
	case uint64:
		// canonical leaves only values above MaxInt64 as uint64
		return 0, errIntRange
	default:
		return 0, errNotInteger
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/soyeahso/workflow-agents/internal/domain"
)

// DuplicateError lists agent names that appear more than once.
type DuplicateError struct {
	Names []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate agent names: %s", strings.Join(e.Names, ", "))
}

// FindDuplicates returns each name that occurs more than once, in the order
// of its first repeat. Names are compared exactly.
func FindDuplicates(specs []domain.Spec) []string {
	seen := make(map[string]bool, len(specs))
	reported := map[string]bool{}
	var dups []string
	for _, s := range specs {
		if seen[s.Name] && !reported[s.Name] {
			dups = append(dups, s.Name)
			reported[s.Name] = true
		}
		seen[s.Name] = true
	}
	return dups
}

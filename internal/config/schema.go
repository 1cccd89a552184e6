package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/soyeahso/workflow-agents/internal/domain"
)

const recordSchemaID = "workflow-agent-record.json"

// RecordSchema returns the JSON Schema of one emitted agent record.
func RecordSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(&domain.Record{})
	schema.ID = jsonschema.ID(recordSchemaID)
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.Title = "Workflow agent record"

	// idle is emitted as null when there is no idle task.
	if idle, ok := schema.Properties.Get("idle"); ok {
		desc := idle.Description
		idle.Description = ""
		schema.Properties.Set("idle", &jsonschema.Schema{
			Description: desc,
			AnyOf:       []*jsonschema.Schema{idle, {Type: "null"}},
		})
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal record schema: %w", err)
	}
	return data, nil
}

package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateJSONSchema reflects Config into a JSON schema keyed by TOML names.
func GenerateJSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:   "toml",
		ExpandedStruct: true,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/docking/config.schema.json"
	schema.Title = "Docking Configuration"
	schema.Description = "Drag thresholds, region sizes and per-dockable overrides for the docking engine"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// Package schema provides access to the JSON schemas of jsonl-split's config
// file and run summary. It enables other tools to validate a config file
// before handing it to the CLI, or to decode the summary printed with
// --output json.
//
// Example usage:
//
//	s, err := schema.GetSchema()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	var configSchema map[string]interface{}
//	json.Unmarshal(s.Config, &configSchema)
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/lacquerai/jsonl-split/internal/schema"
)

// SchemaOutput holds the JSON schemas published by jsonl-split.
type SchemaOutput struct {
	// Config is the JSON Schema of the config file (config.yaml). Keys are
	// snake_case, e.g. train_ratio and valid_ratio.
	Config json.RawMessage `json:"config"`
	// Summary is the JSON Schema of the run summary written to stdout with
	// --output json or --output yaml.
	Summary json.RawMessage `json:"summary"`
}

// GetSchema returns the config file and run summary schemas.
//
// Returns:
//   - *SchemaOutput: Both schemas as raw JSON documents
//   - error: Any error that occurred while reflecting or marshaling a schema
func GetSchema() (*SchemaOutput, error) {
	doc, err := schema.New()
	if err != nil {
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &SchemaOutput{
		Config:  doc.Config,
		Summary: doc.Summary,
	}, nil
}

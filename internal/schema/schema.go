// Package schema generates JSON schemas for the config file and the run
// summary.
package schema

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/lacquerai/jsonl-split/internal/config"
	"github.com/lacquerai/jsonl-split/internal/engine"
	"github.com/stoewer/go-strcase"
)

// Document bundles the schemas printed by the schema command.
type Document struct {
	Config  json.RawMessage `json:"config"`
	Summary json.RawMessage `json:"summary"`
}

// NewReflector returns a reflector that emits snake_case property and
// definition names.
func NewReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		KeyNamer: strcase.SnakeCase,
		Namer: func(t reflect.Type) string {
			return strcase.SnakeCase(t.Name())
		},
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
}

// ConfigSchema returns the schema of the config file.
func ConfigSchema() ([]byte, error) {
	s := NewReflector().Reflect(&config.Config{})
	s.Title = "jsonl-split configuration"
	return json.MarshalIndent(s, "", "  ")
}

// SummarySchema returns the schema of the JSON/YAML run summary.
func SummarySchema() ([]byte, error) {
	s := NewReflector().Reflect(&engine.Result{})
	s.Title = "jsonl-split run summary"
	return json.MarshalIndent(s, "", "  ")
}

// New returns both schemas.
func New() (*Document, error) {
	cfg, err := ConfigSchema()
	if err != nil {
		return nil, err
	}
	summary, err := SummarySchema()
	if err != nil {
		return nil, err
	}
	return &Document{Config: cfg, Summary: summary}, nil
}

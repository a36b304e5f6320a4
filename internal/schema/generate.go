// Package schema generates the JSON Schema of the tmuxflash config file.
package schema

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"github.com/smykla-skalski/tmuxflash/pkg/config"
)

const (
	schemaURI   = "https://json-schema.org/draft/2020-12/schema"
	title       = "tmuxflash configuration"
	description = "Configuration for the tmuxflash watcher and its notifiers."
)

// Generate reflects config.Config into a schema.
func Generate() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}

	s := r.Reflect(&config.Config{})
	s.Version = schemaURI
	s.Title = title
	s.Description = description

	return s
}

// GenerateJSON renders the schema followed by a newline, pretty-printed when
// indent is set.
func GenerateJSON(indent bool) ([]byte, error) {
	marshal := json.Marshal
	if indent {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}

	data, err := marshal(Generate())
	if err != nil {
		return nil, errors.Wrap(err, "marshaling schema to JSON")
	}

	return append(data, '\n'), nil
}

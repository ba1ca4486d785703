package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// profileSchema is the JSON Schema every external profile file must satisfy
// before the records are compiled. Schema violations are startup-fatal, same
// as rule compilation failures.
const profileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["id", "display_name", "signals", "rules"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "display_name": {"type": "string", "minLength": 1},
      "signals": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
      "currency": {"type": "string", "pattern": "^[A-Z]{3}$"},
      "european_amounts": {"type": "boolean"},
      "date_layouts": {"type": "array", "items": {"type": "string"}},
      "rules": {
        "type": "object",
        "required": [
          "STATEMENT_DATE",
          "PAYMENT_DUE_DATE",
          "MINIMUM_PAYMENT",
          "TOTAL_BALANCE",
          "ACCOUNT_IDENTIFIER"
        ],
        "additionalProperties": {
          "type": "object",
          "properties": {
            "patterns": {"type": "array", "items": {"type": "string", "minLength": 1}},
            "kind": {"enum": ["DATE", "CURRENCY", "MASKED_ACCOUNT"]},
            "anchor": {"type": "string"},
            "window": {"type": "integer", "minimum": 0, "maximum": 5},
            "absent": {"type": "boolean"}
          },
          "additionalProperties": false
        }
      }
    },
    "additionalProperties": false
  }
}`

// Load reads a profile set from JSON, validating it against the embedded
// schema first so malformed files fail with a precise path instead of a
// half-compiled registry.
func Load(r io.Reader) ([]IssuerProfile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profiles.schema.json", strings.NewReader(profileSchema)); err != nil {
		return nil, fmt.Errorf("add profile schema: %w", err)
	}
	schema, err := compiler.Compile("profiles.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile profile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("profiles do not match schema: %w", err)
	}

	var profiles []IssuerProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

// LoadFile loads, validates and compiles a profile file into a Registry.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer f.Close()

	profiles, err := Load(f)
	if err != nil {
		return nil, err
	}
	return NewRegistry(profiles)
}

// Package schema generates JSON Schema documents for the raw catalog payloads
// and the decoded records.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/kosarica/catalog-service/internal/decode"
	"github.com/kosarica/catalog-service/internal/types"
)

// Group is a set of related types written to one schema file
type Group struct {
	Name   string
	Types  []any
	Output string
}

// Groups returns the schema files produced by schema-gen
func Groups() []Group {
	return []Group{
		{
			Name: "raw",
			Types: []any{
				decode.RawPublication{},
				decode.RawOffer{},
			},
			Output: "raw.json",
		},
		{
			Name: "catalog",
			Types: []any{
				types.Publication{},
				types.Offer{},
				types.DecodeError{},
				types.DecodeWarning{},
			},
			Output: "catalog.json",
		},
	}
}

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		// Upstream adds fields over time; unknown keys are ignored when decoding
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
}

// ForKind returns the schema of the raw payload for one record kind
func ForKind(kind types.RecordKind) (*jsonschema.Schema, error) {
	r := newReflector()
	switch kind {
	case types.KindPublication:
		return r.Reflect(decode.RawPublication{}), nil
	case types.KindOffer:
		return r.Reflect(decode.RawOffer{}), nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// GroupSchema creates a combined schema with all types in a group
func GroupSchema(group Group) map[string]any {
	reflector := newReflector()
	definitions := make(map[string]any)

	for _, t := range group.Types {
		s := reflector.Reflect(t)
		for name, def := range s.Definitions {
			definitions[name] = def
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://catalog-service/schemas/%s.json", group.Name),
		"title":       fmt.Sprintf("%s Catalog Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s catalog types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

// WriteGroups writes every group schema into dir
func WriteGroups(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, group := range Groups() {
		path := filepath.Join(dir, group.Output)
		data, err := json.MarshalIndent(GroupSchema(group), "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to marshal %s schema: %w", group.Name, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

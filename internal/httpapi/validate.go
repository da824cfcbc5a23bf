package httpapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const maxBodyBytes = 1 << 20

//go:embed schemas/*.json
var schemaFiles embed.FS

// validator checks request bodies against the embedded JSON schemas.
type validator struct {
	schemas map[string]*jsonschema.Schema
}

func newValidator() (*validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	names, err := fs.Glob(schemaFiles, "schemas/*.json")
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}

	for _, name := range names {
		data, err := schemaFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	v := &validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[strings.TrimSuffix(path.Base(name), ".json")] = schema
	}
	return v, nil
}

// decode reads the body, validates it against the named schema and unmarshals
// it into dst. A non-empty result lists every problem found.
func (v *validator) decode(r *http.Request, schema string, dst any) []string {
	schemaDef, ok := v.schemas[schema]
	if !ok {
		return []string{fmt.Sprintf("unknown schema %q", schema)}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return []string{"cannot read request body"}
	}
	if len(body) > maxBodyBytes {
		return []string{"request body too large"}
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return []string{"request body must be valid JSON"}
	}

	if err := schemaDef.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return []string{err.Error()}
		}
		var problems []string
		collectSchemaErrors(ve, &problems)
		if len(problems) == 0 {
			problems = append(problems, ve.Message)
		}
		return problems
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return []string{"request body does not match the expected shape"}
	}
	return nil
}

// collectSchemaErrors gathers the leaf causes of err as "field: message".
func collectSchemaErrors(err *jsonschema.ValidationError, out *[]string) {
	if len(err.Causes) == 0 {
		field := strings.ReplaceAll(strings.TrimPrefix(err.InstanceLocation, "/"), "/", ".")
		if field == "" {
			*out = append(*out, err.Message)
			return
		}
		*out = append(*out, field+": "+err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, out)
	}
}

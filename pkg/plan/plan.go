package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	errs "github.com/matzehuels/planviz/pkg/errors"
)

// DefaultPath is where the plan is looked up when no path is given,
// relative to the working directory.
const DefaultPath = "../plan.json"

// Document is the subset of a Terraform plan used for feature detection.
// It is read-only once returned from [Load] or [Read].
type Document struct {
	Resources []Resource          `json:"resources"`
	Variables map[string]Variable `json:"variables"`
}

// Resource is one planned resource from planned_values.root_module.resources.
// Only Type drives detection; the other fields are kept for logging.
type Resource struct {
	Address      string `json:"address"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	ProviderName string `json:"provider_name"`
}

// Variable is a named input variable of the plan.
type Variable struct {
	Value any `json:"value"`
}

// Strings resolves the variable to a sequence of strings.
// It reports false unless Value is a list whose elements are all strings.
// An empty list resolves successfully to an empty slice.
func (v Variable) Strings() ([]string, bool) {
	switch vals := v.Value.(type) {
	case []string:
		return vals, true
	case []any:
		out := make([]string, 0, len(vals))
		for _, val := range vals {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// Empty returns a document with no resources and no variables.
// This is the defined state for a plan file that does not exist.
func Empty() *Document {
	return &Document{
		Resources: []Resource{},
		Variables: map[string]Variable{},
	}
}

// Variable returns the named variable and whether it is present.
func (d *Document) Variable(name string) (Variable, bool) {
	v, ok := d.Variables[name]
	return v, ok
}

// MergeVariables returns the document's variables layered over extra.
// Plan values win: extra only fills names the plan does not define.
// Neither input is modified.
func (d *Document) MergeVariables(extra map[string]Variable) map[string]Variable {
	out := make(map[string]Variable, len(d.Variables)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range d.Variables {
		out[k] = v
	}
	return out
}

// Load reads the plan at path.
//
// A path that does not exist yields [Empty] and a nil error. Any other read
// failure returns INVALID_PATH, and content that is not a JSON object returns
// INVALID_PLAN.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read plan %s", path)
	}
	doc, err := decode(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPlan, err, "decode plan %s", path)
	}
	return doc, nil
}

// Read decodes a plan from r with the same decode rules as [Load].
// A failing reader returns INVALID_PLAN. Read does not close r.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPlan, err, "read plan")
	}
	doc, err := decode(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPlan, err, "decode plan")
	}
	return doc, nil
}

// rawPlan keeps every branch raw so that shape mismatches below the top level
// degrade to defaults instead of failing the whole decode.
type rawPlan struct {
	PlannedValues json.RawMessage `json:"planned_values"`
	Variables     json.RawMessage `json:"variables"`
}

type rawValues struct {
	RootModule json.RawMessage `json:"root_module"`
}

type rawModule struct {
	Resources []json.RawMessage `json:"resources"`
}

func decode(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if data[0] != '{' {
		if !json.Valid(data) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return nil, fmt.Errorf("document is not a JSON object")
	}

	var raw rawPlan
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := Empty()
	doc.Resources = decodeResources(raw.PlannedValues)
	doc.Variables = decodeVariables(raw.Variables)
	return doc, nil
}

func decodeResources(data json.RawMessage) []Resource {
	out := []Resource{}
	if isNull(data) {
		return out
	}
	var values rawValues
	if err := json.Unmarshal(data, &values); err != nil || isNull(values.RootModule) {
		return out
	}
	var mod rawModule
	if err := json.Unmarshal(values.RootModule, &mod); err != nil {
		return out
	}
	for _, item := range mod.Resources {
		var r Resource
		if err := json.Unmarshal(item, &r); err != nil {
			// Keep the entry so counts match the plan; an empty Type is skipped downstream.
			out = append(out, Resource{})
			continue
		}
		out = append(out, r)
	}
	return out
}

func decodeVariables(data json.RawMessage) map[string]Variable {
	out := map[string]Variable{}
	if isNull(data) {
		return out
	}
	var vars map[string]json.RawMessage
	if err := json.Unmarshal(data, &vars); err != nil {
		return out
	}
	for name, item := range vars {
		var v Variable
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out[name] = v
	}
	return out
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

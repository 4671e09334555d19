package plan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	errs "github.com/matzehuels/planviz/pkg/errors"
)

// LoadVarFile reads a Terraform variable definitions file (terraform.tfvars
// or *.auto.tfvars) and returns its attributes as variables.
//
// Unlike [Load], a missing var file is an error (FILE_NOT_FOUND): the caller
// asked for it explicitly. Syntax errors and expressions that need an
// evaluation context (references, function calls) return INVALID_VARFILE.
func LoadVarFile(path string) (map[string]Variable, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "var file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read var file %s", path)
	}
	return ParseVarFile(src, path)
}

// ParseVarFile decodes HCL variable definitions from src.
// filename is used only in diagnostics.
func ParseVarFile(src []byte, filename string) (map[string]Variable, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errs.Wrap(errs.ErrCodeInvalidVarFile, diags, "parse %s", filename)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errs.Wrap(errs.ErrCodeInvalidVarFile, diags, "decode %s", filename)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]Variable, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, errs.Wrap(errs.ErrCodeInvalidVarFile, diags, "evaluate %s in %s", name, filename)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidVarFile, err, "convert %s in %s", name, filename)
		}
		out[name] = Variable{Value: goVal}
	}
	return out, nil
}

// ctyToGo converts a cty value into the shapes encoding/json would produce
// for the same data, so var-file and plan variables are interchangeable.
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			v, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case ty.IsMapType(), ty.IsObjectType():
		out := make(map[string]any, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			v, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}

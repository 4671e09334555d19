package plan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/planviz/pkg/errors"
)

const fullPlan = `{
  "format_version": "1.2",
  "planned_values": {
    "root_module": {
      "resources": [
        {"address": "aws_s3_bucket.backup", "type": "aws_s3_bucket", "name": "backup", "provider_name": "registry.terraform.io/hashicorp/aws"},
        {"address": "aws_sns_topic.alerts", "type": "aws_sns_topic", "name": "alerts"}
      ]
    }
  },
  "variables": {
    "email_addresses": {"value": ["a@x.com", "b@y.com"]},
    "region": {"value": "eu-west-1"}
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(doc.Resources) != 0 {
		t.Errorf("Resources = %v, want empty", doc.Resources)
	}
	if len(doc.Variables) != 0 {
		t.Errorf("Variables = %v, want empty", doc.Variables)
	}
	if doc.Resources == nil || doc.Variables == nil {
		t.Error("empty document should carry non-nil collections")
	}
}

func TestLoadFullPlan(t *testing.T) {
	doc, err := Load(writeFile(t, "plan.json", fullPlan))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(doc.Resources) != 2 {
		t.Fatalf("len(Resources) = %d, want 2", len(doc.Resources))
	}
	if doc.Resources[0].Type != "aws_s3_bucket" || doc.Resources[0].Address != "aws_s3_bucket.backup" {
		t.Errorf("Resources[0] = %+v", doc.Resources[0])
	}
	if doc.Resources[1].Type != "aws_sns_topic" {
		t.Errorf("Resources[1].Type = %q, want aws_sns_topic", doc.Resources[1].Type)
	}

	emails, ok := doc.Variables["email_addresses"].Strings()
	if !ok || len(emails) != 2 || emails[0] != "a@x.com" {
		t.Errorf("email_addresses = %v (ok=%v)", emails, ok)
	}
	if v, ok := doc.Variable("region"); !ok || v.Value != "eu-west-1" {
		t.Errorf("region = %v (ok=%v)", v.Value, ok)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `{"planned_values": {`},
		{"not json", `resource "aws_s3_bucket" "b" {}`},
		{"empty file", ``},
		{"whitespace only", "  \n\t"},
		{"top-level array", `[{"type": "aws_s3_bucket"}]`},
		{"top-level string", `"plan"`},
		{"trailing garbage", `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(writeFile(t, "plan.json", tt.content))
			if err == nil {
				t.Fatalf("Load() = %+v, want error", doc)
			}
			if !errs.Is(err, errs.ErrCodeInvalidPlan) {
				t.Errorf("error code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidPlan)
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errs.Is(err, errs.ErrCodeInvalidPath) {
		t.Errorf("Load(dir) error = %v, want %v", err, errs.ErrCodeInvalidPath)
	}
}

func TestReadShapeDefaults(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantResources int
		wantVariables int
	}{
		{"empty object", `{}`, 0, 0},
		{"null branches", `{"planned_values": null, "variables": null}`, 0, 0},
		{"no root module", `{"planned_values": {}}`, 0, 0},
		{"no resources", `{"planned_values": {"root_module": {}}}`, 0, 0},
		{"resources not a list", `{"planned_values": {"root_module": {"resources": {"type": "aws_s3_bucket"}}}}`, 0, 0},
		{"planned_values wrong type", `{"planned_values": [1, 2]}`, 0, 0},
		{"variables wrong type", `{"variables": ["email_addresses"]}`, 0, 0},
		{"variable entry wrong type", `{"variables": {"email_addresses": "a@x.com", "region": {"value": "x"}}}`, 0, 1},
		{"child modules ignored", `{"planned_values": {"root_module": {"child_modules": [{"resources": [{"type": "aws_s3_bucket"}]}]}}}`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Read(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(doc.Resources) != tt.wantResources {
				t.Errorf("len(Resources) = %d, want %d", len(doc.Resources), tt.wantResources)
			}
			if len(doc.Variables) != tt.wantVariables {
				t.Errorf("len(Variables) = %d, want %d", len(doc.Variables), tt.wantVariables)
			}
		})
	}
}

func TestReadMalformedResourceEntries(t *testing.T) {
	content := `{"planned_values": {"root_module": {"resources": [
		{"type": "aws_s3_bucket"},
		"not-an-object",
		{"name": "no_type"},
		{"type": 42},
		{"type": "aws_sns_topic"}
	]}}}`

	doc, err := Read(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(doc.Resources) != 5 {
		t.Fatalf("len(Resources) = %d, want 5", len(doc.Resources))
	}

	var types []string
	for _, r := range doc.Resources {
		types = append(types, r.Type)
	}
	want := []string{"aws_s3_bucket", "", "", "", "aws_sns_topic"}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("Resources[%d].Type = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestVariableStrings(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   []string
		wantOK bool
	}{
		{"json list", []any{"a@x.com", "b@y.com"}, []string{"a@x.com", "b@y.com"}, true},
		{"string slice", []string{"a@x.com"}, []string{"a@x.com"}, true},
		{"empty list", []any{}, []string{}, true},
		{"mixed list", []any{"a@x.com", 1.0}, nil, false},
		{"string", "a@x.com", nil, false},
		{"nil", nil, nil, false},
		{"map", map[string]any{"a": "b"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Variable{Value: tt.value}.Strings()
			if ok != tt.wantOK {
				t.Fatalf("Strings() ok = %v, want %v", ok, tt.wantOK)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Strings() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Strings()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMergeVariables(t *testing.T) {
	doc := &Document{Variables: map[string]Variable{
		"email_addresses": {Value: []any{"plan@x.com"}},
	}}
	extra := map[string]Variable{
		"email_addresses": {Value: []any{"file@x.com"}},
		"region":          {Value: "us-east-1"},
	}

	merged := doc.MergeVariables(extra)

	emails, _ := merged["email_addresses"].Strings()
	if len(emails) != 1 || emails[0] != "plan@x.com" {
		t.Errorf("plan value should win, got %v", emails)
	}
	if merged["region"].Value != "us-east-1" {
		t.Errorf("region = %v, want var-file value", merged["region"].Value)
	}
	if len(doc.Variables) != 1 {
		t.Error("MergeVariables should not modify the document")
	}
	if _, ok := extra["email_addresses"].Strings(); !ok || len(extra) != 2 {
		t.Error("MergeVariables should not modify extra")
	}
}

func TestMergeVariablesNil(t *testing.T) {
	merged := Empty().MergeVariables(nil)
	if merged == nil || len(merged) != 0 {
		t.Errorf("MergeVariables(nil) = %v, want empty map", merged)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestReadReaderFailure(t *testing.T) {
	_, err := Read(failingReader{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errs.Is(err, errs.ErrCodeInvalidPlan) {
		t.Errorf("Read() error = %v, want %v", err, errs.ErrCodeInvalidPlan)
	}
}

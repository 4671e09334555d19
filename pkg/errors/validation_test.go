package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "../plan.json", false},
		{"absolute", "/tmp/plan.json", false},
		{"nested", "infra/envs/prod/plan.json", false},
		{"empty", "", true},
		{"null byte", "plan\x00.json", true},
		{"newline", "plan\n.json", true},
		{"too long", strings.Repeat("a", maxPathLen+1), true},
		{"at limit", strings.Repeat("a", maxPathLen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.path, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantErr bool
	}{
		{"default", "secure_backup_architecture", false},
		{"in directory", "docs/diagrams/architecture", false},
		{"trailing slash", "docs/", true},
		{"dot", ".", true},
		{"dot dot", "docs/..", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.output)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			}
		})
	}
}

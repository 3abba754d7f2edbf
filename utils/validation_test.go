package utils

import (
	"strings"
	"testing"
)

func TestValidateEntityName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain name", "report", false},
		{"spaces inside", "my report", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"max length", strings.Repeat("a", 255), false},
		{"too long", strings.Repeat("a", 256), true},
		{"invalid utf8", "bad\xff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntityName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntityName(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("/Docs/Sub"); err != nil {
		t.Errorf("ValidatePath(/Docs/Sub) = %v, want nil", err)
	}
	if err := ValidatePath("/Docs/../etc"); err == nil {
		t.Error("ValidatePath accepted a traversal path")
	}
}

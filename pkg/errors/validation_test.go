package errors

import (
	"strings"
	"testing"
)

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name         string
		nodes, edges int
		limits       Limits
		wantErr      bool
	}{
		{"no limits", 1_000_000, 1_000_000, Limits{}, false},
		{"within", 10, 20, Limits{MaxNodes: 10, MaxEdges: 20}, false},
		{"too many nodes", 11, 0, Limits{MaxNodes: 10}, true},
		{"too many edges", 0, 21, Limits{MaxEdges: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.nodes, tt.edges, tt.limits)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateSize() code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"a", false},
		{"lane 2/worker", false},
		{"ünïcode", false},
		{"", true},
		{"tab\there", true},
		{"null\x00", true},
		{strings.Repeat("x", 257), true},
	}

	for _, tt := range tests {
		err := ValidateID("node", tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidGraph) {
			t.Errorf("ValidateID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidGraph)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"out.json", false},
		{"/tmp/result.yaml", false},
		{"", true},
		{"   ", true},
		{"bad\x00name", true},
	}

	for _, tt := range tests {
		if err := ValidateOutputPath(tt.path); (err != nil) != tt.wantErr {
			t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

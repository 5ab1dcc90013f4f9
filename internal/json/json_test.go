package json

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "single object", input: `{"name":"a"}`, wantErr: false},
		{name: "trailing data", input: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "trailing scalar", input: `{"name":"a"} 1`, wantErr: true},
		{name: "empty input", input: ``, wantErr: true},
		{name: "malformed", input: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst payload
			err := Decode(&dst, json.NewDecoder(strings.NewReader(tt.input)))
			if (err != nil) != tt.wantErr {
				t.Errorf("Decode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

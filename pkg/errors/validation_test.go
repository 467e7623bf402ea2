package errors

import (
	"strings"
	"testing"
)

func TestValidateCommentMarker(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"double slash", "//", false},
		{"hash", "#", false},
		{"semicolon", ";;", false},

		{"empty", "", true},
		{"too long", "//////////", true},
		{"space", "/ /", true},
		{"tab", "#\t", true},
		{"digit", "1", true},
		{"bracket", "[", true},
		{"move prefix", "move", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommentMarker(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCommentMarker(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateCommentMarker(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr bool
	}{
		{"valid", []byte(" 1 2\n\nmove 1 from 1 to 2\n"), false},

		{"empty", nil, true},
		{"whitespace only", []byte(" \n\t\n"), true},
		{"too large", []byte(strings.Repeat("x", MaxInputSize+1)), true},
		{"invalid utf8", []byte{0xff, 0xfe, '1'}, true},
		{"nul byte", []byte("1 2\x003"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStackToken(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"1", false},
		{"42", false},
		{"007", false},

		{"", true},
		{"0", true},
		{"000", true},
		{"-1", true},
		{"1a", true},
		{" 1", true},
	}

	for _, tt := range tests {
		err := ValidateStackToken(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStackToken(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

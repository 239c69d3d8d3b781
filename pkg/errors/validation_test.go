package errors

import (
	"math"
	"testing"
)

func TestValidateSelector(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"img", "img", false},
		{"upper case", "IMG", false},
		{"custom element", "photo-card", false},
		{"with digit", "h1", false},

		{"empty", "", true},
		{"too long", "a" + string(make([]byte, 70)), true},
		{"class selector", ".photo", true},
		{"descendant selector", "div img", true},
		{"attribute selector", "img[src]", true},
		{"leading digit", "1img", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelector(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSelector(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateSelector(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{"rotation", -10, 10, false},
		{"asymmetric", -20, 50, false},
		{"degenerate", 5, 5, false},
		{"inverted", 10, -10, true},
		{"nan min", math.NaN(), 1, true},
		{"nan max", 0, math.NaN(), true},
		{"inf max", 0, math.Inf(1), true},
		{"-inf min", math.Inf(-1), 0, true},
		{"both inf", math.Inf(-1), math.Inf(1), true},
		{"degenerate inf", math.Inf(1), math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("test", tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%v, %v) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"negative", -40, false},
		{"large", 2130, false},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
		{"-inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate("slot x", tt.v)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidConfig {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "index.html", false},
		{"nested", "site/wall/index.html", false},
		{"absolute", "/var/www/index.html", false},
		{"stdio", "-", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "index\x00.html", true},
		{"newline", "index\n.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

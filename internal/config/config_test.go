package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected rune
		wantErr  bool
	}{
		{"Comma", ",", ',', false},
		{"Escaped tab", "\\t", '\t', false},
		{"Literal tab", "\t", '\t', false},
		{"Tab alias", "tab", '\t', false},
		{"Pipe alias", "pipe", '|', false},
		{"Semicolon alias", "semicolon", ';', false},
		{"Unicode", "§", '§', false},
		{"Empty", "", 0, true},
		{"Multi character", "::", 0, true},
		{"Quote", "\"", 0, true},
		{"Newline", "\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDelimiter(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDelimiter(%q) error = %v; wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ResolveDelimiter(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateSheetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Default", "Sheet1", false},
		{"Spaces", "My Data", false},
		{"Empty", "", true},
		{"Too long", strings.Repeat("x", 32), true},
		{"Max length", strings.Repeat("x", 31), false},
		{"Slash", "a/b", true},
		{"Bracket", "a[1]", true},
		{"Apostrophe", "'quoted'", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSheetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSheetName(%q) error = %v; wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestLoadSettingsMissingOptionalFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if settings.Delimiter != "," || settings.SheetName != "Sheet1" || settings.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", settings)
	}
	if settings.BoldLabels == nil || !*settings.BoldLabels {
		t.Error("bold labels should default to true")
	}
}

func TestLoadSettingsMissingRequiredFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"), true); err == nil {
		t.Fatal("expected an error for a missing explicit settings file")
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "csv2xlsx.yaml")
	content := "delimiter: tab\nencoding: latin1\nsheet_name: Data\nlog_level: debug\nbold_labels: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path, true)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	params, err := NewParams(settings)
	if err != nil {
		t.Fatalf("NewParams failed: %v", err)
	}
	if params.Delimiter != '\t' {
		t.Errorf("Delimiter = %q; want tab", params.Delimiter)
	}
	if params.Encoding != "latin1" || params.SheetName != "Data" || params.BoldLabels {
		t.Errorf("unexpected params: %+v", params)
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Bad delimiter", "delimiter: ab\n"},
		{"Bad log level", "log_level: loud\n"},
		{"Bad sheet name", "sheet_name: \"a:b\"\n"},
		{"Bad yaml", "delimiter: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSettings(path, true); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestParamsValidate(t *testing.T) {
	base, err := NewParams(DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	base.InputFile = "in.csv"
	base.OutputPrefix = "report"

	if err := base.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	noInput := base
	noInput.InputFile = ""
	if err := noInput.Validate(); err == nil {
		t.Error("expected error for missing input")
	}

	noOutput := base
	noOutput.OutputPrefix = " "
	if err := noOutput.Validate(); err == nil {
		t.Error("expected error for missing output")
	}

	badDelimiter := base
	badDelimiter.Delimiter = '\n'
	if err := badDelimiter.Validate(); err == nil {
		t.Error("expected error for newline delimiter")
	}
}

// =============================================================================
// CSV to XLSX Converter - Configuration Module
// =============================================================================
//
// This module holds the parameters of a single conversion run and loads the
// optional YAML settings file that supplies defaults for them.
//
// PRECEDENCE (highest first):
//   1. Command-line flags explicitly set by the user
//   2. Settings file (csv2xlsx.yaml or --config)
//   3. Built-in defaults
//
// The settings file is only ever read. Nothing is persisted between runs.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is the settings file looked up when --config is not given.
const DefaultSettingsFile = "csv2xlsx.yaml"

// =============================================================================
// SETTINGS FILE STRUCTURE
// =============================================================================

// Settings holds the values that may be supplied by the YAML settings file.
// Every field is optional.
type Settings struct {
	// Delimiter is the field separator of the input file.
	// Accepts a single character or one of the aliases understood by
	// ResolveDelimiter ("tab", "pipe", ...).
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the input file.
	// Any name known to the WHATWG encoding index is accepted
	// (e.g. "utf-8", "latin1", "windows-1252", "utf-16").
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// SheetName is the name of the single worksheet in the output workbook.
	// Default: "Sheet1"
	SheetName string `yaml:"sheet_name"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// BoldLabels renders header and index cells bold with a thin border.
	// Default: true
	BoldLabels *bool `yaml:"bold_labels"`
}

// =============================================================================
// SETTINGS LOADING
// =============================================================================

// LoadSettings reads the settings file at path.
//
// PARAMETERS:
//   - path: The settings file to read.
//   - required: When false, a missing file yields the defaults instead of
//     an error. The CLI passes true only for an explicit --config.
//
// RETURNS:
//   - The settings with defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func LoadSettings(path string, required bool) (*Settings, error) {
	var settings Settings

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	applySettingsDefaults(&settings)

	if err := validateSettings(&settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &settings, nil
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	var settings Settings
	applySettingsDefaults(&settings)
	return &settings
}

// applySettingsDefaults sets default values for any unset option.
func applySettingsDefaults(settings *Settings) {
	if settings.Delimiter == "" {
		settings.Delimiter = ","
	}
	if settings.Encoding == "" {
		settings.Encoding = "UTF-8"
	}
	if settings.SheetName == "" {
		settings.SheetName = "Sheet1"
	}
	if settings.LogLevel == "" {
		settings.LogLevel = "info"
	}
	if settings.BoldLabels == nil {
		bold := true
		settings.BoldLabels = &bold
	}
}

// validateSettings checks the settings once defaults are applied.
func validateSettings(settings *Settings) error {
	if _, err := ResolveDelimiter(settings.Delimiter); err != nil {
		return err
	}

	switch strings.ToLower(settings.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", settings.LogLevel)
	}

	return ValidateSheetName(settings.SheetName)
}

// =============================================================================
// CONVERSION PARAMETERS
// =============================================================================

// Params holds the parameters of one conversion run. It is built once and
// passed by value; nothing modifies it after Validate succeeds.
type Params struct {
	// InputFile is the delimited file to convert.
	InputFile string

	// Delimiter is the resolved field separator.
	Delimiter rune

	// Encoding is the character encoding of InputFile.
	Encoding string

	// HasHeader marks the first row as column labels.
	HasHeader bool

	// HasIndex marks the first column as row labels.
	HasIndex bool

	// OutputPrefix is the output base name. ".xlsx" is appended verbatim.
	OutputPrefix string

	// SheetName is the worksheet name in the output workbook.
	SheetName string

	// BoldLabels styles header and index cells.
	BoldLabels bool
}

// NewParams builds run parameters from settings. Flag values are applied
// on top by the caller before Validate.
func NewParams(settings *Settings) (Params, error) {
	delimiter, err := ResolveDelimiter(settings.Delimiter)
	if err != nil {
		return Params{}, err
	}

	return Params{
		Delimiter:  delimiter,
		Encoding:   settings.Encoding,
		SheetName:  settings.SheetName,
		BoldLabels: settings.BoldLabels == nil || *settings.BoldLabels,
	}, nil
}

// Validate checks that the parameters describe a runnable conversion.
func (p Params) Validate() error {
	if strings.TrimSpace(p.InputFile) == "" {
		return fmt.Errorf("input file is required")
	}
	if strings.TrimSpace(p.OutputPrefix) == "" {
		return fmt.Errorf("output filename is required")
	}
	if p.Delimiter == 0 || p.Delimiter == '"' || p.Delimiter == '\r' || p.Delimiter == '\n' ||
		!utf8.ValidRune(p.Delimiter) || p.Delimiter == utf8.RuneError {
		return fmt.Errorf("invalid delimiter %q", p.Delimiter)
	}
	return ValidateSheetName(p.SheetName)
}

// =============================================================================
// HELPERS
// =============================================================================

// ResolveDelimiter turns a delimiter setting into a single rune.
//
// Besides any single character, the following aliases are accepted:
//   - "\t", "tab", "TAB"         -> tab
//   - "pipe", "PIPE"             -> |
//   - "semicolon", "SEMICOLON"   -> ;
func ResolveDelimiter(s string) (rune, error) {
	switch s {
	case "\\t", "tab", "TAB":
		return '\t', nil
	case "pipe", "PIPE":
		return '|', nil
	case "semicolon", "SEMICOLON":
		return ';', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}

	return r, nil
}

// ValidateSheetName applies the worksheet naming rules of the xlsx format:
// 1 to 31 characters, none of : \ / ? * [ ], and no leading or trailing
// apostrophe.
func ValidateSheetName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > 31 {
		return fmt.Errorf("sheet name must be 1-31 characters, got %d", n)
	}
	if strings.ContainsAny(name, ":\\/?*[]") {
		return fmt.Errorf("sheet name %q contains an invalid character", name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("sheet name %q cannot start or end with an apostrophe", name)
	}
	return nil
}

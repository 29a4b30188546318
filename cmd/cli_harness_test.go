package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/table"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/xlsxparser"
)

func TestCLIConvertHeaderNoIndex(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv", "a,b\n1,2\n3,4\n")
	prefix := filepath.Join(dir, "report")

	if _, _, err := runCLI(t, "--input_file", input, "--output_filename", prefix, "--it_has_header"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got, err := xlsxparser.ParseWithOptions(prefix+".xlsx", xlsxparser.Options{HasHeader: true})
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	want := &table.Table{
		Header: []string{"a", "b"},
		Rows: [][]table.Cell{
			{table.Number(1), table.Number(2)},
			{table.Number(3), table.Number(4)},
		},
	}
	if !got.Equal(want) {
		t.Fatalf("unexpected table: %v", got.Records())
	}
}

func TestCLIConvertTabDelimiterWithIndex(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.tsv", "id\tscore\nr1\t10\nr2\tn/a\n")
	prefix := filepath.Join(dir, "scores")

	_, _, err := runCLI(t,
		"--input_file", input,
		"--output_filename", prefix,
		"--delimiter", "tab",
		"--it_has_header",
		"--it_has_index",
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	got, err := xlsxparser.ParseWithOptions(prefix+".xlsx", xlsxparser.Options{HasHeader: true, HasIndex: true})
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	want := &table.Table{
		Header:    []string{"score"},
		IndexName: "id",
		Index:     []string{"r1", "r2"},
		Rows:      [][]table.Cell{{table.Number(10)}, {table.Text("n/a")}},
	}
	if !got.Equal(want) {
		t.Fatalf("unexpected table: %v", got.Records())
	}
}

func TestCLIConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "report")

	_, _, err := runCLI(t, "--input_file", filepath.Join(dir, "missing.csv"), "--output_filename", prefix)

	var pe *csvparser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *csvparser.ParseError, got %T (%v)", err, err)
	}
	if _, statErr := os.Stat(prefix + ".xlsx"); statErr == nil {
		t.Fatal("no output should be written for a missing input")
	}
}

func TestCLIConvertRequiresFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Missing input", []string{"--output_filename", "report"}},
		{"Missing output", []string{"--input_file", "input.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Fatal("expected a required flag error")
			}
		})
	}
}

func TestCLIConvertInvalidDelimiter(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv", "a\n")

	_, _, err := runCLI(t, "--input_file", input, "--output_filename", filepath.Join(dir, "report"), "--delimiter", "ab")
	if err == nil || !strings.Contains(err.Error(), "--delimiter") {
		t.Fatalf("expected a delimiter error, got %v", err)
	}
}

func TestCLIConvertUsesSettingsFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv", "a;b\n1;x\n")
	cfgPath := writeInput(t, dir, "settings.yaml", "delimiter: \";\"\nsheet_name: Data\n")
	prefix := filepath.Join(dir, "report")

	_, _, err := runCLI(t,
		"--config", cfgPath,
		"--input_file", input,
		"--output_filename", prefix,
		"--it_has_header",
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	f, err := excelize.OpenFile(prefix + ".xlsx")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); name != "Data" {
		t.Fatalf("sheet name = %q; want Data", name)
	}
	rows, err := f.GetRows("Data")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || strings.Join(rows[0], "|") != "a|b" || strings.Join(rows[1], "|") != "1|x" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestCLIConvertFlagsOverrideSettingsFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv", "a,b\n1,2\n")
	cfgPath := writeInput(t, dir, "settings.yaml", "delimiter: \";\"\n")
	prefix := filepath.Join(dir, "report")

	_, _, err := runCLI(t,
		"--config", cfgPath,
		"--input_file", input,
		"--output_filename", prefix,
		"--delimiter", ",",
		"--sheet_name", "Numbers",
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	got, err := xlsxparser.ParseWithOptions(prefix+".xlsx", xlsxparser.Options{SheetName: "Numbers"})
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if got.Width() != 2 || got.Len() != 2 {
		t.Fatalf("expected a 2x2 table, got %v", got.Records())
	}
}

func TestCLIConvertMissingSettingsFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv", "a\n")

	_, _, err := runCLI(t,
		"--config", filepath.Join(dir, "absent.yaml"),
		"--input_file", input,
		"--output_filename", filepath.Join(dir, "report"),
	)
	if err == nil || !strings.Contains(err.Error(), "failed to load settings") {
		t.Fatalf("expected a settings error, got %v", err)
	}
}

func TestCLIConvertVerboseLogs(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv", "1\n")

	_, stderr, err := runCLI(t, "-v", "--input_file", input, "--output_filename", filepath.Join(dir, "report"))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stderr, "Loading input") || !strings.Contains(stderr, "Conversion complete") {
		t.Fatalf("expected debug logs on stderr, got %q", stderr)
	}
}

func TestCLIInspect(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv", "id,price,label\nr1,3.140,abc\nr2,-2,\n")
	prefix := filepath.Join(dir, "report")

	if _, _, err := runCLI(t, "--input_file", input, "--output_filename", prefix, "--it_has_header", "--it_has_index"); err != nil {
		t.Fatalf("convert: %v", err)
	}

	stdout, _, err := runCLI(t, "inspect", "--file", prefix+".xlsx", "--it_has_header", "--it_has_index")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	want := "id,price,label\nr1,3.14,abc\nr2,-2,\n"
	if stdout != want {
		t.Fatalf("inspect output = %q; want %q", stdout, want)
	}
}

func TestCLIInspectMissingFile(t *testing.T) {
	if _, _, err := runCLI(t, "inspect", "--file", filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatal("expected an error for a missing workbook")
	}
}

func TestCLIVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout, "CSV to XLSX Converter") || !strings.Contains(stdout, "Version:    "+Version) {
		t.Fatalf("unexpected version output: %q", stdout)
	}
}

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	restore := snapshotCLIState()
	defer restore()

	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func snapshotCLIState() func() {
	prevOut := rootCmd.OutOrStdout()
	prevErr := rootCmd.ErrOrStderr()

	return func() {
		rootCmd.SetOut(prevOut)
		rootCmd.SetErr(prevErr)
		rootCmd.SetArgs(nil)
		for _, c := range []interface {
			Flags() *pflag.FlagSet
			PersistentFlags() *pflag.FlagSet
		}{rootCmd, inspectCmd, versionCmd} {
			resetFlags(c.Flags())
			resetFlags(c.PersistentFlags())
		}
	}
}

// resetFlags restores every flag to its default so bound variables do not
// leak between runs.
func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

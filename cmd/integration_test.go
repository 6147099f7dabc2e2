package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// resetFlags clears sticky flag state that persists across Execute calls.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if f.Value.Type() != "stringSlice" {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
	descGroupBy = nil
}

// execRoot is a helper to execute the root command with args and capture stdout.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeDataset(t *testing.T, dir string, drop string) string {
	t.Helper()
	row := map[string]any{
		"Id": 1, "Income": 50000, "Age": 30, "Experience": 5,
		"Married/Single": "single", "House_Ownership": "rented", "Car_Ownership": "no",
		"Profession": "Engineer", "CITY": "Pune", "STATE": "MH",
		"CURRENT_JOB_YRS": 3, "CURRENT_HOUSE_YRS": 11,
	}
	second := map[string]any{}
	for k, v := range row {
		second[k] = v
	}
	second["Id"] = 2
	second["CITY"] = "Delhi"
	second["Income"] = nil
	if drop != "" {
		delete(row, drop)
		delete(second, drop)
	}
	b, err := json.Marshal([]any{row, second})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	p := filepath.Join(dir, "applicants.json")
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return p
}

func TestCLI_RunWritesEncodedOutput(t *testing.T) {
	home := isolateHome(t)
	in := writeDataset(t, home, "")
	outPath := filepath.Join(home, "out", "clean.json")

	out, err := execRoot(t, "run", in, "-o", outPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "✓ Wrote cleaned dataset (2 rows, 12 columns)") {
		t.Fatalf("unexpected output: %q", out)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(b, &rows); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if rows[0]["CITY"] != 1.0 || rows[1]["CITY"] != 0.0 {
		t.Fatalf("expected encoded CITY, got %v / %v", rows[0]["CITY"], rows[1]["CITY"])
	}
	if rows[1]["Income"] != 50000.0 {
		t.Fatalf("expected forward-filled Income, got %v", rows[1]["Income"])
	}
}

func TestCLI_RunTrainingVariantPreview(t *testing.T) {
	home := isolateHome(t)
	in := writeDataset(t, home, "")

	out, err := execRoot(t, "run", in, "--variant", "training", "--preview-rows", "1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Pune") || strings.Contains(out, "Delhi") {
		t.Fatalf("expected one preview row with original strings, got:\n%s", out)
	}
	if !strings.Contains(out, "(1 of 2 rows)") {
		t.Fatalf("missing row footer:\n%s", out)
	}
}

func TestCLI_RunStdoutYAMLColumns(t *testing.T) {
	home := isolateHome(t)
	in := writeDataset(t, home, "")

	out, err := execRoot(t, "run", in, "--stdout", "--format", "yaml", "--orient", "columns", "--variant", "training")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "CITY:\n  - Pune\n  - Delhi") {
		t.Fatalf("unexpected yaml output:\n%s", out)
	}
}

func TestCLI_ValidateMissingState(t *testing.T) {
	home := isolateHome(t)
	in := writeDataset(t, home, "STATE")

	_, err := execRoot(t, "validate", in)
	if err == nil || !strings.Contains(err.Error(), "missing columns: [STATE]") {
		t.Fatalf("expected schema error naming STATE, got %v", err)
	}

	ok := writeDataset(t, t.TempDir(), "")
	out, err := execRoot(t, "validate", ok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "schema ok") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCLI_RunNotFound(t *testing.T) {
	home := isolateHome(t)
	_, err := execRoot(t, "run", filepath.Join(home, "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCLI_Describe(t *testing.T) {
	home := isolateHome(t)
	in := writeDataset(t, home, "")

	out, err := execRoot(t, "describe", in)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !strings.Contains(out, "[DATASET SUMMARY]") || !strings.Contains(out, "- CITY: categorical") {
		t.Fatalf("unexpected summary:\n%s", out)
	}

	out, err = execRoot(t, "describe", in, "--cleaned")
	if err != nil {
		t.Fatalf("describe --cleaned: %v", err)
	}
	if !strings.Contains(out, "applicants.json (cleaned)") || !strings.Contains(out, "- CITY: numeric") {
		t.Fatalf("expected encoded columns in cleaned summary:\n%s", out)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	isolateHome(t)
	if _, err := execRoot(t, "config", "set", "variant", "training"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := execRoot(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "variant: training") {
		t.Fatalf("expected saved variant, got:\n%s", out)
	}
	if _, err := execRoot(t, "config", "set", "variant", "bogus"); err == nil {
		t.Fatalf("expected error for invalid variant")
	}
}

func TestCLI_ConfigSetKeepsOverridesOutOfFile(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("RISKPREP_OUTPUT_FORMAT", "yaml")
	if _, err := execRoot(t, "config", "set", "preview_rows", "3", "--variant", "training"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, ".riskprep", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	body := string(b)
	for _, want := range []string{"preview_rows: 3", "variant: encoded", "output_format: json"} {
		if !strings.Contains(body, want) {
			t.Fatalf("config file missing %q:\n%s", want, body)
		}
	}
}

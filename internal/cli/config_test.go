package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheetcalc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
keep_going = true
print = "both"
prompt = "sheet> "
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.KeepGoing {
		t.Errorf("KeepGoing = false, want true")
	}
	if cfg.Print != PrintBoth {
		t.Errorf("Print = %q, want %q", cfg.Print, PrintBoth)
	}
	if cfg.Prompt != "sheet> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "sheet> ")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `keep_going = true`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Print != PrintNone || cfg.Prompt != "> " {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Malformed", `keep_going = `, "parsing"},
		{"Wrong type", `keep_going = "yes"`, "parsing"},
		{"Unknown key", `colour = "red"`, "unknown key"},
		{"Bad print mode", `print = "everything"`, "invalid print mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("LoadConfig succeeded, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Errorf("explicit missing file should fail")
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/parsec/internal/calc"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/pterm/pterm"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.pcalc")
	defer teardown()
	//
	want := &Config{
		Prompt:  "pcalc> ",
		Trace:   "Debug",
		Lexer:   "lexmachine",
		Timeout: Duration{1500 * time.Millisecond},
		Vars:    map[string]float64{"g": 9.81},
	}
	tomlFile := writeFile(t, "pcalc.toml", `
trace = "Debug"
lexer = "lexmachine"
timeout = "1.5s"

[vars]
g = 9.81
`)
	yamlFile := writeFile(t, "pcalc.yml", `
trace: Debug
lexer: lexmachine
timeout: 1.5s
vars:
  g: 9.81
`)
	for _, path := range []string{tomlFile, yamlFile} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(want, cfg); d != "" {
			t.Errorf("unexpected config from %s:\n%s", filepath.Base(path), d)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.pcalc")
	defer teardown()
	//
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lexer != "combinator" || cfg.Timeout.Duration != 5*time.Second || cfg.Trace != "Error" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if _, err := LoadConfig(writeFile(t, "bad.toml", `timeout = "soon"`)); err == nil {
		t.Errorf("expected invalid duration to be rejected")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected missing config file to be reported")
	}
}

func TestLeveledProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.pcalc")
	defer teardown()
	//
	c, err := calc.New()
	if err != nil {
		t.Fatal(err)
	}
	prog, err := c.Parse("let x = -max(1, 2); x!")
	if err != nil {
		t.Fatal(err)
	}
	want := pterm.LeveledList{
		{Level: 0, Text: "program"},
		{Level: 1, Text: "let x"},
		{Level: 2, Text: "-"},
		{Level: 3, Text: "max()"},
		{Level: 4, Text: "1"},
		{Level: 4, Text: "2"},
		{Level: 1, Text: "!"},
		{Level: 2, Text: "x"},
	}
	if d := cmp.Diff(want, leveledProgram(prog)); d != "" {
		t.Errorf("unexpected tree:\n%s", d)
	}
}

func TestExecute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsec.pcalc")
	defer teardown()
	//
	c, err := calc.New()
	if err != nil {
		t.Fatal(err)
	}
	cfg, _ := LoadConfig("")
	s := &session{cfg: cfg, calc: c}
	if s.execute("let a = 2") || s.execute(":vars") || s.execute("1 +") {
		t.Errorf("session should continue")
	}
	if tag, _ := c.Globals().Resolve("a"); tag == nil || tag.Value != 2 {
		t.Errorf("expected a = 2, have %v", tag)
	}
	if !s.execute(":quit") {
		t.Errorf("expected :quit to end the session")
	}
}

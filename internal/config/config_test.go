package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetTestPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				TestPath:    ".",
				Flags:       Flags{},
			},
			expected: ".",
		},
		{
			name: "with test path flag",
			config: &Config{
				ProjectPath: "/project",
				TestPath:    ".",
				Flags: Flags{
					TestPath: "force-app/main/default/lwc",
				},
			},
			expected: "/project/force-app/main/default/lwc",
		},
		{
			name: "absolute test path",
			config: &Config{
				ProjectPath: "/project",
				TestPath:    ".",
				Flags: Flags{
					TestPath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetTestPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetManifestPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	if got := cfg.GetManifestPath(); got != "/project/manifest/package.xml" {
		t.Errorf("unexpected default manifest path %s", got)
	}

	cfg.ApplyFlags(Flags{Output: "out/deploy.xml"})
	if got := cfg.GetManifestPath(); got != "/project/out/deploy.xml" {
		t.Errorf("unexpected flag manifest path %s", got)
	}
}

func TestConfig_GetJestCommand(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	if got := cfg.GetJestCommand(); got != "/project/node_modules/.bin/sfdx-lwc-jest" {
		t.Errorf("unexpected jest command %s", got)
	}

	cfg.JestCommand = "sfdx-lwc-jest"
	if got := cfg.GetJestCommand(); got != "sfdx-lwc-jest" {
		t.Errorf("bare command should not be resolved, got %s", got)
	}
}

func TestConfig_ApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Processors: 8, APIVersion: "58.0"})

	if cfg.Processors != 8 {
		t.Errorf("expected 8 processors, got %d", cfg.Processors)
	}
	if cfg.APIVersion != "58.0" {
		t.Errorf("expected api version 58.0, got %s", cfg.APIVersion)
	}

	cfg.ApplyFlags(Flags{})
	if cfg.Processors != 8 {
		t.Errorf("zero flag should keep processors, got %d", cfg.Processors)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("SFSTAGE_API_VERSION", "")
	t.Setenv("SFSTAGE_PROCESSORS", "")
	t.Setenv("SFSTAGE_DSN", "")
	t.Cleanup(func() { os.Unsetenv("SFSTAGE_JEST_COMMAND") })

	dir := t.TempDir()
	yamlContent := `api_version: "59.0"
processors: 2
source_path: src
ignore:
  - jsconfig
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SFSTAGE_JEST_COMMAND=lwc-jest\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIVersion != "59.0" {
		t.Errorf("expected api version from yaml, got %s", cfg.APIVersion)
	}
	if cfg.Processors != 2 {
		t.Errorf("expected 2 processors, got %d", cfg.Processors)
	}
	if cfg.GetSourcePath() != filepath.Join(dir, "src") {
		t.Errorf("unexpected source path %s", cfg.GetSourcePath())
	}
	if cfg.JestCommand != "lwc-jest" {
		t.Errorf("expected jest command from .env, got %s", cfg.JestCommand)
	}
	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore)+1 {
		t.Errorf("expected yaml ignore entries to be appended, got %v", cfg.PathsToIgnore)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("processors: [\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed sfstage.yaml")
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Processors != DefaultProcessors {
		t.Errorf("expected Processors %d, got %d", DefaultProcessors, cfg.Processors)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}

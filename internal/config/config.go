package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string
	SourcePath  string

	// State settings
	StateDir    string
	StageFile   string
	ResultsFile string
	LogFile     string

	// Manifest settings
	ManifestPath string
	APIVersion   string

	// Execution settings
	Processors  int
	JestCommand string

	// Shared stage backend; empty means the JSON stage file
	DSN string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors int
	TestPath   string
	NameFilter string
	TestCases  bool
	FailFast   bool
	Output     string
	APIVersion string
	FilePath   string
	FromDir    string
}

// fileConfig mirrors sfstage.yaml
type fileConfig struct {
	SourcePath    string   `yaml:"source_path"`
	TestPath      string   `yaml:"test_path"`
	ManifestPath  string   `yaml:"manifest_path"`
	APIVersion    string   `yaml:"api_version"`
	Processors    int      `yaml:"processors"`
	JestCommand   string   `yaml:"jest_command"`
	PathsToIgnore []string `yaml:"ignore"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:  DefaultProjectPath,
		TestPath:     DefaultTestPath,
		SourcePath:   DefaultSourcePath,
		StateDir:     DefaultStateDir,
		StageFile:    DefaultStageFile,
		ResultsFile:  DefaultResultsFile,
		LogFile:      DefaultLogFile,
		ManifestPath: DefaultManifestPath,
		APIVersion:   DefaultAPIVersion,
		Processors:   DefaultProcessors,
		JestCommand:  DefaultJestCommand,
		Flags:        Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config for the project at projectPath, applying the project's
// .env and sfstage.yaml on top of the defaults.
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.applyFile(filepath.Join(cfg.ProjectPath, ConfigFileName)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SFSTAGE_API_VERSION"); v != "" {
		c.APIVersion = v
	}
	if v := os.Getenv("SFSTAGE_JEST_COMMAND"); v != "" {
		c.JestCommand = v
	}
	if v := os.Getenv("SFSTAGE_DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("SFSTAGE_PROCESSORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid SFSTAGE_PROCESSORS %q", v)
		}
		c.Processors = n
	}
	return nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.SourcePath != "" {
		c.SourcePath = fc.SourcePath
	}
	if fc.TestPath != "" {
		c.TestPath = fc.TestPath
	}
	if fc.ManifestPath != "" {
		c.ManifestPath = fc.ManifestPath
	}
	if fc.APIVersion != "" {
		c.APIVersion = fc.APIVersion
	}
	if fc.Processors > 0 {
		c.Processors = fc.Processors
	}
	if fc.JestCommand != "" {
		c.JestCommand = fc.JestCommand
	}
	if len(fc.PathsToIgnore) > 0 {
		c.PathsToIgnore = append(c.PathsToIgnore, fc.PathsToIgnore...)
	}
	return nil
}

// ApplyFlags copies parsed command flags onto the config
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.APIVersion != "" {
		c.APIVersion = flags.APIVersion
	}
}

// resolve joins p to the project path unless it is absolute
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		return c.resolve(c.Flags.TestPath)
	}
	return c.resolve(c.TestPath)
}

// GetSourcePath returns the source directory to scan, using flag if provided
func (c *Config) GetSourcePath() string {
	if c.Flags.FromDir != "" {
		return c.resolve(c.Flags.FromDir)
	}
	return c.resolve(c.SourcePath)
}

// GetManifestPath returns where the manifest is written, using flag if provided
func (c *Config) GetManifestPath() string {
	if c.Flags.Output != "" {
		return c.resolve(c.Flags.Output)
	}
	return c.resolve(c.ManifestPath)
}

// GetStatePath returns the absolute path of a file in the state directory so
// every command reads and writes the same file regardless of cwd.
func (c *Config) GetStatePath(name string) string {
	p := filepath.Join(c.ProjectPath, c.StateDir, name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetStagePath returns the path to the staged components file
func (c *Config) GetStagePath() string {
	return c.GetStatePath(c.StageFile)
}

// GetResultsPath returns the path to the merged test results file
func (c *Config) GetResultsPath() string {
	return c.GetStatePath(c.ResultsFile)
}

// GetLogPath returns the path to the operation log
func (c *Config) GetLogPath() string {
	return c.GetStatePath(c.LogFile)
}

// GetJestCommand returns the Jest wrapper path, resolved against the project
// when it is a relative path rather than a bare command name.
func (c *Config) GetJestCommand() string {
	if filepath.Base(c.JestCommand) == c.JestCommand {
		return c.JestCommand
	}
	return c.resolve(c.JestCommand)
}

package commands

import (
	"github.com/spf13/cobra"

	"sfstage/internal/cli"
	"sfstage/internal/config"
	"sfstage/internal/discovery"
	"sfstage/internal/execution"
	"sfstage/internal/parser"
	"sfstage/internal/registry"
	"sfstage/internal/storage"
	"sfstage/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Stage    *StageCommand
	Manifest *ManifestCommand
	Tests    *TestsCommand

	workspace *workspace
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	ws := newWorkspace(cfg, registry.New())
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	jestParser := parser.NewJestParser()
	runner := execution.NewRunner(cfg, jestParser)
	resultStore := storage.NewJSONResultStore(cfg.GetResultsPath())
	formatter := ui.NewFormatter(cfg, testCaseParser)
	viewer := ui.NewFailureViewer(resultStore)

	return &Commands{
		Stage:     NewStageCommand(cfg, ws, formatter),
		Manifest:  NewManifestCommand(cfg, ws),
		Tests:     NewTestsCommand(cfg, ws, scanner, filter, runner, jestParser, resultStore, formatter, viewer),
		workspace: ws,
	}
}

// Close releases the operation log
func (c *Commands) Close() error {
	return c.workspace.Close()
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// Stage commands
	stageCmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage the metadata components staged for deployment",
	}

	addCmd := &cobra.Command{
		Use:     "add [Type FullName]",
		Short:   "Stage a metadata component",
		Long:    "Stage one component by type and full name, or every component found in a source directory with --from-dir",
		Args:    cobra.RangeArgs(0, 2),
		RunE:    c.Stage.Add,
		PreRunE: applyFlags,
	}
	addCmd.Flags().StringVar(&flags.FilePath, "file", "", "Local source file of the component")
	addCmd.Flags().StringVar(&flags.FromDir, "from-dir", "", "Stage every component found in this source directory (e.g. force-app)")
	stageCmd.AddCommand(addCmd)

	stageCmd.AddCommand(&cobra.Command{
		Use:     "remove Type [FullName]",
		Short:   "Unstage a component, or every component of a type",
		Args:    cobra.RangeArgs(1, 2),
		RunE:    c.Stage.Remove,
		PreRunE: applyFlags,
	})

	stageCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Short:   "Print the staged components",
		Args:    cobra.NoArgs,
		RunE:    c.Stage.List,
		PreRunE: applyFlags,
	})

	stageCmd.AddCommand(&cobra.Command{
		Use:     "clear",
		Short:   "Unstage everything",
		Args:    cobra.NoArgs,
		RunE:    c.Stage.Clear,
		PreRunE: applyFlags,
	})

	viewCmd := &cobra.Command{
		Use:     "view",
		Short:   "Browse and edit the stage interactively",
		Args:    cobra.NoArgs,
		RunE:    c.Stage.View,
		PreRunE: applyFlags,
	}
	viewCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Where the manifest is written from the viewer")
	stageCmd.AddCommand(viewCmd)

	stageCmd.AddCommand(&cobra.Command{
		Use:     "import package.xml",
		Short:   "Stage every member of a package.xml manifest",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Stage.Import,
		PreRunE: applyFlags,
	})
	rootCmd.AddCommand(stageCmd)

	// Manifest command
	manifestCmd := &cobra.Command{
		Use:     "manifest",
		Short:   "Write package.xml for the staged components",
		Args:    cobra.NoArgs,
		RunE:    c.Manifest.Execute,
		PreRunE: applyFlags,
	}
	manifestCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Manifest output path (default manifest/package.xml)")
	manifestCmd.Flags().StringVar(&flags.APIVersion, "api-version", "", "Metadata API version written to the manifest")
	rootCmd.AddCommand(manifestCmd)

	// Tests commands
	testsCmd := &cobra.Command{
		Use:   "tests",
		Short: "Discover, run and inspect LWC Jest tests",
	}

	testsListCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered LWC tests",
		Long:    "Scan and list all LWC Jest tests without executing them",
		Args:    cobra.NoArgs,
		RunE:    c.Tests.List,
		PreRunE: applyFlags,
	}
	testsListCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*hello*')")
	testsListCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	testsListCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases of each file")
	testsCmd.AddCommand(testsListCmd)

	testsRunCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run LWC tests in parallel",
		Long:    "Discover and execute LWC Jest tests using parallel workers",
		Args:    cobra.NoArgs,
		RunE:    c.Tests.Run,
		PreRunE: applyFlags,
	}
	testsRunCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of processors to use (default from config, 4)")
	testsRunCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	testsRunCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*hello*')")
	testsRunCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	testsCmd.AddCommand(testsRunCmd)

	testsCmd.AddCommand(&cobra.Command{
		Use:     "report jest.json",
		Short:   "Import a Jest JSON report",
		Long:    "Validate a report written by sfdx-lwc-jest --json, print its test cases and save it as the last run",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Tests.Report,
		PreRunE: applyFlags,
	})

	testsCmd.AddCommand(&cobra.Command{
		Use:   "view",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Tests.View,
	})
	rootCmd.AddCommand(testsCmd)
}

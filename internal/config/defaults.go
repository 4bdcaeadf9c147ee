package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default path where LWC test discovery starts
	DefaultTestPath = "."
	// DefaultStateDir is the directory (under the project) holding stage and result files
	DefaultStateDir = ".sfstage"
	// DefaultStageFile is the default staged components file name
	DefaultStageFile = "stage.json"
	// DefaultResultsFile is the default merged LWC test results file name
	DefaultResultsFile = "lwc-test-results.json"
	// DefaultLogFile is the default operation log file name
	DefaultLogFile = "sfstage.log"
	// DefaultManifestPath is the default manifest output, relative to the project
	DefaultManifestPath = "manifest/package.xml"
	// DefaultAPIVersion is the metadata API version written into manifests
	DefaultAPIVersion = "50.0"
	// DefaultSourcePath is the default source-format directory scanned by "stage add --from-dir"
	DefaultSourcePath = "force-app"
	// DefaultJestCommand runs the LWC Jest wrapper installed in the project
	DefaultJestCommand = "node_modules/.bin/sfdx-lwc-jest"
	// DefaultProcessors is the default number of parallel test workers
	DefaultProcessors = 4
	// ConfigFileName is the optional project config file
	ConfigFileName = "sfstage.yaml"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"node_modules",
	".sfdx",
	".sf",
	".sfstage",
	"coverage",
	"manifest",
}

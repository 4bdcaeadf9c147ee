package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sfstage/internal/config"
)

// ManifestCommand writes package.xml for the staged components
type ManifestCommand struct {
	config    *config.Config
	workspace *workspace
}

// NewManifestCommand creates a new ManifestCommand
func NewManifestCommand(cfg *config.Config, ws *workspace) *ManifestCommand {
	return &ManifestCommand{config: cfg, workspace: ws}
}

// Execute runs the command
func (mc *ManifestCommand) Execute(cmd *cobra.Command, args []string) error {
	session, err := mc.workspace.openStage()
	if err != nil {
		return err
	}
	defer session.close()

	if session.provider.Len() == 0 {
		color.Yellow("Nothing staged, no manifest written")
		return nil
	}

	output := mc.config.GetManifestPath()
	if err := session.provider.CreateManifest(output); err != nil {
		mc.workspace.log().Error(err)
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	mc.workspace.log().Operation("manifest", fmt.Sprintf("%d component(s) to %s (API %s)", session.provider.Len(), output, mc.config.APIVersion))
	color.Green("✓ Manifest with %d component(s) written to %s", session.provider.Len(), output)
	return nil
}

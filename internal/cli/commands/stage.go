package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sfstage/internal/config"
	"sfstage/internal/discovery"
	"sfstage/internal/domain"
	"sfstage/internal/manifest"
	"sfstage/internal/registry"
	"sfstage/internal/ui"
)

// StageCommand handles the stage subcommands
type StageCommand struct {
	config    *config.Config
	workspace *workspace
	formatter *ui.Formatter
}

// NewStageCommand creates a new StageCommand
func NewStageCommand(cfg *config.Config, ws *workspace, formatter *ui.Formatter) *StageCommand {
	return &StageCommand{
		config:    cfg,
		workspace: ws,
		formatter: formatter,
	}
}

// Add stages one component, or every component found under --from-dir
func (sc *StageCommand) Add(cmd *cobra.Command, args []string) error {
	if sc.config.Flags.FromDir != "" {
		return sc.addFromDir()
	}
	if len(args) != 2 {
		return fmt.Errorf("expected <Type> <FullName>, or --from-dir")
	}

	session, err := sc.workspace.openStage()
	if err != nil {
		return err
	}
	defer session.close()

	component := domain.Component{Type: args[0], FullName: args[1]}
	if _, err := sc.workspace.registry.TypeFromName(component.Type); errors.Is(err, registry.ErrUnknownType) {
		color.Yellow("Warning: %s is not a known metadata type, the manifest cannot be generated while it is staged", component.Type)
	}
	if session.provider.Find(component) != nil {
		color.Yellow("%s %s is already staged", component.Type, component.FullName)
		return nil
	}

	filePath := absPath(sc.config.Flags.FilePath)
	if filePath != "" {
		if _, err := os.Stat(filePath); err != nil {
			color.Yellow("Warning: %s does not exist, staging %s without a local file", filePath, component.FullName)
			filePath = ""
		}
	}

	session.provider.AddComponent(component, filePath)
	if err := session.save(); err != nil {
		return err
	}
	sc.workspace.log().Operation("stage add", fmt.Sprintf("%s %s %s", component.Type, component.FullName, filePath))
	color.Green("✓ Staged %s %s", component.Type, component.FullName)
	return nil
}

func (sc *StageCommand) addFromDir() error {
	dir := sc.config.GetSourcePath()
	rules, err := discovery.LoadForceIgnore(sc.config.ProjectPath)
	if err != nil {
		return fmt.Errorf("failed to read .forceignore: %w", err)
	}
	scanner := discovery.NewSourceScanner(sc.workspace.registry, rules)

	spinner := ui.NewSpinner("Scanning " + dir)
	found, err := scanner.Scan(dir, func(domain.StagedComponent) { spinner.Add() })
	spinner.Finish()
	if err != nil {
		return err
	}
	if len(found) == 0 {
		color.Yellow("No metadata components found in %s", dir)
		return nil
	}

	session, err := sc.workspace.openStage()
	if err != nil {
		return err
	}
	defer session.close()

	before := session.provider.Len()
	for i := range found {
		found[i].FilePath = absPath(found[i].FilePath)
	}
	session.provider.Restore(found)
	if err := session.save(); err != nil {
		return err
	}

	added := session.provider.Len() - before
	sc.workspace.log().Operation("stage add", fmt.Sprintf("from %s: %d found, %d new", dir, len(found), added))
	color.Green("✓ Staged %d new component(s) from %s (%d found)", added, dir, len(found))
	return nil
}

// Remove unstages a component, or a whole type when no name is given
func (sc *StageCommand) Remove(cmd *cobra.Command, args []string) error {
	session, err := sc.workspace.openStage()
	if err != nil {
		return err
	}
	defer session.close()

	typeName := args[0]
	node := session.provider.TypeNode(typeName)
	what := typeName
	if len(args) > 1 {
		node = session.provider.Find(domain.Component{Type: typeName, FullName: args[1]})
		what = typeName + " " + args[1]
	}
	if node == nil {
		return fmt.Errorf("%s is not staged", what)
	}

	session.provider.RemoveComponent(node)
	if err := session.save(); err != nil {
		return err
	}
	sc.workspace.log().Operation("stage remove", what)
	color.Green("✓ Removed %s", what)
	return nil
}

// List prints the stage tree
func (sc *StageCommand) List(cmd *cobra.Command, args []string) error {
	session, err := sc.workspace.openStage()
	if err != nil {
		return err
	}
	defer session.close()

	sc.formatter.PrintStage(session.provider)
	return nil
}

// Clear unstages everything
func (sc *StageCommand) Clear(cmd *cobra.Command, args []string) error {
	session, err := sc.workspace.openStage()
	if err != nil {
		return err
	}
	defer session.close()

	count := session.provider.Len()
	session.provider.ClearAll()
	if err := session.save(); err != nil {
		return err
	}
	sc.workspace.log().Operation("stage clear", fmt.Sprintf("%d component(s)", count))
	color.Green("✓ Cleared %d component(s)", count)
	return nil
}

// View opens the interactive stage tree
func (sc *StageCommand) View(cmd *cobra.Command, args []string) error {
	session, err := sc.workspace.openStage()
	if err != nil {
		return err
	}
	defer session.close()

	persist := func() error {
		if err := session.save(); err != nil {
			return err
		}
		sc.workspace.log().Operation("stage view", fmt.Sprintf("saved %d component(s)", session.provider.Len()))
		return nil
	}
	return ui.NewStageTree(session.provider, sc.config.GetManifestPath(), persist).Run()
}

// Import stages every member of a package.xml. Members found in the source
// directory are linked to their local files.
func (sc *StageCommand) Import(cmd *cobra.Command, args []string) error {
	components, version, err := manifest.ParseFile(args[0])
	if err != nil {
		return err
	}

	local := sc.localFiles()
	staged := make([]domain.StagedComponent, 0, len(components))
	for _, c := range components {
		staged = append(staged, domain.StagedComponent{
			FullName: c.FullName,
			Type:     c.Type,
			FilePath: local[localKey(c)],
		})
	}

	session, err := sc.workspace.openStage()
	if err != nil {
		return err
	}
	defer session.close()

	before := session.provider.Len()
	session.provider.Restore(staged)
	if err := session.save(); err != nil {
		return err
	}

	added := session.provider.Len() - before
	sc.workspace.log().Operation("stage import", fmt.Sprintf("%s (API %s): %d member(s), %d new", args[0], version, len(components), added))
	color.Green("✓ Imported %d component(s) from %s, %d new", len(components), args[0], added)
	return nil
}

// localFiles maps type/name keys to files in the source directory. A missing
// source directory yields an empty map.
func (sc *StageCommand) localFiles() map[string]string {
	files := make(map[string]string)
	rules, err := discovery.LoadForceIgnore(sc.config.ProjectPath)
	if err != nil {
		return files
	}
	found, err := discovery.NewSourceScanner(sc.workspace.registry, rules).Scan(sc.config.GetSourcePath(), nil)
	if err != nil {
		return files
	}
	for _, c := range found {
		files[localKey(c.Component())] = absPath(c.FilePath)
	}
	return files
}

func localKey(c domain.Component) string {
	return strings.ToLower(c.Type) + "/" + c.FullName
}

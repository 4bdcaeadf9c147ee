package discovery

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"sfstage/internal/domain"
	"sfstage/internal/registry"
)

const metaSuffix = "-meta.xml"

// SourceScanner infers metadata components from a source-format project directory
type SourceScanner struct {
	registry *registry.Registry
	ignore   *ignore.GitIgnore
}

// NewSourceScanner creates a SourceScanner. ignoreRules are .forceignore lines;
// see LoadForceIgnore.
func NewSourceScanner(reg *registry.Registry, ignoreRules []string) *SourceScanner {
	s := &SourceScanner{registry: reg}
	if len(ignoreRules) > 0 {
		s.ignore = ignore.CompileIgnoreLines(ignoreRules...)
	}
	return s
}

// LoadForceIgnore reads the .forceignore file in projectPath. A missing file
// yields no rules.
func LoadForceIgnore(projectPath string) ([]string, error) {
	file, err := os.Open(filepath.Join(projectPath, ".forceignore"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// Scan walks root and returns one component per metadata file or bundle
// directory. found, when non-nil, is called for every component.
func (s *SourceScanner) Scan(root string, found func(domain.StagedComponent)) ([]domain.StagedComponent, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", root)
	}

	var components []domain.StagedComponent
	emit := func(c domain.StagedComponent) {
		components = append(components, c)
		if found != nil {
			found(c)
		}
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if s.ignored(filepath.ToSlash(rel), d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") || name == "node_modules" {
				return filepath.SkipDir
			}
			if typ, ok := s.registry.TypeFromDirectory(filepath.Base(filepath.Dir(path))); ok && typ.Bundle {
				emit(domain.StagedComponent{FullName: name, Type: typ.Name, FilePath: path})
				return filepath.SkipDir
			}
			return nil
		}

		if c, ok := s.componentFromMetaFile(path); ok {
			emit(c)
		}
		return nil
	})

	return components, err
}

func (s *SourceScanner) ignored(rel string, isDir bool) bool {
	if s.ignore == nil {
		return false
	}
	if isDir && s.ignore.MatchesPath(rel+"/") {
		return true
	}
	return s.ignore.MatchesPath(rel)
}

// componentFromMetaFile maps e.g. classes/Foo.cls-meta.xml to ApexClass Foo,
// objects/Account/fields/Bar__c.field-meta.xml to CustomField Account.Bar__c
// and reports/Sales/Pipeline.report-meta.xml to Report Sales/Pipeline.
func (s *SourceScanner) componentFromMetaFile(path string) (domain.StagedComponent, bool) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, metaSuffix) {
		return domain.StagedComponent{}, false
	}
	base := strings.TrimSuffix(name, metaSuffix)
	dot := strings.LastIndex(base, ".")
	if dot <= 0 {
		return domain.StagedComponent{}, false
	}
	fullName, suffix := base[:dot], base[dot+1:]

	typ, ok := s.registry.TypeFromSuffix(suffix)
	if !ok {
		return domain.StagedComponent{}, false
	}

	dir := filepath.Dir(path)
	switch {
	case typ.Parent != "":
		// <parentDir>/<Parent>/<typeDir>/<name>
		fullName = filepath.Base(filepath.Dir(dir)) + "." + fullName
	case typ.InFolder && filepath.Base(dir) != typ.DirectoryName:
		fullName = filepath.Base(dir) + "/" + fullName
	}

	filePath := path
	if content := filepath.Join(dir, base); fileExists(content) {
		filePath = content
	}
	return domain.StagedComponent{FullName: fullName, Type: typ.Name, FilePath: filePath}, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

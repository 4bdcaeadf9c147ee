// Package manifest reads and writes package.xml manifests.
package manifest

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"sfstage/internal/domain"
)

// Namespace is the metadata API namespace of a package manifest
const Namespace = "http://soap.sforce.com/2006/04/metadata"

type packageXML struct {
	XMLName xml.Name   `xml:"http://soap.sforce.com/2006/04/metadata Package"`
	Types   []typesXML `xml:"types"`
	Version string     `xml:"version"`
}

type typesXML struct {
	Members []string `xml:"members"`
	Name    string   `xml:"name"`
}

// Generator creates package.xml content
type Generator struct {
	APIVersion string
}

// NewGenerator creates a Generator for the given API version
func NewGenerator(apiVersion string) *Generator {
	return &Generator{APIVersion: apiVersion}
}

// CreateManifest renders components as a package.xml document. Types are sorted
// by name and members are sorted and de-duplicated within each type.
func (g *Generator) CreateManifest(components []domain.Component) (string, error) {
	byType := make(map[string]map[string]struct{})
	for _, c := range components {
		if byType[c.Type] == nil {
			byType[c.Type] = make(map[string]struct{})
		}
		byType[c.Type][c.FullName] = struct{}{}
	}

	names := make([]string, 0, len(byType))
	for name := range byType {
		names = append(names, name)
	}
	sort.Strings(names)

	pkg := packageXML{Version: g.APIVersion}
	for _, name := range names {
		members := make([]string, 0, len(byType[name]))
		for m := range byType[name] {
			members = append(members, m)
		}
		sort.Strings(members)
		pkg.Types = append(pkg.Types, typesXML{Members: members, Name: name})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(pkg); err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	buf.WriteString("\n")
	return buf.String(), nil
}

// Write stores manifest contents at path, creating parent directories
func Write(path, contents string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// parsedPackage accepts manifests with or without the metadata namespace
type parsedPackage struct {
	XMLName xml.Name   `xml:"Package"`
	Types   []typesXML `xml:"types"`
	Version string     `xml:"version"`
}

// Parse reads a package.xml document and returns its components and API version
func Parse(r io.Reader) ([]domain.Component, string, error) {
	var pkg parsedPackage
	if err := xml.NewDecoder(r).Decode(&pkg); err != nil {
		return nil, "", fmt.Errorf("parse manifest: %w", err)
	}

	var components []domain.Component
	for _, t := range pkg.Types {
		if t.Name == "" {
			return nil, "", fmt.Errorf("parse manifest: types entry without name")
		}
		for _, m := range t.Members {
			components = append(components, domain.Component{FullName: m, Type: t.Name})
		}
	}
	return components, pkg.Version, nil
}

// ParseFile reads the manifest at path
func ParseFile(path string) ([]domain.Component, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

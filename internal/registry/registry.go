// Package registry resolves Salesforce metadata type names, source directories
// and file suffixes.
package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a metadata type is not in the registry
var ErrUnknownType = errors.New("unknown metadata type")

// MetadataType describes one metadata type
type MetadataType struct {
	Name          string // API name, e.g. ApexClass
	Label         string // Plural display label
	DirectoryName string // Source-format directory, e.g. classes
	Suffix        string // File suffix without the dot, empty for bundles
	InFolder      bool   // Components live in folders (Report, Dashboard, ...)
	Bundle        bool   // A component is a directory of files
	Parent        string // Parent type for child types such as CustomField
}

// Registry is an immutable lookup over metadata types
type Registry struct {
	byName      map[string]MetadataType
	bySuffix    map[string]MetadataType
	byDirectory map[string]MetadataType
}

// New creates a Registry with the built-in types plus any extra types.
// Extra types replace built-in types of the same name.
func New(extra ...MetadataType) *Registry {
	r := &Registry{
		byName:      make(map[string]MetadataType),
		bySuffix:    make(map[string]MetadataType),
		byDirectory: make(map[string]MetadataType),
	}
	for _, t := range defaultTypes {
		r.add(t)
	}
	for _, t := range extra {
		r.add(t)
	}
	return r
}

func (r *Registry) add(t MetadataType) {
	r.byName[strings.ToLower(t.Name)] = t
	if t.Suffix != "" {
		r.bySuffix[t.Suffix] = t
	}
	if t.DirectoryName != "" {
		r.byDirectory[t.DirectoryName] = t
	}
}

// TypeFromName looks a type up by API name, ignoring case
func (r *Registry) TypeFromName(name string) (MetadataType, error) {
	t, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return MetadataType{}, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return t, nil
}

// TypeFromSuffix looks a type up by file suffix (without the dot)
func (r *Registry) TypeFromSuffix(suffix string) (MetadataType, bool) {
	t, ok := r.bySuffix[suffix]
	return t, ok
}

// TypeFromDirectory looks a type up by its source-format directory name
func (r *Registry) TypeFromDirectory(dir string) (MetadataType, bool) {
	t, ok := r.byDirectory[dir]
	return t, ok
}

// Label returns the display label of a type, or the name itself for unknown types
func (r *Registry) Label(name string) string {
	if t, err := r.TypeFromName(name); err == nil && t.Label != "" {
		return t.Label
	}
	return name
}

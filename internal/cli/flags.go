package cli

import "sfstage/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors: f.Processors,
		TestPath:   f.TestPath,
		NameFilter: f.NameFilter,
		TestCases:  f.TestCases,
		FailFast:   f.FailFast,
		Output:     f.Output,
		APIVersion: f.APIVersion,
		FilePath:   f.FilePath,
		FromDir:    f.FromDir,
	}
}

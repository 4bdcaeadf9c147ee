package domain

// Component identifies a metadata component by type and full name
type Component struct {
	FullName string `json:"fullName"`
	Type     string `json:"type"`
}

// StagedComponent is a component staged for deployment, optionally backed by a
// local source file
type StagedComponent struct {
	FullName string `json:"fullName"`
	Type     string `json:"type"`
	FilePath string `json:"filePath,omitempty"`
}

// Component returns the component identity
func (s StagedComponent) Component() Component {
	return Component{FullName: s.FullName, Type: s.Type}
}

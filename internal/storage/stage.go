package storage

import (
	"sfstage/internal/domain"
)

type stageFile struct {
	Components []domain.StagedComponent `json:"components"`
}

// JSONStageStore keeps the stage in a JSON file
type JSONStageStore struct {
	path string
}

// NewJSONStageStore returns a StageStore reading/writing path
func NewJSONStageStore(path string) *JSONStageStore {
	return &JSONStageStore{path: path}
}

// Load returns the staged components; a missing file is an empty stage.
func (s *JSONStageStore) Load() ([]domain.StagedComponent, error) {
	var f stageFile
	if _, err := readJSON(s.path, &f); err != nil {
		return nil, err
	}
	return f.Components, nil
}

// Save replaces the stored stage with components
func (s *JSONStageStore) Save(components []domain.StagedComponent) error {
	if components == nil {
		components = []domain.StagedComponent{}
	}
	return writeJSON(s.path, stageFile{Components: components})
}

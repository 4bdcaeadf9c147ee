package storage

import (
	"errors"
	"time"

	"sfstage/internal/config"
	"sfstage/internal/domain"
)

// ErrNoResults is returned by ResultStore.Load when no test run was saved yet
var ErrNoResults = errors.New("no saved test results")

// StageStore persists the staged components between command invocations.
type StageStore interface {
	Load() ([]domain.StagedComponent, error)
	Save(components []domain.StagedComponent) error
}

// ResultStore persists and loads LWC test runs (e.g. for the failure viewer).
type ResultStore interface {
	Save(report *domain.LwcJestTestResults, failures []domain.TestFailure, duration time.Duration, workers int) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after resolving failures).
	SaveOutput(output *domain.TestResultsOutput) error
}

// NewStageStore returns the MySQL store when a DSN is configured and the JSON
// file store otherwise.
func NewStageStore(cfg *config.Config) (StageStore, error) {
	if cfg.DSN != "" {
		return NewMySQLStageStore(cfg.DSN)
	}
	return NewJSONStageStore(cfg.GetStagePath()), nil
}

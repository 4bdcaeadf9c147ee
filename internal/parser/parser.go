// Package parser reads Jest JSON reports produced by sfdx-lwc-jest.
package parser

import (
	"sfstage/internal/domain"
)

// Parser turns raw test output into results and failures
type Parser interface {
	Parse(data []byte) (*domain.LwcJestTestResults, error)
	Failures(results *domain.LwcJestTestResults) []domain.TestFailure
}

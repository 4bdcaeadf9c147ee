package parser

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed jest-report.schema.json
var reportSchemaData []byte

var (
	reportSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchema compiles the embedded Jest report schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(reportSchemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal report schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("jest-report.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add report schema resource: %w", err)
			return
		}

		reportSchema, err = compiler.Compile("jest-report.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile report schema: %w", err)
		}
	})
	return compileErr
}

// validateReport checks raw report JSON against the schema
func validateReport(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := reportSchema.Validate(inst); err != nil {
		return fmt.Errorf("jest report validation failed: %w", err)
	}
	return nil
}

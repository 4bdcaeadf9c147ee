package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

// testCallPattern matches it(...) and test(...) calls, including the .only,
// .skip and .todo variants, with a quoted or template-literal title.
var testCallPattern = regexp.MustCompile(`(?m)\b(?:it|test)(?:\.(?:only|skip|todo))?\s*\(\s*(?:'([^'\n]*)'|"([^"\n]*)"|` + "`([^`]*)`" + `)`)

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases returns the sorted, de-duplicated test titles in a Jest test file
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	seen := make(map[string]bool)
	var testCases []string
	for _, match := range testCallPattern.FindAllStringSubmatch(string(content), -1) {
		title := match[1] + match[2] + match[3]
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		testCases = append(testCases, title)
	}

	sort.Strings(testCases)
	return testCases, nil
}

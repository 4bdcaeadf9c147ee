package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		tests    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			tests:    []string{"accountCard.test.js", "contactList.test.js", "orderForm.test.js"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			tests:    []string{"accountCard.test.js", "contactList.test.js", "orderForm.test.js"},
			pattern:  "*Card.test.js",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			tests:    []string{"accountCard.test.js", "contactList.test.js", "contactForm.test.js"},
			pattern:  "*contact*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			tests:    []string{"accountCard.test.js", "contactList.test.js"},
			pattern:  "List",
			expected: 1,
		},
		{
			name:     "no matches",
			tests:    []string{"accountCard.test.js", "contactList.test.js"},
			pattern:  "*NonExistent*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			tests:    []string{"/lwc/accountCard/__tests__/accountCard.test.js", "/lwc/contactList/__tests__/contactList.test.js"},
			pattern:  "account*",
			expected: 1,
		},
		{
			name:     "question mark wildcard",
			tests:    []string{"a1.test.js", "a22.test.js"},
			pattern:  "a?.test.js",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.tests, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty test list", func(t *testing.T) {
		result := filter.FilterByName([]string{}, "*.test.js")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("parts must match in order", func(t *testing.T) {
		tests := []string{"contactListView.test.js", "viewContactList.test.js"}
		result := filter.FilterByName(tests, "*contact*View*")
		if len(result) != 1 || result[0] != "contactListView.test.js" {
			t.Errorf("expected only contactListView.test.js, got %v", result)
		}
	})

}

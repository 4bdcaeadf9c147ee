package domain

// TestFailure represents a failed LWC test case
type TestFailure struct {
	TestName       string   `json:"test_name"`
	FullName       string   `json:"full_name"`
	FilePath       string   `json:"file_path"`
	AncestorTitles []string `json:"ancestor_titles,omitempty"`
	Messages       []string `json:"messages"`
	Line           int      `json:"line"`
	Column         int      `json:"column"`
	Resolved       bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}

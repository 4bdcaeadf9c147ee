package domain

import (
	"encoding/json"
	"testing"
)

func TestExecutionInfo_JSONKind(t *testing.T) {
	tests := []struct {
		name string
		info TestExecutionInfo
		want string
	}{
		{
			name: "test file",
			info: &TestFileInfo{
				TestType:   TestTypeLWC,
				TestURI:    "a.test.js",
				TestResult: &TestResult{Status: TestResultFailed},
			},
			want: `{"kind":"testFile","testType":"lwc","testUri":"a.test.js","testResult":{"status":1}}`,
		},
		{
			name: "test case",
			info: &TestCaseInfo{
				TestType:     TestTypeLWC,
				TestURI:      "a.test.js",
				TestName:     "x",
				TestLocation: &Location{Path: "a.test.js", Line: 3, Column: 5},
			},
			want: `{"kind":"testCase","testType":"lwc","testUri":"a.test.js","testLocation":{"path":"a.test.js","line":3,"column":5},"testName":"x"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.info)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got  %s\nwant %s", data, tt.want)
			}

			var decoded struct {
				Kind TestInfoKind `json:"kind"`
			}
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if decoded.Kind != tt.info.Kind() {
				t.Errorf("kind = %q, want %q", decoded.Kind, tt.info.Kind())
			}
		})
	}
}

func TestExecutionInfo_JSONSlice(t *testing.T) {
	infos := []TestExecutionInfo{
		&TestFileInfo{TestType: TestTypeLWC, TestURI: "a.test.js"},
		&TestCaseInfo{TestType: TestTypeLWC, TestURI: "a.test.js", TestName: "x"},
	}
	data, err := json.Marshal(infos)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[0]["kind"] != "testFile" || decoded[1]["kind"] != "testCase" {
		t.Errorf("unexpected kinds in %s", data)
	}
}

package metrics

import "strings"

// testMarkers mark a lowercased path as a test file.
var testMarkers = []string{".test.", ".spec.", "__tests__"}

// Testing holds the test-to-source file ratio of a project.
type Testing struct {
	TestFiles         int     `json:"TestFiles" yaml:"TestFiles" toml:"TestFiles"`
	SourceFiles       int     `json:"SourceFiles" yaml:"SourceFiles" toml:"SourceFiles"`
	TestToSourceRatio float64 `json:"TestToSourceRatio" yaml:"TestToSourceRatio" toml:"TestToSourceRatio"`
}

// IsTestFile reports whether path looks like a test by name alone.
func IsTestFile(path string) bool {
	lower := strings.ToLower(path)
	for _, marker := range testMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ComputeTesting classifies paths into tests and sources.
func ComputeTesting(paths []string) Testing {
	var t Testing
	if len(paths) == 0 {
		return t
	}
	for _, p := range paths {
		if IsTestFile(p) {
			t.TestFiles++
		} else {
			t.SourceFiles++
		}
	}
	t.TestToSourceRatio = float64(t.TestFiles) / float64(max(1, t.SourceFiles))
	return t
}

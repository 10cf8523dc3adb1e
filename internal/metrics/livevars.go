package metrics

import "regexp"

var (
	declarationPattern = regexp.MustCompile(`\b(?:let|const|var)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	wordPattern        = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)
)

// LiveVariables is a crude liveness proxy: distinct declared names and the
// number of identifier-shaped words per declared name. It is not data-flow
// liveness.
type LiveVariables struct {
	// Live is the number of distinct names introduced by let, const or var
	Live int `json:"live"`

	// Usages counts every identifier-shaped word, keywords included
	Usages int `json:"usages"`

	// Ratio is Usages / max(1, Live)
	Ratio float64 `json:"ratio"`
}

// ComputeLiveVariables estimates live variables in text.
func ComputeLiveVariables(text string) LiveVariables {
	declared := make(map[string]struct{})
	for _, m := range declarationPattern.FindAllStringSubmatch(text, -1) {
		declared[m[1]] = struct{}{}
	}

	lv := LiveVariables{
		Live:   len(declared),
		Usages: len(wordPattern.FindAllStringIndex(text, -1)),
	}
	lv.Ratio = float64(lv.Usages) / float64(max(1, lv.Live))
	return lv
}

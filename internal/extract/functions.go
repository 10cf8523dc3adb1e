package extract

import (
	"regexp"
	"sort"
)

// functionPatterns are applied independently; group 1 is the function name and
// every match ends on the opening brace of the body.
var functionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`function\s+(` + identPattern + `)\s*\([^)]*\)\s*\{`),
	regexp.MustCompile(`exports\.(` + identPattern + `)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>\s*\{`),
	regexp.MustCompile(`module\.exports\.(` + identPattern + `)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>\s*\{`),
	regexp.MustCompile(`(?:const|let|var)\s+(` + identPattern + `)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>\s*\{`),
}

// Functions returns the function declarations found in text, one per name,
// ordered by start offset.
//
// Recognized shapes are named function declarations and arrow functions
// assigned to exports.NAME, module.exports.NAME or a const/let/var binding.
// When a name is matched more than once the occurrence with the smallest start
// offset wins.
func Functions(text string) []Block {
	byName := make(map[string]Block)

	for _, re := range functionPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			name := text[m[2]:m[3]]
			start := m[0]
			if prev, ok := byName[name]; ok && prev.Start <= start {
				continue
			}
			body, end := ScanBlock(text, m[1]-1)
			byName[name] = Block{
				Name:  name,
				Body:  body,
				Start: start,
				End:   end,
			}
		}
	}

	return sortedBlocks(byName)
}

func sortedBlocks(byName map[string]Block) []Block {
	blocks := make([]Block, 0, len(byName))
	for _, b := range byName {
		blocks = append(blocks, b)
	}
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Start != blocks[j].Start {
			return blocks[i].Start < blocks[j].Start
		}
		return blocks[i].Name < blocks[j].Name
	})
	return blocks
}

package metrics

import (
	"strings"
	"unicode/utf8"
)

// Size holds line-based size measures for one file.
type Size struct {
	LOC           int     `json:"LOC" yaml:"LOC" toml:"LOC"`
	SLOC          int     `json:"SLOC" yaml:"SLOC" toml:"SLOC"`
	CommentLines  int     `json:"CommentLines" yaml:"CommentLines" toml:"CommentLines"`
	BlankLines    int     `json:"BlankLines" yaml:"BlankLines" toml:"BlankLines"`
	AvgLineLength float64 `json:"AvgLineLength" yaml:"AvgLineLength" toml:"AvgLineLength"`
}

// ComputeSize classifies each line of text as blank, comment or source.
//
// A line opening with /* and not closing on the same line starts block
// comment mode; every following non-blank line is a comment until one
// contains */. Blank lines inside a block comment still count as blank.
func ComputeSize(text string) Size {
	lines := SplitLines(text)

	var s Size
	s.LOC = len(lines)

	totalLen := 0
	inBlock := false
	for _, line := range lines {
		totalLen += utf8.RuneCountInString(line)

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			s.BlankLines++
		case inBlock:
			s.CommentLines++
			if strings.Contains(trimmed, "*/") {
				inBlock = false
			}
		case strings.HasPrefix(trimmed, "//"):
			s.CommentLines++
		case strings.HasPrefix(trimmed, "/*"):
			s.CommentLines++
			if !strings.Contains(trimmed, "*/") {
				inBlock = true
			}
		}
	}

	s.SLOC = s.LOC - s.CommentLines - s.BlankLines
	if s.LOC > 0 {
		s.AvgLineLength = float64(totalLen) / float64(s.LOC)
	}
	return s
}

// SplitLines splits text on \n, \r\n and \r. Terminators are not part of the
// lines and a trailing terminator does not start an extra line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

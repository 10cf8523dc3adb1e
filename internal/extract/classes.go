package extract

import (
	"regexp"
	"sort"
)

var (
	classPattern  = regexp.MustCompile(`class\s+(` + identPattern + `)(?:\s+extends\s+(` + identPattern + `))?\s*\{`)
	methodPattern = regexp.MustCompile(`(` + identPattern + `)\s*\([^)]*\)\s*\{`)
)

// Classes returns every class declaration in text in source order, including
// repeated declarations of the same name.
//
// Method names are collected from the class body with the `name(args) {`
// shape; nested functions of that shape are counted too.
func Classes(text string) []Class {
	var classes []Class

	for _, m := range classPattern.FindAllStringSubmatchIndex(text, -1) {
		parent := ""
		if m[4] >= 0 {
			parent = text[m[4]:m[5]]
		}
		body, end := ScanBlock(text, m[1]-1)
		classes = append(classes, Class{
			Block: Block{
				Name:   text[m[2]:m[3]],
				Parent: parent,
				Body:   body,
				Start:  m[0],
				End:    end,
			},
			Methods: Methods(body),
		})
	}

	return classes
}

// Methods returns the distinct, sorted method names declared in a class body.
func Methods(body string) []string {
	seen := make(map[string]bool)
	for _, m := range methodPattern.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if IsControlKeyword(name) {
			continue
		}
		seen[name] = true
	}

	methods := make([]string, 0, len(seen))
	for name := range seen {
		methods = append(methods, name)
	}
	sort.Strings(methods)
	return methods
}

package extract

// Block is a function or class declaration found in one file.
type Block struct {
	// Name is the declared name
	Name string `json:"name"`

	// Parent is the extended class name, classes only
	Parent string `json:"parent,omitempty"`

	// Body is the text between the delimiting braces, braces excluded
	Body string `json:"body"`

	// Start is the byte offset where the declaration match begins
	Start int `json:"start"`

	// End is the byte offset just past the closing brace
	End int `json:"end"`
}

// Class is a class declaration with the distinct method names found in its body.
type Class struct {
	Block

	// Methods holds distinct method names, sorted
	Methods []string `json:"methods"`
}

// identPattern matches a JavaScript identifier as the extractors see it.
const identPattern = `[A-Za-z_][A-Za-z0-9_]*`

// controlKeywords can take the shape `word(...) {` without being a call or method.
var controlKeywords = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"catch":  true,
	"return": true,
	"new":    true,
}

// IsControlKeyword reports whether name is a control-flow keyword that the
// method and call patterns must not treat as a name.
func IsControlKeyword(name string) bool {
	return controlKeywords[name]
}

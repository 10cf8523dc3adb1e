package metrics

import "github.com/DarthSidM/sqm-project/internal/extract"

// OO holds object-orientation measures for one file.
type OO struct {
	TotalClasses        int     `json:"TotalClasses" yaml:"TotalClasses" toml:"TotalClasses"`
	TotalMethods        int     `json:"TotalMethods" yaml:"TotalMethods" toml:"TotalMethods"`
	AvgMethodsPerClass  float64 `json:"AvgMethodsPerClass" yaml:"AvgMethodsPerClass" toml:"AvgMethodsPerClass"`
	MaxInheritanceDepth int     `json:"MaxInheritanceDepth" yaml:"MaxInheritanceDepth" toml:"MaxInheritanceDepth"`
}

// ComputeOO builds the class table of one file and measures it.
//
// Classes are keyed by name: a later declaration of the same name replaces
// the earlier method set, and replaces its parent only when it names one.
// Parents are looked up in this table alone.
func ComputeOO(classes []extract.Class) OO {
	methodCounts := make(map[string]int)
	parents := make(map[string]string)
	for _, c := range classes {
		methodCounts[c.Name] = len(c.Methods)
		if c.Parent != "" {
			parents[c.Name] = c.Parent
		}
	}

	var oo OO
	oo.TotalClasses = len(methodCounts)
	for name, n := range methodCounts {
		oo.TotalMethods += n
		if d := InheritanceDepth(name, parents); d > oo.MaxInheritanceDepth {
			oo.MaxInheritanceDepth = d
		}
	}
	if oo.TotalClasses > 0 {
		oo.AvgMethodsPerClass = float64(oo.TotalMethods) / float64(oo.TotalClasses)
	}
	return oo
}

// InheritanceDepth walks parent links from name. A class without a parent, or
// whose parent is itself, has depth 1. A class met again during the walk
// contributes 0, which ends cycles.
func InheritanceDepth(name string, parents map[string]string) int {
	seen := make(map[string]bool)
	depth := 0
	for cls := name; ; {
		if seen[cls] {
			return depth
		}
		seen[cls] = true
		depth++

		parent, ok := parents[cls]
		if !ok || parent == "" || parent == cls {
			return depth
		}
		cls = parent
	}
}

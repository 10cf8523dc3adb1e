package aggregate

import "github.com/DarthSidM/sqm-project/internal/metrics"

// InfoFlow holds pooled Henry-Kafura coupling values.
type InfoFlow struct {
	AvgInformationFlow   float64 `json:"AvgInformationFlow" yaml:"AvgInformationFlow" toml:"AvgInformationFlow"`
	TotalInformationFlow int     `json:"TotalInformationFlow" yaml:"TotalInformationFlow" toml:"TotalInformationFlow"`
	TotalFanIn           int     `json:"TotalFanIn" yaml:"TotalFanIn" toml:"TotalFanIn"`
	TotalFanOut          int     `json:"TotalFanOut" yaml:"TotalFanOut" toml:"TotalFanOut"`
	AvgFanIn             float64 `json:"AvgFanIn" yaml:"AvgFanIn" toml:"AvgFanIn"`
	AvgFanOut            float64 `json:"AvgFanOut" yaml:"AvgFanOut" toml:"AvgFanOut"`

	// Functions is the number of pooled functions
	Functions int `json:"Functions" yaml:"Functions" toml:"Functions"`
}

// LiveVars holds project live-variable totals.
type LiveVars struct {
	TotalLiveVariables      int     `json:"TotalLiveVariables" yaml:"TotalLiveVariables" toml:"TotalLiveVariables"`
	AvgLiveVariablesPerFile float64 `json:"AvgLiveVariablesPerFile" yaml:"AvgLiveVariablesPerFile" toml:"AvgLiveVariablesPerFile"`
}

// Size holds project size totals.
type Size struct {
	TotalLOC          int     `json:"TotalLOC" yaml:"TotalLOC" toml:"TotalLOC"`
	TotalSLOC         int     `json:"TotalSLOC" yaml:"TotalSLOC" toml:"TotalSLOC"`
	TotalCommentLines int     `json:"TotalCommentLines" yaml:"TotalCommentLines" toml:"TotalCommentLines"`
	TotalBlankLines   int     `json:"TotalBlankLines" yaml:"TotalBlankLines" toml:"TotalBlankLines"`
	AvgLineLength     float64 `json:"AvgLineLength" yaml:"AvgLineLength" toml:"AvgLineLength"`
}

// Report is the project-level result of one run. It is built once by
// Accumulator.Report and never modified afterwards.
type Report struct {
	Halstead metrics.Halstead `json:"halstead" yaml:"halstead" toml:"halstead"`
	InfoFlow InfoFlow         `json:"info_flow" yaml:"info_flow" toml:"info_flow"`
	LiveVars LiveVars         `json:"live_vars" yaml:"live_vars" toml:"live_vars"`
	Size     Size             `json:"size" yaml:"size" toml:"size"`
	OO       metrics.OO       `json:"oo" yaml:"oo" toml:"oo"`
	Testing  metrics.Testing  `json:"testing" yaml:"testing" toml:"testing"`

	// FileCount is the number of attempted files, the denominator of per-file averages
	FileCount int `json:"file_count" yaml:"file_count" toml:"file_count"`

	// Analyzed is the number of files measured successfully
	Analyzed int `json:"analyzed" yaml:"analyzed" toml:"analyzed"`

	// Skipped lists files that could not be analyzed
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
}

// Metric is a single named value of a group.
type Metric struct {
	Name  string
	Value float64

	// Integer marks counts that should print without decimals
	Integer bool
}

// Group is one named metric group in display order.
type Group struct {
	Key     string
	Title   string
	Metrics []Metric
}

func count(name string, v int) Metric {
	return Metric{Name: name, Value: float64(v), Integer: true}
}

func ratio(name string, v float64) Metric {
	return Metric{Name: name, Value: v}
}

// Groups returns the six metric groups in display order.
func (r *Report) Groups() []Group {
	if r == nil {
		return nil
	}
	h := r.Halstead
	return []Group{
		{
			Key:   "halstead",
			Title: "Halstead Complexity Metrics",
			Metrics: []Metric{
				count("n1", h.DistinctOperators),
				count("n2", h.DistinctOperands),
				count("N1", h.TotalOperators),
				count("N2", h.TotalOperands),
				count("Vocabulary", h.Vocabulary),
				count("ProgramLength", h.ProgramLength),
				ratio("Volume", h.Volume),
				ratio("Difficulty", h.Difficulty),
				ratio("Effort", h.Effort),
				ratio("BasicInformation", h.BasicInformation),
			},
		},
		{
			Key:   "info_flow",
			Title: "Information Flow Metrics",
			Metrics: []Metric{
				ratio("AvgInformationFlow", r.InfoFlow.AvgInformationFlow),
				count("TotalInformationFlow", r.InfoFlow.TotalInformationFlow),
				count("TotalFanIn", r.InfoFlow.TotalFanIn),
				count("TotalFanOut", r.InfoFlow.TotalFanOut),
				ratio("AvgFanIn", r.InfoFlow.AvgFanIn),
				ratio("AvgFanOut", r.InfoFlow.AvgFanOut),
			},
		},
		{
			Key:   "live_vars",
			Title: "Live Variable Metrics",
			Metrics: []Metric{
				count("TotalLiveVariables", r.LiveVars.TotalLiveVariables),
				ratio("AvgLiveVariablesPerFile", r.LiveVars.AvgLiveVariablesPerFile),
			},
		},
		{
			Key:   "size",
			Title: "Size Metrics",
			Metrics: []Metric{
				count("TotalLOC", r.Size.TotalLOC),
				count("TotalSLOC", r.Size.TotalSLOC),
				count("TotalCommentLines", r.Size.TotalCommentLines),
				count("TotalBlankLines", r.Size.TotalBlankLines),
				ratio("AvgLineLength", r.Size.AvgLineLength),
			},
		},
		{
			Key:   "oo",
			Title: "Object-Oriented Metrics",
			Metrics: []Metric{
				count("TotalClasses", r.OO.TotalClasses),
				count("TotalMethods", r.OO.TotalMethods),
				ratio("AvgMethodsPerClass", r.OO.AvgMethodsPerClass),
				count("MaxInheritanceDepth", r.OO.MaxInheritanceDepth),
			},
		},
		{
			Key:   "testing",
			Title: "Testing Metrics",
			Metrics: []Metric{
				count("TestFiles", r.Testing.TestFiles),
				count("SourceFiles", r.Testing.SourceFiles),
				ratio("TestToSourceRatio", r.Testing.TestToSourceRatio),
			},
		},
	}
}

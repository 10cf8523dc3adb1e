package aggregate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/DarthSidM/sqm-project/internal/callgraph"
	"github.com/DarthSidM/sqm-project/internal/metrics"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sampleFiles() []*FileMetrics {
	return []*FileMetrics{
		{
			Path:      "src/a.js",
			Operators: []string{"if", "if"},
			Operands:  []string{"x"},
			Functions: []callgraph.FunctionMetrics{
				{Name: "f", FanIn: 1, FanOut: 2, InformationFlow: 4},
				{Name: "g", FanIn: 0, FanOut: 1, InformationFlow: 0},
			},
			Size:          metrics.Size{LOC: 10, SLOC: 6, CommentLines: 3, BlankLines: 1, AvgLineLength: 20},
			LiveVariables: metrics.LiveVariables{Live: 2, Usages: 8, Ratio: 4},
			OO:            metrics.OO{TotalClasses: 1, TotalMethods: 3, AvgMethodsPerClass: 3, MaxInheritanceDepth: 1},
		},
		{
			Path:      "src/a.test.js",
			Operators: []string{"=="},
			Operands:  []string{"y"},
			Functions: []callgraph.FunctionMetrics{
				{Name: "h", FanIn: 2, FanOut: 1, InformationFlow: 4},
			},
			Size:          metrics.Size{LOC: 4, SLOC: 4, AvgLineLength: 10},
			LiveVariables: metrics.LiveVariables{Live: 1, Usages: 2, Ratio: 2},
			OO:            metrics.OO{TotalClasses: 2, TotalMethods: 0, MaxInheritanceDepth: 3},
		},
	}
}

func paths(files []*FileMetrics) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestAccumulator_Report(t *testing.T) {
	files := sampleFiles()
	acc := NewAccumulator()
	for _, f := range files {
		acc.Add(f)
	}

	r, err := acc.Report(paths(files))
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	// pooled, not averaged per file
	wantH := metrics.ComputeHalstead([]string{"if", "if", "=="}, []string{"x", "y"})
	if r.Halstead != wantH {
		t.Errorf("Halstead = %+v, want %+v", r.Halstead, wantH)
	}
	if !almostEqual(r.Halstead.Volume, 10) {
		t.Errorf("Volume = %v, want 10", r.Halstead.Volume)
	}

	if r.InfoFlow.TotalFanIn != 3 || r.InfoFlow.TotalFanOut != 4 || r.InfoFlow.TotalInformationFlow != 8 {
		t.Errorf("InfoFlow totals = %+v", r.InfoFlow)
	}
	if !almostEqual(r.InfoFlow.AvgInformationFlow, 8.0/3.0) {
		t.Errorf("AvgInformationFlow = %v, want 8/3", r.InfoFlow.AvgInformationFlow)
	}
	if !almostEqual(r.InfoFlow.AvgFanIn, 1) || !almostEqual(r.InfoFlow.AvgFanOut, 4.0/3.0) {
		t.Errorf("AvgFanIn = %v, AvgFanOut = %v", r.InfoFlow.AvgFanIn, r.InfoFlow.AvgFanOut)
	}

	if r.Size.TotalLOC != 14 || r.Size.TotalSLOC != 10 || r.Size.TotalCommentLines != 3 || r.Size.TotalBlankLines != 1 {
		t.Errorf("Size = %+v", r.Size)
	}
	// average of per-file averages
	if !almostEqual(r.Size.AvgLineLength, 15) {
		t.Errorf("AvgLineLength = %v, want 15", r.Size.AvgLineLength)
	}

	if r.LiveVars.TotalLiveVariables != 3 || !almostEqual(r.LiveVars.AvgLiveVariablesPerFile, 3) {
		t.Errorf("LiveVars = %+v", r.LiveVars)
	}

	// from grand totals: 3 methods over 3 classes
	if r.OO.TotalClasses != 3 || r.OO.TotalMethods != 3 || !almostEqual(r.OO.AvgMethodsPerClass, 1) || r.OO.MaxInheritanceDepth != 3 {
		t.Errorf("OO = %+v", r.OO)
	}

	if r.Testing.TestFiles != 1 || r.Testing.SourceFiles != 1 || !almostEqual(r.Testing.TestToSourceRatio, 1) {
		t.Errorf("Testing = %+v", r.Testing)
	}
	if r.FileCount != 2 || r.Analyzed != 2 || r.Skipped != nil {
		t.Errorf("FileCount = %d, Analyzed = %d, Skipped = %v", r.FileCount, r.Analyzed, r.Skipped)
	}
}

func TestAccumulator_SkippedFilesCountTowardAverages(t *testing.T) {
	files := sampleFiles()
	acc := NewAccumulator()
	acc.Add(files[0])
	acc.Skip("src/broken.js")

	r, err := acc.Report([]string{"src/a.js", "src/broken.js"})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if r.FileCount != 2 || r.Analyzed != 1 {
		t.Errorf("FileCount = %d, Analyzed = %d, want 2 and 1", r.FileCount, r.Analyzed)
	}
	if !almostEqual(r.Size.AvgLineLength, 10) {
		t.Errorf("AvgLineLength = %v, want 10", r.Size.AvgLineLength)
	}
	if !reflect.DeepEqual(r.Skipped, []string{"src/broken.js"}) {
		t.Errorf("Skipped = %v", r.Skipped)
	}
}

func TestAccumulator_MergeMatchesSequential(t *testing.T) {
	files := sampleFiles()

	seq := NewAccumulator()
	for _, f := range files {
		seq.Add(f)
	}

	left, right := NewAccumulator(), NewAccumulator()
	left.Add(files[0])
	right.Add(files[1])
	right.Skip("src/c.js")
	merged := NewAccumulator()
	merged.Merge(left)
	merged.Merge(right)
	seq.Skip("src/c.js")

	p := append(paths(files), "src/c.js")
	want, err := seq.Report(p)
	if err != nil {
		t.Fatalf("sequential Report() error = %v", err)
	}
	got, err := merged.Report(p)
	if err != nil {
		t.Fatalf("merged Report() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged report = %+v, want %+v", got, want)
	}
}

func TestAccumulator_NoResult(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		r, err := NewAccumulator().Report(nil)
		if r != nil || !errors.Is(err, ErrNoFiles) {
			t.Errorf("Report() = %v, %v, want nil, ErrNoFiles", r, err)
		}
	})

	t.Run("file without tokens", func(t *testing.T) {
		acc := NewAccumulator()
		acc.Add(&FileMetrics{Path: "empty.js"})
		r, err := acc.Report([]string{"empty.js"})
		if r != nil || !errors.Is(err, ErrNoMetrics) {
			t.Errorf("Report() = %v, %v, want nil, ErrNoMetrics", r, err)
		}
	})

	t.Run("only skipped files", func(t *testing.T) {
		acc := NewAccumulator()
		acc.Skip("broken.js")
		r, err := acc.Report([]string{"broken.js"})
		if r != nil || !errors.Is(err, ErrNoMetrics) {
			t.Errorf("Report() = %v, %v, want nil, ErrNoMetrics", r, err)
		}
	})
}

func TestReport_Groups(t *testing.T) {
	var nilReport *Report
	if nilReport.Groups() != nil {
		t.Error("nil report should have no groups")
	}

	acc := NewAccumulator()
	for _, f := range sampleFiles() {
		acc.Add(f)
	}
	r, err := acc.Report(paths(sampleFiles()))
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	groups := r.Groups()
	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	want := []string{"halstead", "info_flow", "live_vars", "size", "oo", "testing"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("group keys = %v, want %v", keys, want)
	}

	first := groups[0].Metrics[0]
	if first.Name != "n1" || !first.Integer || first.Value != 2 {
		t.Errorf("first metric = %+v, want n1=2 integer", first)
	}
}

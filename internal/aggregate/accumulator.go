// Package aggregate pools per-file metrics into one project report.
//
// Halstead counts and coupling values are pooled into flat lists and reduced
// once; size and live-variable averages divide per-file sums by the number of
// attempted files. Accumulators from separate workers merge by concatenation,
// so the reductions never see partial averages.
package aggregate

import (
	"errors"

	"github.com/DarthSidM/sqm-project/internal/callgraph"
	"github.com/DarthSidM/sqm-project/internal/metrics"
	"github.com/DarthSidM/sqm-project/internal/tokenizer"
)

var (
	// ErrNoFiles is returned by Report when no file was discovered or attempted.
	ErrNoFiles = errors.New("no files to analyze")

	// ErrNoMetrics is returned by Report when the pooled Halstead vocabulary is empty.
	ErrNoMetrics = errors.New("no metrics calculated")
)

// FileMetrics is everything measured in one file.
type FileMetrics struct {
	Path string `json:"path"`

	// Mode is the tokenizer that produced Operators and Operands
	Mode tokenizer.Mode `json:"mode"`

	Operators []string `json:"operators"`
	Operands  []string `json:"operands"`

	Functions     []callgraph.FunctionMetrics `json:"functions"`
	Size          metrics.Size                `json:"size"`
	LiveVariables metrics.LiveVariables       `json:"liveVariables"`
	OO            metrics.OO                  `json:"oo"`
}

// Accumulator collects per-file results. The zero value is ready to use.
// It is not safe for concurrent use; give each worker its own and Merge.
type Accumulator struct {
	operators []string
	operands  []string

	infoFlow []int
	fanIn    []int
	fanOut   []int

	loc, sloc, comments, blanks int
	lineLengthSum               float64

	liveTotal int
	liveRatio float64

	classes, methods, maxDepth int

	analyzed int
	skipped  []string
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add folds one analyzed file into the accumulator.
func (a *Accumulator) Add(fm *FileMetrics) {
	if fm == nil {
		return
	}
	a.analyzed++

	a.operators = append(a.operators, fm.Operators...)
	a.operands = append(a.operands, fm.Operands...)

	for _, fn := range fm.Functions {
		a.infoFlow = append(a.infoFlow, fn.InformationFlow)
		a.fanIn = append(a.fanIn, fn.FanIn)
		a.fanOut = append(a.fanOut, fn.FanOut)
	}

	a.loc += fm.Size.LOC
	a.sloc += fm.Size.SLOC
	a.comments += fm.Size.CommentLines
	a.blanks += fm.Size.BlankLines
	a.lineLengthSum += fm.Size.AvgLineLength

	a.liveTotal += fm.LiveVariables.Live
	a.liveRatio += fm.LiveVariables.Ratio

	a.classes += fm.OO.TotalClasses
	a.methods += fm.OO.TotalMethods
	a.maxDepth = max(a.maxDepth, fm.OO.MaxInheritanceDepth)
}

// Skip records a file that was attempted but could not be analyzed. It still
// counts toward the per-file averages.
func (a *Accumulator) Skip(path string) {
	a.skipped = append(a.skipped, path)
}

// Merge appends everything collected by other. Merging in discovery order
// yields the same pooled lists as a single sequential pass.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	a.operators = append(a.operators, other.operators...)
	a.operands = append(a.operands, other.operands...)
	a.infoFlow = append(a.infoFlow, other.infoFlow...)
	a.fanIn = append(a.fanIn, other.fanIn...)
	a.fanOut = append(a.fanOut, other.fanOut...)

	a.loc += other.loc
	a.sloc += other.sloc
	a.comments += other.comments
	a.blanks += other.blanks
	a.lineLengthSum += other.lineLengthSum

	a.liveTotal += other.liveTotal
	a.liveRatio += other.liveRatio

	a.classes += other.classes
	a.methods += other.methods
	a.maxDepth = max(a.maxDepth, other.maxDepth)

	a.analyzed += other.analyzed
	a.skipped = append(a.skipped, other.skipped...)
}

// Analyzed returns the number of files added.
func (a *Accumulator) Analyzed() int {
	return a.analyzed
}

// Attempted returns the number of files added or skipped.
func (a *Accumulator) Attempted() int {
	return a.analyzed + len(a.skipped)
}

// Report reduces the accumulated values. paths is the full discovered file
// list used for the testing ratio. It returns ErrNoFiles when nothing was
// attempted and ErrNoMetrics when the pooled vocabulary is empty.
func (a *Accumulator) Report(paths []string) (*Report, error) {
	files := a.Attempted()
	if files == 0 || len(paths) == 0 {
		return nil, ErrNoFiles
	}

	halstead := metrics.ComputeHalstead(a.operators, a.operands)
	if halstead.Vocabulary == 0 {
		return nil, ErrNoMetrics
	}

	r := &Report{
		Halstead:  halstead,
		FileCount: files,
		Analyzed:  a.analyzed,
		Skipped:   append([]string(nil), a.skipped...),
	}

	r.InfoFlow = InfoFlow{
		TotalInformationFlow: sum(a.infoFlow),
		TotalFanIn:           sum(a.fanIn),
		TotalFanOut:          sum(a.fanOut),
		Functions:            len(a.infoFlow),
	}
	r.InfoFlow.AvgInformationFlow = mean(r.InfoFlow.TotalInformationFlow, len(a.infoFlow))
	r.InfoFlow.AvgFanIn = mean(r.InfoFlow.TotalFanIn, len(a.fanIn))
	r.InfoFlow.AvgFanOut = mean(r.InfoFlow.TotalFanOut, len(a.fanOut))

	r.LiveVars = LiveVars{
		TotalLiveVariables:      a.liveTotal,
		AvgLiveVariablesPerFile: a.liveRatio / float64(files),
	}

	r.Size = Size{
		TotalLOC:          a.loc,
		TotalSLOC:         a.sloc,
		TotalCommentLines: a.comments,
		TotalBlankLines:   a.blanks,
		AvgLineLength:     a.lineLengthSum / float64(files),
	}

	r.OO = metrics.OO{
		TotalClasses:        a.classes,
		TotalMethods:        a.methods,
		MaxInheritanceDepth: a.maxDepth,
	}
	if a.classes > 0 {
		r.OO.AvgMethodsPerClass = float64(a.methods) / float64(a.classes)
	}

	r.Testing = metrics.ComputeTesting(paths)
	return r, nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(total, count int) float64 {
	return float64(total) / float64(max(1, count))
}

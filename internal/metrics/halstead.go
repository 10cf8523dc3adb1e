// Package metrics holds the metric formulas: Halstead, size, live-variable
// estimate, object orientation and test classification. Every function here is
// pure and safe to call with empty input.
package metrics

import "math"

// Halstead holds Halstead's software-science measures.
type Halstead struct {
	// DistinctOperators is n1
	DistinctOperators int `json:"n1" yaml:"n1" toml:"n1"`

	// DistinctOperands is n2
	DistinctOperands int `json:"n2" yaml:"n2" toml:"n2"`

	// TotalOperators is N1
	TotalOperators int `json:"N1" yaml:"N1" toml:"N1"`

	// TotalOperands is N2
	TotalOperands int `json:"N2" yaml:"N2" toml:"N2"`

	// Vocabulary is n = n1 + n2
	Vocabulary int `json:"Vocabulary" yaml:"Vocabulary" toml:"Vocabulary"`

	// ProgramLength is N = N1 + N2
	ProgramLength int `json:"ProgramLength" yaml:"ProgramLength" toml:"ProgramLength"`

	// Volume is N * log2(n)
	Volume float64 `json:"Volume" yaml:"Volume" toml:"Volume"`

	// Difficulty is (n1/2) * (N2/n2)
	Difficulty float64 `json:"Difficulty" yaml:"Difficulty" toml:"Difficulty"`

	// Effort is Difficulty * Volume
	Effort float64 `json:"Effort" yaml:"Effort" toml:"Effort"`

	// BasicInformation repeats Volume as the information content measure
	BasicInformation float64 `json:"BasicInformation" yaml:"BasicInformation" toml:"BasicInformation"`
}

// ComputeHalstead computes Halstead measures from operator and operand lists.
// When the vocabulary or the distinct operand count is zero only the counts
// are filled in.
func ComputeHalstead(operators, operands []string) Halstead {
	h := Halstead{
		DistinctOperators: countDistinct(operators),
		DistinctOperands:  countDistinct(operands),
		TotalOperators:    len(operators),
		TotalOperands:     len(operands),
	}
	h.Vocabulary = h.DistinctOperators + h.DistinctOperands
	h.ProgramLength = h.TotalOperators + h.TotalOperands

	if h.Vocabulary == 0 || h.DistinctOperands == 0 {
		return h
	}

	if h.Vocabulary > 1 {
		h.Volume = float64(h.ProgramLength) * math.Log2(float64(h.Vocabulary))
	}
	h.Difficulty = (float64(h.DistinctOperators) / 2) * (float64(h.TotalOperands) / float64(h.DistinctOperands))
	h.Effort = h.Difficulty * h.Volume
	h.BasicInformation = h.Volume
	return h
}

func countDistinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

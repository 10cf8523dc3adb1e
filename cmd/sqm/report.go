package main

import (
	"encoding/json"
	"fmt"

	"github.com/DarthSidM/sqm-project/internal/aggregate"
)

// decodeReport parses a stored JSON report. An empty blob is a run without metrics.
func decodeReport(data []byte) (*aggregate.Report, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var r aggregate.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("stored report is invalid: %w", err)
	}
	return &r, nil
}

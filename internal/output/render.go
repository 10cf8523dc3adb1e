// Package output renders analysis reports.
//
// JSON output is deterministic: keys are sorted, floats are rounded to six
// decimal places and nil fields are omitted, so two runs over the same tree
// produce byte-identical reports. The human format prints the six metric
// groups in a fixed order.
package output

import (
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/DarthSidM/sqm-project/internal/aggregate"
	"github.com/DarthSidM/sqm-project/internal/compression"
)

// Format is a report encoding.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// NoMetricsMessage is printed when a run produced no report.
const NoMetricsMessage = "⚠ Analysis finished, but no metrics were calculated."

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHuman, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "text", "":
		return FormatHuman, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want human, json, yaml or toml)", s)
	}
}

// Options controls Render.
type Options struct {
	Format Format

	// Compress wraps the encoded report in a zstd frame
	Compress bool
}

// Render writes report to w. A nil report renders as the no-metrics message
// in human format, null in JSON and YAML, and an empty TOML document.
func Render(w io.Writer, report *aggregate.Report, opts Options) (err error) {
	if !opts.Compress {
		return encode(w, report, opts.Format)
	}

	zw, err := compression.NewWriter(w)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to flush compressed output: %w", cerr)
		}
	}()
	return encode(zw, report, opts.Format)
}

func encode(w io.Writer, report *aggregate.Report, format Format) error {
	switch format {
	case FormatJSON:
		data, err := DeterministicEncodeIndented(report, "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()

	case FormatTOML:
		if report == nil {
			return nil
		}
		if err := toml.NewEncoder(w).Encode(report); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		return nil

	case FormatHuman, "":
		_, err := io.WriteString(w, Human(report))
		return err

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Human formats report as titled metric groups. Counts print as integers
// and everything else with two decimals.
func Human(report *aggregate.Report) string {
	var b strings.Builder
	if report == nil {
		b.WriteString(NoMetricsMessage + "\n")
		return b.String()
	}

	for _, g := range report.Groups() {
		fmt.Fprintf(&b, "📊 %s\n%s\n", g.Title, strings.Repeat("-", len(g.Title)+3))
		if len(g.Metrics) == 0 {
			b.WriteString("   (No data)\n\n")
			continue
		}
		for _, m := range g.Metrics {
			if m.Integer {
				fmt.Fprintf(&b, "   %-25s: %d\n", m.Name, int64(m.Value))
			} else {
				fmt.Fprintf(&b, "   %-25s: %.2f\n", m.Name, m.Value)
			}
		}
		b.WriteString("\n" + strings.Repeat("-", 30) + "\n\n")
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintf(&b, "⚠ Skipped %d of %d files:\n", len(report.Skipped), report.FileCount)
		for _, path := range report.Skipped {
			fmt.Fprintf(&b, "   %s\n", path)
		}
	}
	return b.String()
}

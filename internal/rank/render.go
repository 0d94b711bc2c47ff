package rank

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// ParseFormat normalizes a user-supplied output format.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatTable, "text":
		return FormatTable, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use table|markdown|csv|json|yaml)", s)
	}
}

// Document is the structured form of a run, used for json and yaml output.
type Document struct {
	RunID   string           `json:"run_id" yaml:"run_id"`
	Units   int              `json:"units" yaml:"units"`
	Reports []DocumentReport `json:"reports" yaml:"reports"`
}

// DocumentReport is one sorted view in a Document.
type DocumentReport struct {
	Title   string        `json:"title" yaml:"title"`
	SortKey string        `json:"sort_key" yaml:"sort_key"`
	Rows    []DocumentRow `json:"rows" yaml:"rows"`
}

// DocumentRow is one unit of a report. Fields holds the surviving source columns.
type DocumentRow struct {
	WMU        string            `json:"wmu" yaml:"wmu"`
	Fields     map[string]string `json:"fields" yaml:"fields"`
	Target     string            `json:"dmp_target" yaml:"dmp_target"`
	TargetDMPs float64           `json:"target_dmps" yaml:"target_dmps"`
	S1         float64           `json:"s1" yaml:"s1"`
	DMPsSqMile float64           `json:"dmps_sq_mile" yaml:"dmps_sq_mile"`
}

// Render writes the reports of res to w in the given format.
func Render(w io.Writer, res *Result, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Document())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res.Document()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTable, FormatMarkdown, FormatCSV:
		for _, r := range res.Reports {
			if err := renderReport(w, r, format); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderReport(w io.Writer, r Report, format string) error {
	banner := r.Title
	if format == FormatMarkdown {
		banner = "## " + strings.TrimSpace(strings.TrimPrefix(banner, "****"))
	}
	if _, err := fmt.Fprintf(w, "\n\n%s\n", banner); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	// keep column names as they appear in the input files
	t.Style().Format.Header = text.FormatDefault
	header := table.Row{"wmu"}
	for _, c := range r.Columns {
		header = append(header, c)
	}
	header = append(header, ColS1, ColDMPsSqMile)
	t.AppendHeader(header)
	for _, u := range r.Units {
		row := table.Row{u.ID}
		for _, v := range u.Values {
			row = append(row, formatCell(v))
		}
		row = append(row, formatFloat(u.S1), formatFloat(u.DMPsSqMile))
		t.AppendRow(row)
	}
	switch format {
	case FormatMarkdown:
		t.RenderMarkdown()
	case FormatCSV:
		t.RenderCSV()
	default:
		t.Render()
	}
	return nil
}

// Document converts the result into its structured form.
func (res *Result) Document() Document {
	doc := Document{RunID: res.RunID, Reports: make([]DocumentReport, 0, len(res.Reports))}
	if res.Scored != nil {
		doc.Units = len(res.Scored.Units)
	}
	for _, r := range res.Reports {
		dr := DocumentReport{Title: r.Title, SortKey: r.Key, Rows: make([]DocumentRow, 0, len(r.Units))}
		for _, u := range r.Units {
			fields := make(map[string]string, len(r.Columns))
			for i, c := range r.Columns {
				if i < len(u.Values) {
					fields[c] = u.Values[i]
				}
			}
			dr.Rows = append(dr.Rows, DocumentRow{
				WMU:        u.ID,
				Fields:     fields,
				Target:     u.Target.String(),
				TargetDMPs: u.TargetDMPs,
				S1:         u.S1,
				DMPsSqMile: u.DMPsSqMile,
			})
		}
		doc.Reports = append(doc.Reports, dr)
	}
	return doc
}

func formatCell(v string) string {
	if v == "" {
		return "NaN"
	}
	return v
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', 6, 64) }

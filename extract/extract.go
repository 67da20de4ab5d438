// Package extract pulls candidate email addresses out of tabular data and
// re-attaches verification results to the rows they came from. It works on
// an in-memory table; loading and persisting the actual file format
// (CSV, spreadsheet) is the caller's concern.
package extract

import (
	"strings"

	"github.com/devsahil2063/Email-Verifier/check"
	"github.com/devsahil2063/Email-Verifier/types"
)

// Table is an in-memory sheet: a header row plus data rows. Rows may be
// ragged; missing cells read as empty.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the trimmed value at (row, col), or "" when out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Candidate pairs an address with the row it came from, so a result can
// be re-attached by position even when the same address appears in
// several rows.
type Candidate struct {
	Row     int
	Address string
}

// sampleSize bounds how many non-empty cells per column are inspected
// during detection.
const sampleSize = 10

// detectionRatio is the fraction of sampled cells that must look like
// addresses for a column to count as an email column.
const detectionRatio = 0.3

var nameKeywords = []string{"email", "e-mail", "mail", "@"}

// DetectEmailColumns returns the indexes of columns that likely contain
// email addresses, judged by the column name first and by sampling cell
// values second.
func DetectEmailColumns(t Table) []int {
	var cols []int
	for col, name := range t.Header {
		if nameLooksLikeEmail(name) {
			cols = append(cols, col)
			continue
		}

		sampled, hits := 0, 0
		for row := range t.Rows {
			if sampled == sampleSize {
				break
			}
			val := t.Cell(row, col)
			if val == "" {
				continue
			}
			sampled++
			if check.ValidFormat(val) {
				hits++
			}
		}
		if sampled > 0 && float64(hits)/float64(sampled) > detectionRatio {
			cols = append(cols, col)
		}
	}
	return cols
}

func nameLooksLikeEmail(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range nameKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Addresses returns the format-valid addresses in the given column with
// their row positions. Order follows the table; duplicate addresses are
// kept, one candidate per row.
func Addresses(t Table, col int) []Candidate {
	var out []Candidate
	for row := range t.Rows {
		val := t.Cell(row, col)
		if val == "" || !check.ValidFormat(val) {
			continue
		}
		out = append(out, Candidate{Row: row, Address: val})
	}
	return out
}

// Column headers added by Attach.
const (
	StatusHeader  = "Verification Status"
	DetailsHeader = "Verification Details"
)

// Attach returns a copy of the table with status and details columns
// appended, populated from results keyed by row position. Rows without a
// result are marked "Not Checked".
func Attach(t Table, results map[int]types.VerificationResult) Table {
	width := len(t.Header)
	out := Table{
		Header: append(append(make([]string, 0, width+2), t.Header...), StatusHeader, DetailsHeader),
		Rows:   make([][]string, len(t.Rows)),
	}

	for i, row := range t.Rows {
		status, details := "Not Checked", ""
		if res, ok := results[i]; ok {
			status = StatusLabel(res.Verdict)
			details = res.Details
		}

		padded := make([]string, width, width+2)
		copy(padded, row)
		out.Rows[i] = append(padded, status, details)
	}
	return out
}

// StatusLabel renders a verdict as the human-readable status cell value.
func StatusLabel(v types.Verdict) string {
	switch v {
	case types.VerdictValid:
		return "Valid"
	case types.VerdictInvalid:
		return "Invalid"
	case types.VerdictInvalidFormat:
		return "Invalid Format"
	case types.VerdictError:
		return "Error"
	default:
		return "Not Checked"
	}
}

// Report summarizes a finished batch.
type Report struct {
	Total         int     `json:"total"`
	Valid         int     `json:"valid"`
	Invalid       int     `json:"invalid"`
	Errors        int     `json:"errors"`
	InvalidFormat int     `json:"invalidFormat"`
	SuccessRate   float64 `json:"successRate"` // percent of checked addresses that were valid
}

// Summarize tallies verification results into a Report.
func Summarize(results []types.VerificationResult) Report {
	r := Report{Total: len(results)}
	for _, res := range results {
		switch res.Verdict {
		case types.VerdictValid:
			r.Valid++
		case types.VerdictInvalid:
			r.Invalid++
		case types.VerdictInvalidFormat:
			r.InvalidFormat++
		default:
			r.Errors++
		}
	}
	if r.Total > 0 {
		r.SuccessRate = float64(r.Valid) / float64(r.Total) * 100
	}
	return r
}

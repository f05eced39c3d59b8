package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

// CSVExport is a rendered document plus the filename it should be
// served under.
type CSVExport struct {
	Filename string
	Content  string
}

// DashboardCSV renders the windowed transactions with their stored
// amounts untouched. Column order matches the dashboard table.
func DashboardCSV(txns []core.Transaction, w Window) CSVExport {
	rows := make([][]string, 0, len(txns)+1)
	rows = append(rows, []string{"Date", "Description", "Amount", "Type", "Category"})
	for _, t := range txns {
		rows = append(rows, []string{
			formatDate(t.Date),
			t.Description,
			formatAmount(t.Amount.Float()),
			string(t.Type),
			t.Category.DisplayName(),
		})
	}
	return CSVExport{
		Filename: Filename("transactions", w),
		Content:  csvDocument(rows),
	}
}

// ReportCSV renders the windowed transactions with signed amounts:
// expenses negative, income positive, regardless of the stored sign.
func ReportCSV(txns []core.Transaction, w Window) CSVExport {
	rows := make([][]string, 0, len(txns)+1)
	rows = append(rows, []string{"Date", "Description", "Category", "Type", "Amount"})
	for _, t := range txns {
		amount := abs(t)
		if t.Type == core.Expense {
			amount = -amount
		}
		rows = append(rows, []string{
			formatDate(t.Date),
			t.Description,
			t.Category.DisplayName(),
			string(t.Type),
			formatAmount(amount),
		})
	}
	return CSVExport{
		Filename: Filename("report", w),
		Content:  csvDocument(rows),
	}
}

// Filename builds "<kind>-<window label>.csv" with the label lowercased
// and its spaces dashed, e.g. "transactions-this-month.csv".
func Filename(kind string, w Window) string {
	label := strings.ToLower(w.Label())
	label = strings.ReplaceAll(label, " ", "-")
	return fmt.Sprintf("%s-%s.csv", kind, label)
}

// csvDocument joins rows into a CSV document. Every field is quoted
// with embedded quotes doubled; rows are newline-joined with no
// trailing newline. A header-only input yields a header-only document.
func csvDocument(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

func formatDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// formatAmount renders with the shortest exact decimal form, so 40.5
// stays "40.5" and 100 stays "100".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/sheets"
)

// SheetsExportService pushes windowed transactions to a user-owned
// spreadsheet through the sheets.ReportWriter port.
type SheetsExportService struct {
	snapshots *SnapshotService
	writer    sheets.ReportWriter
	now       func() time.Time
}

func NewSheetsExportService(snapshots *SnapshotService, writer sheets.ReportWriter) *SheetsExportService {
	return &SheetsExportService{snapshots: snapshots, writer: writer, now: time.Now}
}

// Enabled reports whether a spreadsheet destination is configured.
func (s *SheetsExportService) Enabled() bool {
	return s.writer != nil
}

// Export appends the windowed transactions to the spreadsheet and
// returns the written range plus the row count.
func (s *SheetsExportService) Export(ctx context.Context, w analytics.Window) (string, int, error) {
	if s.writer == nil {
		return "", 0, fmt.Errorf("sheets export is not configured")
	}

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("sheets export: %w", err)
	}
	windowed := analytics.Filter(snap.Transactions, w, s.now())

	rows := make([][]any, 0, len(windowed)+1)
	rows = append(rows, []any{"Date", "Description", "Category", "Type", "Amount"})
	for _, t := range windowed {
		amount := t.Amount.Float()
		if amount < 0 {
			amount = -amount
		}
		if t.Type == core.Expense {
			amount = -amount
		}
		date := ""
		if !t.Date.IsZero() {
			date = t.Date.Format("2006-01-02")
		}
		rows = append(rows, []any{date, t.Description, t.Category.DisplayName(), string(t.Type), amount})
	}

	ref, err := s.writer.AppendRows(ctx, rows)
	if err != nil {
		return "", 0, fmt.Errorf("append rows: %w", err)
	}
	return ref, len(windowed), nil
}

// Package sheets defines the port for pushing report rows to an
// external spreadsheet.
package sheets

import "context"

// ReportWriter appends rows to a user-owned spreadsheet. The first
// row of rows is expected to be the header; implementations only
// write it when the target sheet is empty.
type ReportWriter interface {
	AppendRows(ctx context.Context, rows [][]any) (ref string, err error)
}

// Package export renders the transaction list as a delimited text table for
// download or command-line dumps.
package export

import (
	"strings"
	"time"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/core"
)

var header = []string{"Description", "Amount", "Date", "Category", "Type"}

// Render produces the CSV export: a header row followed by one row per
// transaction, every field individually double-quoted, rows newline-joined.
// The Type column is derived from the sign of the amount.
func Render(txns []core.Transaction) string {
	rows := make([]string, 0, len(txns)+1)
	rows = append(rows, joinQuoted(header))

	for _, t := range txns {
		rows = append(rows, joinQuoted([]string{
			t.Description,
			core.FormatDecimal(t.AmountCents),
			t.Date,
			t.Category,
			t.Type(),
		}))
	}

	return strings.Join(rows, "\n")
}

// Filename returns the download name for an export taken now,
// e.g. "transactions_2026-08-29.csv".
func Filename(now time.Time) string {
	return "transactions_" + now.Format(core.DateLayout) + ".csv"
}

func joinQuoted(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

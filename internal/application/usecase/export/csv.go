// Package export builds the CSV and JSON documents users download.
package export

import (
	"strings"

	"github.com/ledgerly/backend/internal/domain/entity"
)

// csvHeader is the fixed column order of a transaction export.
const csvHeader = "date,type,category,amount,description"

// TransactionsCSV renders a transaction list as CSV. The header row is
// unquoted; every data field is wrapped in double quotes with embedded
// quotes doubled, so commas and quotes in descriptions survive a round
// trip through spreadsheet tools. Rows follow the input order.
func TransactionsCSV(transactions []*entity.TransactionWithCategory) string {
	var b strings.Builder
	b.WriteString(csvHeader)

	for _, t := range transactions {
		b.WriteByte('\n')
		b.WriteString(csvField(t.Date.Format(entity.DateLayout)))
		b.WriteByte(',')
		b.WriteString(csvField(string(t.Type)))
		b.WriteByte(',')
		b.WriteString(csvField(t.CategoryName()))
		b.WriteByte(',')
		b.WriteString(csvField(t.Amount.String()))
		b.WriteByte(',')
		b.WriteString(csvField(t.Description))
	}

	return b.String()
}

// csvField quotes a value, doubling any embedded quotes.
func csvField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

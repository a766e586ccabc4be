package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReceiptCategory is used when the assistant cannot identify a
// category on a scanned receipt.
const DefaultReceiptCategory = "Other"

// ReceiptData is the structured result of parsing a receipt image.
// Amount and Description are always present; Date defaults to today and
// Category to DefaultReceiptCategory when the assistant omits them.
type ReceiptData struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Category    string
	Merchant    string
}

package model

import "github.com/shopspring/decimal"

// BillCategory identifies the kind of recurring bill.
type BillCategory string

const (
	BillElectric BillCategory = "Electric"
	BillWifi     BillCategory = "Wifi"
)

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillPaid   BillStatus = "Paid"
	BillUnpaid BillStatus = "Unpaid"
)

// Bill is a recurring payment. Each bill owns at most one linked expense
// transaction (category "Bill"), kept in lockstep by the linkage layer.
type Bill struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      BillCategory    `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"dueDate"` // YYYY-MM-DD
	Status        BillStatus      `json:"status"`
	TransactionID string          `json:"transactionId,omitempty"`
}

package models

// StatusTotal aggregates installments sharing a status.
type StatusTotal struct {
	Status Status  `json:"status"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// PaymentReport summarizes all installments for the reporting endpoints.
type PaymentReport struct {
	GeneratedAt string        `json:"generatedAt"` // Format: YYYY-MM-DD
	Totals      []StatusTotal `json:"totals"`
	GrandTotal  float64       `json:"grandTotal"`
	RowCount    int           `json:"rowCount"`
}

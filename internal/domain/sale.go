package domain

// SaleRecord is one day of recorded sales. Date is an ISO day string
// (YYYY-MM-DD); Revenue and Transactions are never negative.
type SaleRecord struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
	TopProduct   string  `json:"topProduct"`
	Notes        string  `json:"notes"`
}

package domain

// Expense categories. The assistant's categorization must resolve to one of
// these; anything it can't place falls back to CategoryOther.
const (
	CategoryOperational = "Operasional"
	CategoryRawMaterial = "Bahan Baku"
	CategoryMarketing   = "Marketing"
	CategorySalary      = "Gaji"
	CategoryUtilities   = "Sewa & Utilitas"
	CategoryOther       = "Lainnya"
)

// ExpenseCategories lists the valid categories in display order.
var ExpenseCategories = []string{
	CategoryOperational,
	CategoryRawMaterial,
	CategoryMarketing,
	CategorySalary,
	CategoryUtilities,
	CategoryOther,
}

// ExpenseRecord is an append-only ledger entry. There is deliberately no
// update or delete path for expenses.
type ExpenseRecord struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// ValidCategory reports whether category is one of the fixed set.
func ValidCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

package domain

// InventoryRecord is a free-form stock note appended to the inventory list.
// Like expenses, inventory entries are append-only.
type InventoryRecord struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes"`
}

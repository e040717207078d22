package domain

// SalesGoal is a monthly revenue target, keyed by month (YYYY-MM).
// At most one goal exists per month; saving again replaces it.
type SalesGoal struct {
	Month        string  `json:"month"`
	TargetAmount float64 `json:"targetAmount"`
}

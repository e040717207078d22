package storage

// Storage keys. Each key owns an independent JSON blob in the data directory
// (file name therrabiz_<key>.json). There are no cross-key references beyond
// date-string joins, and nothing cascades between keys.
const (
	KeySales          = "sales_data"
	KeyProfile        = "profile"
	KeySettings       = "settings"
	KeyGoals          = "goals"
	KeyTasks          = "tasks"
	KeyExpenses       = "expenses"
	KeyInventory      = "inventory"
	KeyMessageTracker = "message_tracker"
)

const filePrefix = "therrabiz_"

package domain

// DailyTask is a to-do item, usually created in batches by the assistant.
// Completed tasks from previous days are hidden on load but never purged.
type DailyTask struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
	Date        string `json:"date"`
	GeneratedAt int64  `json:"generatedAt"`
}

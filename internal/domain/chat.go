package domain

// Chat roles as stored client-side. RoleModel maps to the OpenAI-compatible
// "assistant" role on the wire.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of the assistant conversation history.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// SlowMovingItem is one entry of the assistant's slow-moving stock analysis.
type SlowMovingItem struct {
	Product    string `json:"product"`
	Risk       string `json:"risk"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

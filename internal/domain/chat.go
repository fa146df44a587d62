package domain

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of a conversation with the assistant
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

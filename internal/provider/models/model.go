package models

// Role identifies the author of a transcript message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation transcript.
type Message struct {
	Role    Role
	Content string
}

// GenerateConfig contains generation parameters shared by every backend.
type GenerateConfig struct {
	Temperature float64
	MaxTokens   int64
}

// DefaultGenerateConfig returns the parameters used for every call.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Temperature: 0.2,
		MaxTokens:   4096,
	}
}

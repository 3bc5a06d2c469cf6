package domain

const (
	MaxHistory    = 80
	PromptHistory = 20
	ShownHistory  = 40
)

const (
	FallbackReply   = "Sorry, I had a brain glitch. Try again?"
	ConnectionReply = "Hmm, something went wrong connecting to my brain. Check your connection and make sure the assistant service is running! 🧠"
)

type Role string

const (
	RoleUser Role = "user"
	RoleAria Role = "aria"
)

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	TS      string `json:"ts"`
}

// AppendChat adds msg and keeps only the newest MaxHistory entries.
func AppendChat(history []ChatMessage, msg ChatMessage) []ChatMessage {
	out := append(append([]ChatMessage{}, history...), msg)
	if len(out) > MaxHistory {
		out = out[len(out)-MaxHistory:]
	}
	return out
}

func Tail(history []ChatMessage, n int) []ChatMessage {
	if n <= 0 || n >= len(history) {
		return append([]ChatMessage{}, history...)
	}
	return append([]ChatMessage{}, history[len(history)-n:]...)
}

package entities

// ChatRole identifies the author of a transcript entry.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of the append-only session transcript.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// PageContext selects which keyword rule set the responder evaluates.
type PageContext string

const (
	ContextOccupations PageContext = "occupations"
	ContextSkills      PageContext = "skills"
)

// IsValid reports whether the page context is known.
func (c PageContext) IsValid() bool {
	return c == ContextOccupations || c == ContextSkills
}

// ChatGreeting is the assistant's opening line, shown before any exchange.
const ChatGreeting = "Hi, I'm PADdy."

// PresetQuestion is a suggested "pill" question with its answer attached.
// Presets bypass keyword matching entirely so the displayed answer always
// matches the button's intent.
type PresetQuestion struct {
	ID       string      `json:"id"`
	Context  PageContext `json:"context"`
	Question string      `json:"question"`
	Answer   string      `json:"answer"`
}

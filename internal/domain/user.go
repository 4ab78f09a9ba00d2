package domain

// Credential is the stored entry for one email in the "users" map.
// Password holds a bcrypt hash, never the plain password.
type Credential struct {
	Password string `json:"password"`
}

// Credentials maps email to credential
type Credentials map[string]Credential

// ChatState represents a bot chat's current input state
type ChatState string

const (
	StateIdle          ChatState = "idle"
	StateWaitingSource ChatState = "waiting_source"
	StateWaitingTarget ChatState = "waiting_target"
	StateWaitingImport ChatState = "waiting_import"
)

// StateData holds temporary data for a chat's current state
type StateData struct {
	State         ChatState
	CurrentSource string
	MessageID     int // For editing messages
}

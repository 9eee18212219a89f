package protocol

// MessageType defines the type of WebSocket message pushed to status page
// clients.
type MessageType string

const (
	// TypeActivity is broadcast once per successfully processed command.
	TypeActivity MessageType = "activity"
)

// Message is the generic container for all WebSocket messages.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ActivityPayload is the payload for TypeActivity.
type ActivityPayload struct {
	Command CommandType `json:"command"`
}

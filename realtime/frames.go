package realtime

import "encoding/json"

// Event types emitted by the messaging backend.
const (
	EventMessageNew  = "message:new"
	EventMessageRead = "message:read"
)

// Frame is the wire envelope for every realtime event.
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MessageNew is the payload of a message:new frame. Extra fields (body,
// timestamps) are ignored; the reconciliation core only needs routing.
type MessageNew struct {
	To   string `json:"to"`
	From string `json:"from"`
}

// MessageRead is the payload of a message:read frame: `by` marked the full
// conversation with `peer` as read.
type MessageRead struct {
	Peer string `json:"peer"`
	By   string `json:"by"`
}

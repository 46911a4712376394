package types

// ------------------------------
// Request Types
// ------------------------------

// SendConnectionRequest asks the backend to create a pending request from
// the current user to a target peer. RequestID is a client-generated
// idempotency key so a retried POST cannot create a duplicate request.
type SendConnectionRequest struct {
	RequestID string `json:"requestId"`
	FromUID   string `json:"fromUid"`
	ToUID     string `json:"toUid"`
}

// RespondConnectionRequest accepts or rejects a pending incoming request.
type RespondConnectionRequest struct {
	RequestID string `json:"requestId"`
	FromUID   string `json:"fromUid"`
	ToUID     string `json:"toUid"`
	Action    string `json:"action"` // "accept" or "reject"
}

// UpdateProfileRequest carries the editable profile fields. Zero values are
// sent as-is; the backend treats the payload as a full replacement.
type UpdateProfileRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	College     string   `json:"college"`
	YearOfStudy string   `json:"yearOfStudy"`
	Branch      string   `json:"branch"`
	Skills      []string `json:"skills"`
	Bio         string   `json:"bio"`
	Interests   []string `json:"interests"`
}

// Valid actions for RespondConnectionRequest.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

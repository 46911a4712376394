package campuslink

import "github.com/campuslink/campuslink-go/internal/types"

// Public type aliases so SDK consumers can import only the root package.
type (
	// Requests
	UpdateProfileRequest = types.UpdateProfileRequest

	// Domain entities
	RawUser         = types.RawUser
	UserRecord      = types.UserRecord
	Profile         = types.Profile
	ConnectionEdge  = types.ConnectionEdge
	IncomingRequest = types.IncomingRequest
	Event           = types.Event
	Blog            = types.Blog
	Startup         = types.Startup
	Discount        = types.Discount
	Certification   = types.Certification

	// Responses
	EnqueueAck = types.EnqueueAck
)

// Connection-response actions accepted by the backend.
const (
	ActionAccept = types.ActionAccept
	ActionReject = types.ActionReject
)

// NormalizeUsers applies the directory normalization boundary: records
// without a uid are dropped and every other field gets its zero-ish
// default.
func NormalizeUsers(raw []RawUser) []UserRecord { return types.NormalizeUsers(raw) }

// Errors re-exported in errors.go

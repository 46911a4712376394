package types

import "fmt"

// ------------------------------
// Response Types
// ------------------------------

// EnqueueAck acknowledges that an optimistic connection mutation was
// accepted into the outbox. The HTTP call happens later, in FIFO order
// per peer.
type EnqueueAck struct {
	PeerUID string `json:"peerUid"`
	Status  string `json:"status"`
}

// ListUsersResponse wraps the directory endpoint response.
type ListUsersResponse struct {
	Users []RawUser `json:"users"`
	Count int       `json:"count"`
}

// ListConnectionsResponse wraps the accepted-connections endpoint response.
type ListConnectionsResponse struct {
	Connections []ConnectionEdge `json:"connections"`
	Count       int              `json:"count"`
}

// ListRequestsResponse wraps the incoming-requests endpoint response.
type ListRequestsResponse struct {
	Requests []IncomingRequest `json:"requests"`
	Count    int               `json:"count"`
}

// UnreadCountsResponse is the snapshot of unread message counts keyed by
// peer uid. Peers with zero unread are absent.
type UnreadCountsResponse struct {
	Counts map[string]int `json:"counts"`
}

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = fmt.Errorf("resource not found")

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	clerrors "github.com/campuslink/campuslink-go/internal/errors"
	"github.com/campuslink/campuslink-go/internal/outbox"
	"github.com/campuslink/campuslink-go/internal/types"
)

// ListConnections fetches the accepted-connection edges touching userUID.
func ListConnections(ctx context.Context, httpClient *http.Client, baseURL, userUID string) ([]types.ConnectionEdge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/connections/%s", baseURL, userUID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list connections: status %d", resp.StatusCode)
	}
	var lr types.ListConnectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Connections, nil
}

// ListIncomingRequests fetches the pending requests directed at userUID.
func ListIncomingRequests(ctx context.Context, httpClient *http.Client, baseURL, userUID string) ([]types.IncomingRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/connections/%s/requests", baseURL, userUID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list incoming requests: status %d", resp.StatusCode)
	}
	var lr types.ListRequestsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Requests, nil
}

// SendConnectionRequest enqueues a POST creating a pending request from
// fromUID to toUID. The local view is updated optimistically by the caller;
// delivery happens in FIFO order per peer with background retry. A
// client-generated request id makes the POST idempotent across retries.
func SendConnectionRequest(ctx context.Context, exec types.Executor, httpClient *http.Client, baseURL, fromUID, toUID string) (*types.EnqueueAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fromUID == "" || toUID == "" {
		return nil, fmt.Errorf("send connection request: missing uid")
	}
	payload := types.SendConnectionRequest{
		RequestID: uuid.NewString(),
		FromUID:   fromUID,
		ToUID:     toUID,
	}
	job := outbox.JobFunc(func(jobCtx context.Context) error {
		return postConnection(jobCtx, httpClient, fmt.Sprintf("%s/api/connections/requests", baseURL), payload, "send connection request")
	})
	if err := exec.Submit(ctx, toUID, job); err != nil {
		return nil, err
	}
	return &types.EnqueueAck{PeerUID: toUID, Status: "enqueued"}, nil
}

// RespondConnectionRequest enqueues the accept/reject of a pending request
// from fromUID to the current user (toUID). Same delivery semantics as
// SendConnectionRequest.
func RespondConnectionRequest(ctx context.Context, exec types.Executor, httpClient *http.Client, baseURL, fromUID, toUID, action string) (*types.EnqueueAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fromUID == "" || toUID == "" {
		return nil, fmt.Errorf("respond connection request: missing uid")
	}
	if action != types.ActionAccept && action != types.ActionReject {
		return nil, fmt.Errorf("respond connection request: invalid action %q", action)
	}
	payload := types.RespondConnectionRequest{
		RequestID: uuid.NewString(),
		FromUID:   fromUID,
		ToUID:     toUID,
		Action:    action,
	}
	job := outbox.JobFunc(func(jobCtx context.Context) error {
		return postConnection(jobCtx, httpClient, fmt.Sprintf("%s/api/connections/respond", baseURL), payload, "respond connection request")
	})
	if err := exec.Submit(ctx, fromUID, job); err != nil {
		return nil, err
	}
	return &types.EnqueueAck{PeerUID: fromUID, Status: "enqueued"}, nil
}

// postConnection performs one delivery attempt and classifies the outcome
// so the outbox knows whether to retry.
func postConnection(ctx context.Context, httpClient *http.Client, url string, payload any, operation string) error {
	httpReq, err := newJSONRequest(ctx, http.MethodPost, url, payload)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return clerrors.FromNetwork(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return clerrors.FromStatus(resp.StatusCode, string(body), operation)
	}
	return nil
}
